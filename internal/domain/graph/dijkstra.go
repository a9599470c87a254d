package graph

import (
	"container/heap"
	"fmt"
	"math"
	"slices"
)

// PriorityQueueItem 優先度付きキューの要素
type PriorityQueueItem struct {
	NodeID int64
	Cost   float64 // 累積距離 (m)
	Index  int
}

// PriorityQueue heap.Interfaceを実装した優先度付きキュー
type PriorityQueue []*PriorityQueueItem

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].Cost < pq[j].Cost
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].Index = i
	pq[j].Index = j
}

func (pq *PriorityQueue) Push(x any) {
	item := x.(*PriorityQueueItem)
	item.Index = len(*pq)
	*pq = append(*pq, item)
}

func (pq *PriorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.Index = -1
	*pq = old[:n-1]
	return item
}

// ShortestPath エッジ長を重みとしたダイクストラ法で最短経路のノード列を返す
func (g *RoadGraph) ShortestPath(startID, endID int64) ([]int64, error) {
	if g.nodes[startID] == nil {
		return nil, fmt.Errorf("%w: 始点 %d", ErrNodeNotFound, startID)
	}
	if g.nodes[endID] == nil {
		return nil, fmt.Errorf("%w: 終点 %d", ErrNodeNotFound, endID)
	}

	dist := map[int64]float64{startID: 0}
	prev := make(map[int64]int64)
	visited := make(map[int64]bool)

	pq := make(PriorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &PriorityQueueItem{NodeID: startID, Cost: 0})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*PriorityQueueItem)
		if visited[current.NodeID] {
			continue
		}
		visited[current.NodeID] = true

		if current.NodeID == endID {
			break
		}

		for _, edge := range g.adjList[current.NodeID] {
			newCost := current.Cost + edge.LengthM
			if old, ok := dist[edge.To]; ok && newCost >= old {
				continue
			}
			dist[edge.To] = newCost
			prev[edge.To] = current.NodeID
			heap.Push(&pq, &PriorityQueueItem{NodeID: edge.To, Cost: newCost})
		}
	}

	if _, ok := dist[endID]; !ok {
		return nil, fmt.Errorf("%w: %d -> %d", ErrNoPath, startID, endID)
	}

	path := []int64{endID}
	for at := endID; at != startID; {
		at = prev[at]
		path = append(path, at)
	}
	slices.Reverse(path)
	return path, nil
}

// PathLength 経路の総距離 (m)。隣接ノード間で最短のエッジを採用する
func (g *RoadGraph) PathLength(path []int64) float64 {
	total := 0.0
	for i := 0; i < len(path)-1; i++ {
		best := math.Inf(1)
		for _, edge := range g.adjList[path[i]] {
			if edge.To == path[i+1] && edge.LengthM < best {
				best = edge.LengthM
			}
		}
		if !math.IsInf(best, 1) {
			total += best
		}
	}
	return total
}
