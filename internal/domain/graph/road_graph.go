// Package graph は車道ネットワークのグラフと最短経路探索を提供する
package graph

import (
	"errors"
	"fmt"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/project"

	"FestivalMarket-App/internal/domain/model"
)

var (
	ErrEmptyGraph   = errors.New("グラフにノードがありません")
	ErrNodeNotFound = errors.New("ノードが見つかりません")
	ErrNoPath       = errors.New("経路が見つかりません")
)

// Node 道路ネットワークのノード
type Node struct {
	ID  int64
	Lat float64
	Lng float64
}

// LatLng ノードの座標
func (n Node) LatLng() model.LatLng {
	return model.LatLng{Lat: n.Lat, Lng: n.Lng}
}

// Edge 有向の道路区間
type Edge struct {
	From    int64
	To      int64
	LengthM float64
}

// RoadGraph 車道ネットワーク（有向グラフ）
// 構築後は読み取り専用として扱う
type RoadGraph struct {
	nodes     map[int64]*Node
	order     []int64 // ノードの追加順
	adjList   map[int64][]Edge
	neighbors map[int64]map[int64]struct{} // 向きを無視した隣接ノード
	edgeCount int

	index *rtreego.Rtree // 最近傍ノード検索用（遅延構築）
}

// NewRoadGraph 空のグラフを作成
func NewRoadGraph() *RoadGraph {
	return &RoadGraph{
		nodes:     make(map[int64]*Node),
		adjList:   make(map[int64][]Edge),
		neighbors: make(map[int64]map[int64]struct{}),
	}
}

// AddNode ノードを追加する（既存IDの場合は何もしない）
func (g *RoadGraph) AddNode(id int64, lat, lng float64) {
	if _, exists := g.nodes[id]; exists {
		return
	}
	g.nodes[id] = &Node{ID: id, Lat: lat, Lng: lng}
	g.order = append(g.order, id)
	g.index = nil
}

// AddEdge 有向エッジを追加する
func (g *RoadGraph) AddEdge(from, to int64, lengthM float64) error {
	if g.nodes[from] == nil || g.nodes[to] == nil {
		return fmt.Errorf("%w: %d -> %d", ErrNodeNotFound, from, to)
	}
	g.adjList[from] = append(g.adjList[from], Edge{From: from, To: to, LengthM: lengthM})
	g.edgeCount++

	if from != to {
		g.link(from, to)
		g.link(to, from)
	}
	return nil
}

// AddRoad 2ノード間の道路を追加する。長さは大圏距離で計算し、一方通行でなければ逆向きも追加する
func (g *RoadGraph) AddRoad(from, to int64, oneway bool) error {
	a, b := g.nodes[from], g.nodes[to]
	if a == nil || b == nil {
		return fmt.Errorf("%w: %d -> %d", ErrNodeNotFound, from, to)
	}
	length := geo.Distance(a.LatLng().Point(), b.LatLng().Point())
	if err := g.AddEdge(from, to, length); err != nil {
		return err
	}
	if oneway {
		return nil
	}
	return g.AddEdge(to, from, length)
}

func (g *RoadGraph) link(a, b int64) {
	set, ok := g.neighbors[a]
	if !ok {
		set = make(map[int64]struct{})
		g.neighbors[a] = set
	}
	set[b] = struct{}{}
}

// Node IDからノードを取得
func (g *RoadGraph) Node(id int64) (Node, bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Nodes 追加順のノード一覧
func (g *RoadGraph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		nodes = append(nodes, *g.nodes[id])
	}
	return nodes
}

// NodeCount ノード数
func (g *RoadGraph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount 有向エッジ数
func (g *RoadGraph) EdgeCount() int {
	return g.edgeCount
}

// Degree 向きを無視した隣接ノードの数（交差点判定に使う）
func (g *RoadGraph) Degree(id int64) int {
	return len(g.neighbors[id])
}

// Neighbors ノードから出るエッジ
func (g *RoadGraph) Neighbors(id int64) []Edge {
	return g.adjList[id]
}

// PathCoordinates ノードID列を座標列に変換する
func (g *RoadGraph) PathCoordinates(path []int64) ([]model.LatLng, error) {
	coords := make([]model.LatLng, 0, len(path))
	for _, id := range path {
		n, ok := g.nodes[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
		}
		coords = append(coords, n.LatLng())
	}
	return coords, nil
}

// indexedNode R-treeに格納するノード（メルカトル座標）
type indexedNode struct {
	id    int64
	point rtreego.Point
}

func (n *indexedNode) Bounds() rtreego.Rect {
	return n.point.ToRect(0.01)
}

// NearestNode 指定座標に最も近いノードを返す
// 距離はメルカトル座標上で測る
func (g *RoadGraph) NearestNode(p model.LatLng) (int64, error) {
	if len(g.nodes) == 0 {
		return 0, ErrEmptyGraph
	}
	if g.index == nil {
		g.buildIndex()
	}

	merc := project.WGS84.ToMercator(p.Point())
	nearest := g.index.NearestNeighbor(rtreego.Point{merc[0], merc[1]})
	n, ok := nearest.(*indexedNode)
	if !ok {
		return 0, ErrNodeNotFound
	}
	return n.id, nil
}

func (g *RoadGraph) buildIndex() {
	objs := make([]rtreego.Spatial, 0, len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		merc := project.WGS84.ToMercator(n.LatLng().Point())
		objs = append(objs, &indexedNode{id: id, point: rtreego.Point{merc[0], merc[1]}})
	}
	g.index = rtreego.NewTree(2, 25, 50, objs...)
}
