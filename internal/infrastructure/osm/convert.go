package osm

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/serjvanilla/go-overpass"

	"FestivalMarket-App/internal/domain/graph"
)

// BuildRoadGraph Overpassの結果から道路グラフを作る
// ウェイはID順に処理し、oneway=yes は順方向、oneway=-1 は逆方向のみ通行可とする
func BuildRoadGraph(result overpass.Result) (*graph.RoadGraph, error) {
	g := graph.NewRoadGraph()

	for _, wayID := range sortedWayIDs(result) {
		way := result.Ways[wayID]
		if way == nil || way.Tags["highway"] == "" {
			continue
		}
		forward, backward := directionality(way.Tags)

		var prev *overpass.Node
		for _, node := range way.Nodes {
			if node == nil {
				continue
			}
			g.AddNode(node.ID, node.Lat, node.Lon)
			if prev != nil && prev.ID != node.ID {
				if err := addSegment(g, prev.ID, node.ID, forward, backward); err != nil {
					return nil, err
				}
			}
			prev = node
		}
	}

	if g.NodeCount() == 0 {
		return nil, graph.ErrEmptyGraph
	}
	return g, nil
}

func addSegment(g *graph.RoadGraph, from, to int64, forward, backward bool) error {
	switch {
	case forward && backward:
		return g.AddRoad(from, to, false)
	case forward:
		return g.AddRoad(from, to, true)
	default:
		return g.AddRoad(to, from, true)
	}
}

func directionality(tags map[string]string) (forward, backward bool) {
	switch tags["oneway"] {
	case "yes", "true", "1":
		return true, false
	case "-1", "reverse":
		return false, true
	}
	// ロータリーは暗黙の一方通行
	if tags["junction"] == "roundabout" && tags["oneway"] != "no" {
		return true, false
	}
	return true, true
}

// FeatureGeometries highway=<value> の地物をジオメトリに変換する
// ノードは点、閉じたウェイはポリゴン、それ以外のウェイは線になる
func FeatureGeometries(result overpass.Result, highwayValue string) []orb.Geometry {
	var geoms []orb.Geometry

	nodeIDs := make([]int64, 0, len(result.Nodes))
	for id, node := range result.Nodes {
		if node != nil && node.Tags["highway"] == highwayValue {
			nodeIDs = append(nodeIDs, id)
		}
	}
	sort.Slice(nodeIDs, func(i, j int) bool { return nodeIDs[i] < nodeIDs[j] })
	for _, id := range nodeIDs {
		node := result.Nodes[id]
		geoms = append(geoms, orb.Point{node.Lon, node.Lat})
	}

	for _, wayID := range sortedWayIDs(result) {
		way := result.Ways[wayID]
		if way == nil || way.Tags["highway"] != highwayValue {
			continue
		}
		line := make(orb.LineString, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			if node != nil {
				line = append(line, orb.Point{node.Lon, node.Lat})
			}
		}
		switch {
		case len(line) == 0:
			continue
		case len(line) == 1:
			geoms = append(geoms, line[0])
		case len(line) >= 4 && line[0].Equal(line[len(line)-1]):
			geoms = append(geoms, orb.Polygon{orb.Ring(line)})
		default:
			geoms = append(geoms, line)
		}
	}
	return geoms
}

func sortedWayIDs(result overpass.Result) []int64 {
	ids := make([]int64, 0, len(result.Ways))
	for id := range result.Ways {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
