package service

import (
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"FestivalMarket-App/internal/domain/graph"
	"FestivalMarket-App/internal/domain/helper"
	"FestivalMarket-App/internal/domain/model"
)

// RouteCorridorBuilder 会場から各出入口までの最短経路をコリドーに変換する
type RouteCorridorBuilder struct{}

// NewRouteCorridorBuilder 新しいRouteCorridorBuilderを作成
func NewRouteCorridorBuilder() *RouteCorridorBuilder {
	return &RouteCorridorBuilder{}
}

// Build 出入口ごとにコリドーを作る
// 経路が得られなかった方位はエラーにせずskippedとして返す
func (b *RouteCorridorBuilder) Build(g *graph.RoadGraph, venue model.LatLng, entries []model.EntryCandidate, radiusKm float64) ([]model.RouteCorridor, []model.RoutingSkipped, error) {
	if radiusKm <= 0 {
		return nil, nil, &model.ValidationError{Field: "route_radius", Message: "Routenradius muss größer als 0 sein"}
	}

	venueNode, err := g.NearestNode(venue)
	if err != nil {
		return nil, nil, fmt.Errorf("会場の最寄りノードが見つかりません: %w", err)
	}

	radiusM := radiusKm * 1000
	var corridors []model.RouteCorridor
	var skipped []model.RoutingSkipped

	for _, entry := range entries {
		corridor, err := b.buildOne(g, venueNode, entry, radiusM)
		if err != nil {
			skip := model.RoutingSkipped{Direction: entry.Direction, Reason: err.Error()}
			log.Printf("⚠️ %v", skip)
			skipped = append(skipped, skip)
			continue
		}
		corridors = append(corridors, *corridor)
	}

	log.Printf("✅ コリドー作成: %d件 (スキップ%d件)", len(corridors), len(skipped))
	return corridors, skipped, nil
}

func (b *RouteCorridorBuilder) buildOne(g *graph.RoadGraph, venueNode int64, entry model.EntryCandidate, radiusM float64) (*model.RouteCorridor, error) {
	entryNode, err := g.NearestNode(entry.Location)
	if err != nil {
		return nil, err
	}

	path, err := g.ShortestPath(venueNode, entryNode)
	if err != nil {
		return nil, err
	}
	if len(path) < 2 {
		return nil, fmt.Errorf("経路のノード数が不足しています (%d)", len(path))
	}

	coords, err := g.PathCoordinates(path)
	if err != nil {
		return nil, err
	}
	route := make(orb.LineString, len(coords))
	for i, c := range coords {
		route[i] = c.Point()
	}

	routeMerc := helper.LineStringToMercator(route)
	return &model.RouteCorridor{
		Direction:     entry.Direction,
		Entry:         entry,
		Route:         route,
		Polygon:       helper.MultiPolygonToWGS84(helper.BufferLineString(routeMerc, radiusM)),
		RadiusM:       radiusM,
		LengthM:       g.PathLength(path),
		RouteMercator: routeMerc,
	}, nil
}
