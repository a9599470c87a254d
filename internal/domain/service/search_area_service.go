package service

import (
	"context"
	"fmt"
	"log"

	"FestivalMarket-App/internal/domain/graph"
	"FestivalMarket-App/internal/domain/helper"
	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

// SearchAreaService 会場周辺の検索円と車道ネットワークを構築する
type SearchAreaService struct {
	roads repository.RoadNetworkRepository
}

// NewSearchAreaService 新しいSearchAreaServiceを作成
func NewSearchAreaService(roads repository.RoadNetworkRepository) *SearchAreaService {
	return &SearchAreaService{roads: roads}
}

// BuildArea 検索円を作り、その範囲の道路グラフを取得する
// ポリゴン指定での取得に失敗した場合は地点+距離指定で再試行する
func (s *SearchAreaService) BuildArea(ctx context.Context, venue model.LatLng, radiusKm float64) (*model.SearchArea, *graph.RoadGraph, error) {
	if radiusKm <= 0 {
		return nil, nil, &model.ValidationError{Field: "radius", Message: "Radius muss größer als 0 sein"}
	}

	area := &model.SearchArea{
		Venue:    venue,
		RadiusKm: radiusKm,
		Disk:     helper.DiskPolygon(venue, radiusKm),
	}

	g, err := s.roads.FetchGraphByPolygon(ctx, area.Disk)
	if err == nil && g.NodeCount() > 0 {
		log.Printf("✅ 道路ネットワーク取得 (ポリゴン): ノード%d件, エッジ%d件", g.NodeCount(), g.EdgeCount())
		return area, g, nil
	}
	if err == nil {
		err = graph.ErrEmptyGraph
	}
	log.Printf("⚠️ ポリゴンでの道路ネットワーク取得に失敗、地点指定で再試行: %v", err)

	g, fallbackErr := s.roads.FetchGraphByPoint(ctx, venue, radiusKm*1000)
	if fallbackErr == nil && g.NodeCount() == 0 {
		fallbackErr = graph.ErrEmptyGraph
	}
	if fallbackErr != nil {
		log.Printf("❌ 道路ネットワーク取得失敗: %v", fallbackErr)
		return nil, nil, fmt.Errorf("%w: %v / %v", model.ErrAreaBuild, err, fallbackErr)
	}

	log.Printf("✅ 道路ネットワーク取得 (地点): ノード%d件, エッジ%d件", g.NodeCount(), g.EdgeCount())
	return area, g, nil
}
