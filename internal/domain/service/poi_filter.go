package service

import (
	"log"

	"FestivalMarket-App/internal/domain/helper"
	"FestivalMarket-App/internal/domain/model"
)

// POIFilter コリドー内のPOIを抽出する
type POIFilter struct{}

// NewPOIFilter 新しいPOIFilterを作成
func NewPOIFilter() *POIFilter {
	return &POIFilter{}
}

// Filter コリドーごとに内側のPOIを返す
// 複数のコリドーに含まれるPOIはそれぞれのコリドーに重複して現れる
func (f *POIFilter) Filter(pois []model.POI, corridors []model.RouteCorridor) []model.CorridorMatch {
	matches := make([]model.CorridorMatch, 0, len(corridors))
	for i := range corridors {
		markets := helper.FilterInCorridor(pois, &corridors[i])
		log.Printf("📍 方位%s: マーケット%d件", corridors[i].Direction, len(markets))
		matches = append(matches, model.CorridorMatch{
			Corridor: corridors[i],
			Markets:  markets,
		})
	}
	return matches
}
