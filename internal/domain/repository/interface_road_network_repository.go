package repository

import (
	"context"

	"github.com/paulmach/orb"

	"FestivalMarket-App/internal/domain/graph"
	"FestivalMarket-App/internal/domain/model"
)

// RoadNetworkRepository 車道ネットワークと高速道路関連地物の取得
type RoadNetworkRepository interface {
	// FetchGraphByPolygon ポリゴン内の車道ネットワークを取得する
	FetchGraphByPolygon(ctx context.Context, polygon orb.Polygon) (*graph.RoadGraph, error)
	// FetchGraphByPoint 指定地点から半径distanceM以内の車道ネットワークを取得する
	FetchGraphByPoint(ctx context.Context, center model.LatLng, distanceM float64) (*graph.RoadGraph, error)
	// FetchHighwayFeatures ポリゴン内で highway=<value> の地物ジオメトリを取得する
	FetchHighwayFeatures(ctx context.Context, polygon orb.Polygon, highwayValue string) ([]orb.Geometry, error)
}
