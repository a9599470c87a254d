package repository

import (
	"context"
	"fmt"
	"log"

	"github.com/paulmach/orb"

	"FestivalMarket-App/internal/domain/graph"
	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
	"FestivalMarket-App/internal/infrastructure/osm"
)

// OverpassRoadNetworkRepository Overpass APIからOSMの車道ネットワークを取得する
type OverpassRoadNetworkRepository struct {
	client *osm.Client
}

// NewOverpassRoadNetworkRepository 新しいOverpassRoadNetworkRepositoryを作成
func NewOverpassRoadNetworkRepository(client *osm.Client) repository.RoadNetworkRepository {
	return &OverpassRoadNetworkRepository{client: client}
}

func (r *OverpassRoadNetworkRepository) FetchGraphByPolygon(ctx context.Context, polygon orb.Polygon) (*graph.RoadGraph, error) {
	result, err := r.client.Query(ctx, r.client.DriveNetworkByPolygonQuery(polygon))
	if err != nil {
		return nil, model.NewExternalServiceError("Overpass", err)
	}

	g, err := osm.BuildRoadGraph(result)
	if err != nil {
		return nil, fmt.Errorf("道路グラフの構築に失敗: %w", err)
	}
	log.Printf("🗺️ 道路ネットワーク取得 (ポリゴン): ノード%d件, エッジ%d件", g.NodeCount(), g.EdgeCount())
	return g, nil
}

func (r *OverpassRoadNetworkRepository) FetchGraphByPoint(ctx context.Context, center model.LatLng, distanceM float64) (*graph.RoadGraph, error) {
	result, err := r.client.Query(ctx, r.client.DriveNetworkAroundQuery(center, distanceM))
	if err != nil {
		return nil, model.NewExternalServiceError("Overpass", err)
	}

	g, err := osm.BuildRoadGraph(result)
	if err != nil {
		return nil, fmt.Errorf("道路グラフの構築に失敗: %w", err)
	}
	log.Printf("🗺️ 道路ネットワーク取得 (地点): ノード%d件, エッジ%d件", g.NodeCount(), g.EdgeCount())
	return g, nil
}

func (r *OverpassRoadNetworkRepository) FetchHighwayFeatures(ctx context.Context, polygon orb.Polygon, highwayValue string) ([]orb.Geometry, error) {
	result, err := r.client.Query(ctx, r.client.HighwayFeatureQuery(polygon, highwayValue))
	if err != nil {
		return nil, model.NewExternalServiceError("Overpass", err)
	}
	return osm.FeatureGeometries(result, highwayValue), nil
}
