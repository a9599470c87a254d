package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

// MapGenerationOptions パイプラインの設定値
type MapGenerationOptions struct {
	HighwayValues       []string
	JunctionLimit       int
	HasAPIKey           bool
	MaxParallelSearches int
}

// MapGenerationService 検索円 → 出入口 → Places検索 → コリドー → POI抽出 を順に実行する
type MapGenerationService interface {
	Generate(ctx context.Context, input model.MapGenerationInput) (*model.MapResult, error)
}

type mapGenerationService struct {
	area      *SearchAreaService
	entries   *EntryPointSelector
	searcher  *ParallelPlacesSearcher
	corridors *RouteCorridorBuilder
	filter    *POIFilter
	quota     *QuotaService
	hasAPIKey bool
	now       func() time.Time
}

// NewMapGenerationService 新しいMapGenerationServiceを作成
func NewMapGenerationService(
	roads repository.RoadNetworkRepository,
	places repository.PlacesRepository,
	quota *QuotaService,
	opts MapGenerationOptions,
) MapGenerationService {
	return &mapGenerationService{
		area:      NewSearchAreaService(roads),
		entries:   NewEntryPointSelector(roads, opts.HighwayValues, opts.JunctionLimit),
		searcher:  NewParallelPlacesSearcher(places, opts.MaxParallelSearches),
		corridors: NewRouteCorridorBuilder(),
		filter:    NewPOIFilter(),
		quota:     quota,
		hasAPIKey: opts.HasAPIKey,
		now:       time.Now,
	}
}

// Generate 1回分の地図生成を実行する
func (s *mapGenerationService) Generate(ctx context.Context, input model.MapGenerationInput) (*model.MapResult, error) {
	if len(input.SearchTerms) == 0 {
		return nil, model.ErrNoSearchTerms
	}

	log.Printf("🚀 地図生成開始: 会場(%.5f, %.5f) 半径%.1fkm コリドー%.1fkm 検索語%d件",
		input.Venue.Lat, input.Venue.Lng, input.RadiusKm, input.RouteRadiusKm, len(input.SearchTerms))
	start := time.Now()

	// 1. 検索円と道路ネットワーク
	area, g, err := s.area.BuildArea(ctx, input.Venue, input.RadiusKm)
	if err != nil {
		return nil, err
	}

	// 2. 方位ごとの出入口
	candidates, selected, err := s.entries.Select(ctx, area, g)
	if err != nil {
		return nil, err
	}

	// 3. Places検索（APIキーと利用上限を先に確認）
	if !s.hasAPIKey {
		return nil, model.ErrNoAPIKey
	}
	if err := s.quota.Ensure(ctx, model.APIPlaces, len(input.SearchTerms)); err != nil {
		return nil, err
	}

	radiusM := int(input.RadiusKm * 1000)
	pois := s.searcher.SearchAll(ctx, input.Venue, radiusM, input.SearchTerms)
	if len(pois) > 0 {
		if err := s.quota.Record(ctx, model.APIPlaces, len(input.SearchTerms)); err != nil {
			log.Printf("⚠️ %v", err)
		}
	}

	// 4. 経路とコリドー
	corridors, skipped, err := s.corridors.Build(g, input.Venue, selected, input.RouteRadiusKm)
	if err != nil {
		return nil, fmt.Errorf("経路探索に失敗: %w", err)
	}

	// 5. コリドー内のPOI
	matches := s.filter.Filter(pois, corridors)

	result := &model.MapResult{
		Input:      input,
		Area:       *area,
		Candidates: candidates,
		Selected:   selected,
		Corridors:  matches,
		Skipped:    skipped,
		CreatedAt:  s.now(),
	}
	log.Printf("✅ 地図生成完了: %v (方位%d件, マーケット%d件)", time.Since(start), len(matches), result.MarketsCount())
	return result, nil
}
