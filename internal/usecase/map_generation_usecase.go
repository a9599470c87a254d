package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
	"FestivalMarket-App/internal/domain/service"
)

// MapGenerationUseCase 地図を生成し、エクスポート用に結果を保存する
type MapGenerationUseCase interface {
	GenerateMap(ctx context.Context, sessionID string, req *model.MapRequest) (*model.MapResponse, error)
}

// MapRequestLimits リクエストの既定値と許容範囲
type MapRequestLimits struct {
	DefaultTerms         []string
	DefaultRadiusKm      float64
	MinRadiusKm          float64
	MaxRadiusKm          float64
	DefaultRouteRadiusKm float64
}

type mapGenerationUseCaseImpl struct {
	generator service.MapGenerationService
	renderer  repository.MapRenderer
	results   repository.MapResultRepository
	sessions  repository.SessionRepository
	limits    MapRequestLimits
	now       func() time.Time
}

// NewMapGenerationUseCase 新しいMapGenerationUseCaseを作成
func NewMapGenerationUseCase(
	generator service.MapGenerationService,
	renderer repository.MapRenderer,
	results repository.MapResultRepository,
	sessions repository.SessionRepository,
	limits MapRequestLimits,
) MapGenerationUseCase {
	return &mapGenerationUseCaseImpl{
		generator: generator,
		renderer:  renderer,
		results:   results,
		sessions:  sessions,
		limits:    limits,
		now:       time.Now,
	}
}

func (u *mapGenerationUseCaseImpl) GenerateMap(ctx context.Context, sessionID string, req *model.MapRequest) (*model.MapResponse, error) {
	input, err := u.buildInput(req)
	if err != nil {
		return nil, err
	}

	session, err := loadSession(ctx, u.sessions, sessionID, u.limits.DefaultTerms)
	if err != nil {
		return nil, err
	}

	// selected_terms が無い場合はセッションの検索語を使う（空配列はそのまま）
	if req.SelectedTerms != nil {
		input.SearchTerms = req.SelectedTerms
	} else {
		input.SearchTerms = session.SearchTerms
	}

	result, err := u.generator.Generate(ctx, input)
	if err != nil {
		return nil, err
	}

	mapHTML, err := u.renderer.RenderHTML(result)
	if err != nil {
		return nil, fmt.Errorf("Fehler bei der Kartenerstellung: %w", err)
	}
	geoJSON, err := u.renderer.RenderGeoJSON(result)
	if err != nil {
		return nil, fmt.Errorf("GeoJSONの生成に失敗: %w", err)
	}

	skipped := result.Skipped
	if skipped == nil {
		skipped = []model.RoutingSkipped{}
	}

	snapshot := &model.MapResultSnapshot{
		ID:            uuid.NewString(),
		SessionID:     sessionID,
		Venue:         input.Venue,
		RadiusKm:      input.RadiusKm,
		RouteRadiusKm: input.RouteRadiusKm,
		Directions:    result.Directions(),
		Skipped:       skipped,
		Markets:       result.ExportRows(),
		GeoJSON:       string(geoJSON),
		CreatedAt:     u.now().UTC(),
	}
	if err := u.results.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("地図生成結果の保存に失敗: %w", err)
	}

	session.LastResultID = snapshot.ID
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("セッションの保存に失敗: %w", err)
	}

	log.Printf("✅ 地図生成完了: 結果ID=%s 方位%d件 マーカー%d件", snapshot.ID, len(snapshot.Directions), result.MarketsCount())

	return &model.MapResponse{
		Map:          mapHTML,
		ResultID:     snapshot.ID,
		Directions:   snapshot.Directions,
		Skipped:      skipped,
		MarketsCount: result.MarketsCount(),
	}, nil
}

// buildInput 座標の必須チェックと半径の範囲チェック
func (u *mapGenerationUseCaseImpl) buildInput(req *model.MapRequest) (model.MapGenerationInput, error) {
	if req == nil || req.Lat == nil || req.Lng == nil {
		return model.MapGenerationInput{}, &model.ValidationError{Field: "lat/lng", Message: "Fehlende Koordinaten"}
	}
	if *req.Lat < -90 || *req.Lat > 90 || *req.Lng < -180 || *req.Lng > 180 {
		return model.MapGenerationInput{}, &model.ValidationError{Field: "lat/lng", Message: "Ungültige Koordinaten"}
	}

	radius := u.limits.DefaultRadiusKm
	if req.Radius != nil {
		radius = *req.Radius
	}
	if radius < u.limits.MinRadiusKm || radius > u.limits.MaxRadiusKm {
		return model.MapGenerationInput{}, &model.ValidationError{
			Field:   "radius",
			Message: fmt.Sprintf("Radius muss zwischen %g und %g km liegen", u.limits.MinRadiusKm, u.limits.MaxRadiusKm),
		}
	}

	routeRadius := u.limits.DefaultRouteRadiusKm
	if req.RouteRadius != nil {
		routeRadius = *req.RouteRadius
	}
	if routeRadius <= 0 {
		return model.MapGenerationInput{}, &model.ValidationError{Field: "route_radius", Message: "Routenradius muss größer als 0 sein"}
	}

	return model.MapGenerationInput{
		Venue:         model.LatLng{Lat: *req.Lat, Lng: *req.Lng},
		RadiusKm:      radius,
		RouteRadiusKm: routeRadius,
	}, nil
}
