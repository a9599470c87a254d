package usecase

import (
	"context"
	"errors"
	"time"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/service"
	repoImpl "FestivalMarket-App/internal/repository"
)

var errUpstream = errors.New("upstream kaputt")

func ptr[T any](v T) *T { return &v }

func fixedClock() time.Time {
	return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
}

func newTestQuota(limits map[string]int) (*service.QuotaService, *repoImpl.MemoryQuotaRepository) {
	repo := repoImpl.NewMemoryQuotaRepository().(*repoImpl.MemoryQuotaRepository)
	return service.NewQuotaService(repo, limits).WithClock(fixedClock), repo
}

// fakeGenerator 固定のMapResultを返すパイプライン
type fakeGenerator struct {
	result *model.MapResult
	err    error
	inputs []model.MapGenerationInput
}

func (f *fakeGenerator) Generate(ctx context.Context, input model.MapGenerationInput) (*model.MapResult, error) {
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) RenderHTML(result *model.MapResult) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "<div id=\"map\"></div>", nil
}

func (f *fakeRenderer) RenderGeoJSON(result *model.MapResult) ([]byte, error) {
	return []byte(`{"type":"FeatureCollection","features":[]}`), nil
}

type fakeGeocoder struct {
	result *model.GeocodeResult
	err    error
	calls  int
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (*model.GeocodeResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeExporter struct {
	rows []model.ExportRow
}

func (f *fakeExporter) Export(rows []model.ExportRow) ([]byte, error) {
	f.rows = rows
	return []byte("xlsx"), nil
}

func (f *fakeExporter) ContentType() string { return "application/test" }

func (f *fakeExporter) FileName(now time.Time) string { return "LEH_Export_" + now.Format("20060102_150405") + ".xlsx" }

// sampleResult 北と東のコリドーがあり、同じ店舗が両方に含まれる結果
func sampleResult() *model.MapResult {
	rewe := model.POI{Name: "Rewe", Vicinity: "Hauptstr. 1", SearchKeyword: "Rewe", Location: model.LatLng{Lat: 50.01, Lng: 8.0}}
	edeka := model.POI{Name: "EDEKA", Vicinity: "Ringstr. 5", SearchKeyword: "EDEKA", Location: model.LatLng{Lat: 50.0, Lng: 8.02}}
	return &model.MapResult{
		Corridors: []model.CorridorMatch{
			{Corridor: model.RouteCorridor{Direction: model.DirectionN}, Markets: []model.POI{rewe}},
			{Corridor: model.RouteCorridor{Direction: model.DirectionE}, Markets: []model.POI{edeka, rewe}},
		},
		Skipped: []model.RoutingSkipped{{Direction: model.DirectionS, Reason: "kein Pfad"}},
	}
}
