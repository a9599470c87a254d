package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FestivalMarket-App/internal/domain/model"
	repoImpl "FestivalMarket-App/internal/repository"
)

func TestExportUseCase_DedupsLastResult(t *testing.T) {
	ctx := context.Background()
	f := newMapFixture(nil)
	res, err := f.uc.GenerateMap(ctx, "s1", &model.MapRequest{Lat: ptr(50.0), Lng: ptr(8.0)})
	require.NoError(t, err)

	exporter := &fakeExporter{}
	uc := NewExportUseCase(f.results, f.sessions, exporter).(*exportUseCaseImpl)
	uc.now = fixedClock

	file, err := uc.ExportMarkets(ctx, "s1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, file.Rows)
	assert.Equal(t, "LEH_Export_20261014_093000.xlsx", file.FileName)
	assert.Equal(t, "application/test", file.ContentType)
	assert.Equal(t, []byte("xlsx"), file.Data)

	// 北のRewe、東のEDEKAの順。東のReweは重複として落ちる
	require.Len(t, exporter.rows, 2)
	assert.Equal(t, "Rewe", exporter.rows[0].Name)
	assert.Equal(t, "EDEKA", exporter.rows[1].Name)

	// 結果IDを明示しても同じ
	file, err = uc.ExportMarkets(ctx, "s1", res.ResultID)
	require.NoError(t, err)
	assert.Equal(t, 2, file.Rows)
}

func TestExportUseCase_RejectsForeignSession(t *testing.T) {
	ctx := context.Background()
	f := newMapFixture(nil)
	res, err := f.uc.GenerateMap(ctx, "s1", &model.MapRequest{Lat: ptr(50.0), Lng: ptr(8.0)})
	require.NoError(t, err)

	exporter := &fakeExporter{}
	uc := NewExportUseCase(f.results, f.sessions, exporter)

	_, err = uc.ExportMarkets(ctx, "s2", res.ResultID)
	assert.ErrorIs(t, err, model.ErrResultNotFound)
	assert.Empty(t, exporter.rows)

	_, err = uc.GeoJSON(ctx, "s2", res.ResultID)
	assert.ErrorIs(t, err, model.ErrResultNotFound)

	data, err := uc.GeoJSON(ctx, "s1", res.ResultID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestExportUseCase_NoResult(t *testing.T) {
	ctx := context.Background()
	results := repoImpl.NewMemoryMapResultRepository(time.Hour)
	sessions := repoImpl.NewMemorySessionRepository(time.Hour)
	uc := NewExportUseCase(results, sessions, &fakeExporter{})

	_, err := uc.ExportMarkets(ctx, "unbekannt", "")
	assert.ErrorIs(t, err, model.ErrResultNotFound)

	require.NoError(t, sessions.Save(ctx, &model.Session{ID: "s1"}))
	_, err = uc.ExportMarkets(ctx, "s1", "")
	assert.ErrorIs(t, err, model.ErrResultNotFound)

	_, err = uc.ExportMarkets(ctx, "s1", "fehlt")
	assert.ErrorIs(t, err, model.ErrResultNotFound)

	// マーケットが0件の結果
	require.NoError(t, results.Save(ctx, &model.MapResultSnapshot{ID: "leer", SessionID: "s1"}))
	_, err = uc.ExportMarkets(ctx, "s1", "leer")
	assert.ErrorIs(t, err, model.ErrResultNotFound)
}

func TestExportUseCase_GeoJSON(t *testing.T) {
	ctx := context.Background()
	results := repoImpl.NewMemoryMapResultRepository(time.Hour)
	require.NoError(t, results.Save(ctx, &model.MapResultSnapshot{ID: "r1", SessionID: "s1", GeoJSON: `{"type":"FeatureCollection"}`}))
	uc := NewExportUseCase(results, repoImpl.NewMemorySessionRepository(time.Hour), &fakeExporter{})

	data, err := uc.GeoJSON(ctx, "s1", "r1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection"}`, string(data))

	_, err = uc.GeoJSON(ctx, "s1", "r2")
	assert.ErrorIs(t, err, model.ErrResultNotFound)
}

func TestStatsUseCase(t *testing.T) {
	ctx := context.Background()
	quota, repo := newTestQuota(map[string]int{model.APIPlaces: 1000, model.APIGeocoding: 10000})
	_, err := repo.Increment(ctx, "2026-10", model.APIPlaces, 123)
	require.NoError(t, err)

	stats, err := NewStatsUseCase(quota).Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-10", stats.CurrentMonth)
	assert.Equal(t, model.APIUsage{CurrentUsage: 123, MaxRequests: 1000, Remaining: 877, UsagePercent: 12.3}, stats.APIs[model.APIPlaces])
	assert.Equal(t, 0.0, stats.APIs[model.APIGeocoding].UsagePercent)
}
