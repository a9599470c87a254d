package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FestivalMarket-App/internal/domain/model"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
}

func newTestQuotaService(repo *fakeQuota) *QuotaService {
	limits := map[string]int{model.APIPlaces: 10, model.APIGeocoding: 3}
	return NewQuotaService(repo, limits).WithClock(fixedClock)
}

func TestQuotaService_Check(t *testing.T) {
	ctx := context.Background()
	repo := newFakeQuota()
	repo.counts["2026-10/places"] = 8
	s := newTestQuotaService(repo)

	status, err := s.Check(ctx, model.APIPlaces, 2)
	require.NoError(t, err)
	assert.True(t, status.Allowed)
	assert.Equal(t, 8, status.CurrentUsage)
	assert.Equal(t, 2, status.Remaining)

	status, err = s.Check(ctx, model.APIPlaces, 3)
	require.NoError(t, err)
	assert.False(t, status.Allowed)

	status, err = s.Check(ctx, "autocomplete", 1)
	require.NoError(t, err)
	assert.False(t, status.Allowed)
}

func TestQuotaService_EnsureAndRecord(t *testing.T) {
	ctx := context.Background()
	repo := newFakeQuota()
	s := newTestQuotaService(repo)

	require.NoError(t, s.Ensure(ctx, model.APIGeocoding, 1))
	require.NoError(t, s.Record(ctx, model.APIGeocoding, 3))
	assert.Equal(t, 3, repo.counts["2026-10/geocoding"])

	err := s.Ensure(ctx, model.APIGeocoding, 1)
	assert.ErrorIs(t, err, model.ErrQuotaExceeded)

	// 上限のないAPI種別は記録しない
	require.NoError(t, s.Record(ctx, "autocomplete", 1))
	assert.NotContains(t, repo.counts, "2026-10/autocomplete")
}

func TestQuotaService_Stats(t *testing.T) {
	repo := newFakeQuota()
	repo.counts["2026-10/places"] = 1
	repo.counts["2026-10/geocoding"] = 1
	repo.counts["2026-09/places"] = 9
	s := newTestQuotaService(repo)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-10", stats.CurrentMonth)
	assert.Equal(t, model.APIUsage{CurrentUsage: 1, MaxRequests: 10, Remaining: 9, UsagePercent: 10}, stats.APIs[model.APIPlaces])
	assert.Equal(t, model.APIUsage{CurrentUsage: 1, MaxRequests: 3, Remaining: 2, UsagePercent: 33.3}, stats.APIs[model.APIGeocoding])
}

func TestQuotaService_RepositoryError(t *testing.T) {
	repo := newFakeQuota()
	repo.err = errUpstream
	s := newTestQuotaService(repo)

	_, err := s.Check(context.Background(), model.APIPlaces, 1)
	assert.ErrorIs(t, err, errUpstream)

	_, err = s.Stats(context.Background())
	assert.ErrorIs(t, err, errUpstream)
}
