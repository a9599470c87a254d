package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FestivalMarket-App/internal/domain/model"
)

// concurrencyPlaces 同時に実行中の呼び出し数の最大値を記録する
type concurrencyPlaces struct {
	mu      sync.Mutex
	active  int
	maxSeen int
	calls   []string
}

func (c *concurrencyPlaces) SearchNearby(ctx context.Context, center model.LatLng, radiusM int, keyword string) ([]model.POI, error) {
	c.mu.Lock()
	c.active++
	if c.active > c.maxSeen {
		c.maxSeen = c.active
	}
	c.calls = append(c.calls, keyword)
	c.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	c.mu.Lock()
	c.active--
	c.mu.Unlock()
	return []model.POI{{Name: keyword + " Markt", SearchKeyword: keyword}}, nil
}

func TestParallelPlacesSearcher_DefaultIsSequential(t *testing.T) {
	places := &concurrencyPlaces{}
	searcher := NewParallelPlacesSearcher(places, 0)
	terms := []string{"Rewe", "EDEKA", "Globus", "Trinkgut"}

	pois := searcher.SearchAll(context.Background(), testVenue, 40000, terms)

	assert.Equal(t, 1, places.maxSeen)
	assert.Equal(t, terms, places.calls)
	require.Len(t, pois, 4)
	for i, term := range terms {
		assert.Equal(t, term, pois[i].SearchKeyword)
	}
}

func TestParallelPlacesSearcher_BoundedConcurrencyKeepsOrder(t *testing.T) {
	places := &concurrencyPlaces{}
	searcher := NewParallelPlacesSearcher(places, 2)
	terms := []string{"Rewe", "EDEKA", "Globus", "Trinkgut", "Kaufland"}

	pois := searcher.SearchAll(context.Background(), testVenue, 40000, terms)

	assert.LessOrEqual(t, places.maxSeen, 2)
	require.Len(t, pois, 5)
	for i, term := range terms {
		assert.Equal(t, term, pois[i].SearchKeyword)
	}
}

func TestParallelPlacesSearcher_CancelledContext(t *testing.T) {
	places := &concurrencyPlaces{}
	searcher := NewParallelPlacesSearcher(places, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pois := searcher.SearchAll(ctx, testVenue, 40000, []string{"Rewe", "EDEKA"})

	assert.Empty(t, pois)
	assert.Empty(t, places.calls)
}
