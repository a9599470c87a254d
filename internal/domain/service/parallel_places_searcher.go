package service

import (
	"context"
	"log"
	"sync"
	"time"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

// defaultMaxGoroutines Places APIへの同時リクエスト数の上限（1なら検索語の順に逐次実行）
const defaultMaxGoroutines = 1

// ParallelPlacesSearcher 検索語ごとのPlaces検索を実行する
// 同時実行数は maxGoroutines まで。呼び出しは常に検索語の順に開始する
type ParallelPlacesSearcher struct {
	places        repository.PlacesRepository
	maxGoroutines int
}

// NewParallelPlacesSearcher 新しい並行検索インスタンスを作成
func NewParallelPlacesSearcher(places repository.PlacesRepository, maxGoroutines int) *ParallelPlacesSearcher {
	if maxGoroutines <= 0 {
		maxGoroutines = defaultMaxGoroutines
	}
	return &ParallelPlacesSearcher{
		places:        places,
		maxGoroutines: maxGoroutines,
	}
}

// termResult 検索語ごとの結果
type termResult struct {
	pois []model.POI
	err  error
}

// SearchAll すべての検索語で検索し、検索語の順に結果を連結して返す
// 失敗した検索語はログに残して読み飛ばす。ctxがキャンセルされると未開始の検索語は実行しない
func (p *ParallelPlacesSearcher) SearchAll(ctx context.Context, center model.LatLng, radiusM int, terms []string) []model.POI {
	log.Printf("🚀 Places検索開始: %d語 (同時実行数上限:%d)", len(terms), p.maxGoroutines)
	start := time.Now()

	// セマフォで同時実行数を制限
	semaphore := make(chan struct{}, p.maxGoroutines)
	results := make([]termResult, len(terms))
	var wg sync.WaitGroup

	for i, term := range terms {
		if err := ctx.Err(); err != nil {
			results[i] = termResult{err: err}
			continue
		}
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			results[i] = termResult{err: ctx.Err()}
			continue
		}

		wg.Add(1)
		go func(index int, keyword string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			pois, err := p.places.SearchNearby(ctx, center, radiusM, keyword)
			results[index] = termResult{pois: pois, err: err}
		}(i, term)
	}
	wg.Wait()

	var all []model.POI
	successCount, errorCount := 0, 0
	for i, result := range results {
		if result.err != nil {
			errorCount++
			log.Printf("⚠️ 検索語 '%s' の検索に失敗: %v", terms[i], result.err)
			continue
		}
		successCount++
		all = append(all, result.pois...)
	}

	log.Printf("✅ Places検索完了: %v (成功:%d, 失敗:%d, マーケット%d件)", time.Since(start), successCount, errorCount, len(all))
	return all
}
