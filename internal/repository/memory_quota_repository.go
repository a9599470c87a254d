package repository

import (
	"context"
	"sync"

	"FestivalMarket-App/internal/domain/repository"
)

// MemoryQuotaRepository プロセス内のカウンタ（再起動でリセットされる）
type MemoryQuotaRepository struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMemoryQuotaRepository 新しいMemoryQuotaRepositoryを作成
func NewMemoryQuotaRepository() repository.QuotaRepository {
	return &MemoryQuotaRepository{counts: make(map[string]int)}
}

func (r *MemoryQuotaRepository) GetUsage(ctx context.Context, month, apiType string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[month+"/"+apiType], nil
}

func (r *MemoryQuotaRepository) Increment(ctx context.Context, month, apiType string, n int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[month+"/"+apiType] += n
	return r.counts[month+"/"+apiType], nil
}
