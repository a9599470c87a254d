package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

type memoryMapResult struct {
	snapshot model.MapResultSnapshot
	expireAt time.Time
}

// MemoryMapResultRepository プロセス内に地図生成結果を保持するストア
type MemoryMapResultRepository struct {
	mu      sync.RWMutex
	results map[string]memoryMapResult
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryMapResultRepository 新しいMemoryMapResultRepositoryを作成
func NewMemoryMapResultRepository(ttl time.Duration) *MemoryMapResultRepository {
	return &MemoryMapResultRepository{
		results: make(map[string]memoryMapResult),
		ttl:     ttl,
		now:     time.Now,
	}
}

var _ repository.MapResultRepository = (*MemoryMapResultRepository)(nil)

// Save 保存時に期限切れの結果を掃除する
func (r *MemoryMapResultRepository) Save(ctx context.Context, result *model.MapResultSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, stored := range r.results {
		if now.After(stored.expireAt) {
			delete(r.results, id)
		}
	}
	r.results[result.ID] = memoryMapResult{snapshot: *result, expireAt: now.Add(r.ttl)}
	return nil
}

func (r *MemoryMapResultRepository) FindByID(ctx context.Context, id string) (*model.MapResultSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.results[id]
	if !ok || r.now().After(stored.expireAt) {
		return nil, fmt.Errorf("%w: %s", model.ErrResultNotFound, id)
	}
	snapshot := stored.snapshot
	return &snapshot, nil
}
