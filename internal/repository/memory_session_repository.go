package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

type memorySession struct {
	session   model.Session
	touchedAt time.Time
}

// MemorySessionRepository プロセス内のセッションストア
// 最後の保存からlifetimeを過ぎたセッションは存在しないものとして扱う
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
	lifetime time.Duration
	now      func() time.Time
}

// NewMemorySessionRepository 新しいMemorySessionRepositoryを作成
func NewMemorySessionRepository(lifetime time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{
		sessions: make(map[string]memorySession),
		lifetime: lifetime,
		now:      time.Now,
	}
}

var _ repository.SessionRepository = (*MemorySessionRepository)(nil)

func (r *MemorySessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.sessions[id]
	if !ok || r.expired(entry) {
		return nil, fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
	}

	s := entry.session
	s.SearchTerms = append([]string(nil), entry.session.SearchTerms...)
	return &s, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.sessions {
		if r.expired(entry) {
			delete(r.sessions, id)
		}
	}

	s := *session
	s.SearchTerms = append([]string(nil), session.SearchTerms...)
	r.sessions[session.ID] = memorySession{session: s, touchedAt: r.now()}
	return nil
}

func (r *MemorySessionRepository) expired(entry memorySession) bool {
	return r.lifetime > 0 && r.now().Sub(entry.touchedAt) > r.lifetime
}
