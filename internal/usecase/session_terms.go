package usecase

import (
	"context"
	"errors"
	"fmt"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

// loadSession セッションを取得する。未登録の場合は既定の検索語をコピーした新しいセッションを返す
func loadSession(ctx context.Context, sessions repository.SessionRepository, id string, defaults []string) (*model.Session, error) {
	session, err := sessions.Get(ctx, id)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, model.ErrSessionNotFound) {
		return nil, fmt.Errorf("セッションの取得に失敗: %w", err)
	}
	return &model.Session{
		ID:          id,
		SearchTerms: append([]string{}, defaults...),
	}, nil
}
