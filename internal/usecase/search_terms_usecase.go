package usecase

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

// SearchTermsUseCase セッションごとの検索語リストを管理する
type SearchTermsUseCase interface {
	List(ctx context.Context, sessionID string) (*model.SearchTermsResponse, error)
	Add(ctx context.Context, sessionID, term string) (*model.SearchTermsResponse, error)
	Remove(ctx context.Context, sessionID string, index int) (*model.SearchTermsResponse, error)
	Reset(ctx context.Context, sessionID string) (*model.SearchTermsResponse, error)
}

type searchTermsUseCaseImpl struct {
	sessions     repository.SessionRepository
	defaultTerms []string
}

// NewSearchTermsUseCase 新しいSearchTermsUseCaseを作成
func NewSearchTermsUseCase(sessions repository.SessionRepository, defaultTerms []string) SearchTermsUseCase {
	return &searchTermsUseCaseImpl{
		sessions:     sessions,
		defaultTerms: append([]string{}, defaultTerms...),
	}
}

func (u *searchTermsUseCaseImpl) List(ctx context.Context, sessionID string) (*model.SearchTermsResponse, error) {
	session, err := loadSession(ctx, u.sessions, sessionID, u.defaultTerms)
	if err != nil {
		return nil, err
	}
	return &model.SearchTermsResponse{SearchTerms: session.SearchTerms}, nil
}

// Add 前後の空白を除いた検索語を末尾に追加する
func (u *searchTermsUseCaseImpl) Add(ctx context.Context, sessionID, term string) (*model.SearchTermsResponse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, &model.ValidationError{Field: "term", Message: "Leerer Suchbegriff"}
	}

	session, err := loadSession(ctx, u.sessions, sessionID, u.defaultTerms)
	if err != nil {
		return nil, err
	}
	if slices.Contains(session.SearchTerms, term) {
		return nil, &model.ValidationError{Field: "term", Message: fmt.Sprintf("Suchbegriff '%s' bereits vorhanden", term)}
	}

	session.SearchTerms = append(session.SearchTerms, term)
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("検索語の保存に失敗: %w", err)
	}
	log.Printf("✅ 検索語を追加: %s (%d件)", term, len(session.SearchTerms))

	return &model.SearchTermsResponse{
		Success:     true,
		Message:     fmt.Sprintf("Suchbegriff '%s' hinzugefügt", term),
		SearchTerms: session.SearchTerms,
	}, nil
}

func (u *searchTermsUseCaseImpl) Remove(ctx context.Context, sessionID string, index int) (*model.SearchTermsResponse, error) {
	session, err := loadSession(ctx, u.sessions, sessionID, u.defaultTerms)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(session.SearchTerms) {
		return nil, &model.ValidationError{Field: "index", Message: "Ungültiger Index"}
	}

	removed := session.SearchTerms[index]
	session.SearchTerms = slices.Delete(session.SearchTerms, index, index+1)
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("検索語の保存に失敗: %w", err)
	}
	log.Printf("✅ 検索語を削除: %s", removed)

	return &model.SearchTermsResponse{
		Success:     true,
		Message:     fmt.Sprintf("Suchbegriff '%s' entfernt", removed),
		SearchTerms: session.SearchTerms,
	}, nil
}

// Reset 既定の検索語に戻す（最新の結果IDは維持する）
func (u *searchTermsUseCaseImpl) Reset(ctx context.Context, sessionID string) (*model.SearchTermsResponse, error) {
	session, err := loadSession(ctx, u.sessions, sessionID, u.defaultTerms)
	if err != nil {
		return nil, err
	}

	session.SearchTerms = append([]string{}, u.defaultTerms...)
	if err := u.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("検索語の保存に失敗: %w", err)
	}

	return &model.SearchTermsResponse{
		Success:     true,
		Message:     "Suchbegriffe zurückgesetzt",
		SearchTerms: session.SearchTerms,
	}, nil
}
