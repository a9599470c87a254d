package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
	"FestivalMarket-App/internal/infrastructure/database"
)

const sessionsTable = "sessions"

// sessionRow sessionsテーブルの1行
type sessionRow struct {
	SessionID    string    `json:"session_id"`
	SearchTerms  []string  `json:"search_terms"`
	LastResultID string    `json:"last_result_id"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type SupabaseSessionRepository struct {
	client *database.SupabaseClient
	now    func() time.Time
}

func NewSupabaseSessionRepository(client *database.SupabaseClient) repository.SessionRepository {
	return &SupabaseSessionRepository{
		client: client,
		now:    time.Now,
	}
}

func (r *SupabaseSessionRepository) Get(ctx context.Context, id string) (*model.Session, error) {
	data, _, err := r.client.GetClient().From(sessionsTable).Select("*", "exact", false).Eq("session_id", id).Execute()
	if err != nil {
		return nil, fmt.Errorf("セッションの取得失敗: %w", err)
	}

	var rows []sessionRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("セッションのJSONアンマーシャル失敗: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrSessionNotFound, id)
	}

	row := rows[0]
	return &model.Session{
		ID:           row.SessionID,
		SearchTerms:  row.SearchTerms,
		LastResultID: row.LastResultID,
	}, nil
}

// Save session_id をキーにUPSERTする
func (r *SupabaseSessionRepository) Save(ctx context.Context, session *model.Session) error {
	row := sessionRow{
		SessionID:    session.ID,
		SearchTerms:  session.SearchTerms,
		LastResultID: session.LastResultID,
		UpdatedAt:    r.now().UTC(),
	}
	if row.SearchTerms == nil {
		row.SearchTerms = []string{}
	}

	_, _, err := r.client.GetClient().From(sessionsTable).Insert(row, true, "session_id", "", "").Execute()
	if err != nil {
		return fmt.Errorf("セッションの保存失敗: %w", err)
	}
	return nil
}
