package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"FestivalMarket-App/internal/domain/repository"
	"FestivalMarket-App/internal/infrastructure/database"
)

const createAPIUsageTable = `CREATE TABLE IF NOT EXISTS api_usage (
	month    TEXT    NOT NULL,
	api_type TEXT    NOT NULL,
	count    INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (month, api_type)
)`

// PostgresQuotaRepository PostgreSQLのapi_usageテーブルでAPI利用回数を管理する
type PostgresQuotaRepository struct {
	client *database.PostgreSQLClient
}

// NewPostgresQuotaRepository テーブルが無ければ作成する
func NewPostgresQuotaRepository(ctx context.Context, client *database.PostgreSQLClient) (repository.QuotaRepository, error) {
	if _, err := client.DB.ExecContext(ctx, createAPIUsageTable); err != nil {
		return nil, fmt.Errorf("api_usageテーブルの作成に失敗: %w", err)
	}
	return &PostgresQuotaRepository{client: client}, nil
}

func (r *PostgresQuotaRepository) GetUsage(ctx context.Context, month, apiType string) (int, error) {
	query := `SELECT count FROM api_usage WHERE month = $1 AND api_type = $2`

	var count int
	err := r.client.DB.QueryRowContext(ctx, query, month, apiType).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("API利用回数の取得に失敗: %w", err)
	}
	return count, nil
}

// Increment は UPSERT で加算するため同時リクエストでも取りこぼさない
func (r *PostgresQuotaRepository) Increment(ctx context.Context, month, apiType string, n int) (int, error) {
	query := `
		INSERT INTO api_usage (month, api_type, count)
		VALUES ($1, $2, $3)
		ON CONFLICT (month, api_type)
		DO UPDATE SET count = api_usage.count + EXCLUDED.count
		RETURNING count`

	var count int
	if err := r.client.DB.QueryRowContext(ctx, query, month, apiType, n).Scan(&count); err != nil {
		return 0, fmt.Errorf("API利用回数の加算に失敗: %w", err)
	}
	return count, nil
}
