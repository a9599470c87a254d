package repository

import (
	"context"

	"FestivalMarket-App/internal/domain/model"
)

// SessionRepository セッションごとの検索語と最新の結果ID
type SessionRepository interface {
	// Get 存在しない場合は model.ErrSessionNotFound を返す
	Get(ctx context.Context, id string) (*model.Session, error)
	Save(ctx context.Context, session *model.Session) error
}

// MapResultRepository エクスポート用の地図生成結果（TTL付き）
type MapResultRepository interface {
	Save(ctx context.Context, result *model.MapResultSnapshot) error
	// FindByID 存在しない・期限切れの場合は model.ErrResultNotFound を返す
	FindByID(ctx context.Context, id string) (*model.MapResultSnapshot, error)
}
