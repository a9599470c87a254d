package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"FestivalMarket-App/internal/domain/helper"
	"FestivalMarket-App/internal/domain/model"
	"FestivalMarket-App/internal/domain/repository"
)

// ExportFile ダウンロード用のファイル
type ExportFile struct {
	Data        []byte
	FileName    string
	ContentType string
	Rows        int
}

// ExportUseCase 保存済みの地図生成結果を取り出す
type ExportUseCase interface {
	// ExportMarkets resultIDが空の場合はセッションの最新結果を使う
	// 他のセッションが作成した結果は見つからないものとして扱う
	ExportMarkets(ctx context.Context, sessionID, resultID string) (*ExportFile, error)
	GeoJSON(ctx context.Context, sessionID, resultID string) ([]byte, error)
}

type exportUseCaseImpl struct {
	results  repository.MapResultRepository
	sessions repository.SessionRepository
	exporter repository.MarketExporter
	now      func() time.Time
}

// NewExportUseCase 新しいExportUseCaseを作成
func NewExportUseCase(
	results repository.MapResultRepository,
	sessions repository.SessionRepository,
	exporter repository.MarketExporter,
) ExportUseCase {
	return &exportUseCaseImpl{
		results:  results,
		sessions: sessions,
		exporter: exporter,
		now:      time.Now,
	}
}

func (u *exportUseCaseImpl) ExportMarkets(ctx context.Context, sessionID, resultID string) (*ExportFile, error) {
	if resultID == "" {
		session, err := u.sessions.Get(ctx, sessionID)
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, model.ErrResultNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("セッションの取得に失敗: %w", err)
		}
		resultID = session.LastResultID
	}
	if resultID == "" {
		return nil, model.ErrResultNotFound
	}

	snapshot, err := u.findOwned(ctx, sessionID, resultID)
	if err != nil {
		return nil, err
	}

	rows := helper.DedupExportRows(snapshot.Markets)
	if len(rows) == 0 {
		return nil, model.ErrResultNotFound
	}

	data, err := u.exporter.Export(rows)
	if err != nil {
		return nil, fmt.Errorf("Fehler beim Excel-Export: %w", err)
	}
	log.Printf("✅ エクスポート完了: 結果ID=%s %d件 (重複除去前 %d件)", resultID, len(rows), len(snapshot.Markets))

	return &ExportFile{
		Data:        data,
		FileName:    u.exporter.FileName(u.now()),
		ContentType: u.exporter.ContentType(),
		Rows:        len(rows),
	}, nil
}

func (u *exportUseCaseImpl) GeoJSON(ctx context.Context, sessionID, resultID string) ([]byte, error) {
	snapshot, err := u.findOwned(ctx, sessionID, resultID)
	if err != nil {
		return nil, err
	}
	return []byte(snapshot.GeoJSON), nil
}

// findOwned セッションが所有する結果だけを返す
func (u *exportUseCaseImpl) findOwned(ctx context.Context, sessionID, resultID string) (*model.MapResultSnapshot, error) {
	snapshot, err := u.results.FindByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if snapshot.SessionID != sessionID {
		log.Printf("⚠️ 他セッションの結果へのアクセスを拒否: 結果ID=%s", resultID)
		return nil, fmt.Errorf("%w: %s", model.ErrResultNotFound, resultID)
	}
	return snapshot, nil
}
