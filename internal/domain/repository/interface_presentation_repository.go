package repository

import (
	"time"

	"FestivalMarket-App/internal/domain/model"
)

// MapRenderer 地図生成結果を表示用ドキュメントに変換する
type MapRenderer interface {
	RenderHTML(result *model.MapResult) (string, error)
	RenderGeoJSON(result *model.MapResult) ([]byte, error)
}

// MarketExporter 出力行を表計算ファイルに書き出す
type MarketExporter interface {
	Export(rows []model.ExportRow) ([]byte, error)
	ContentType() string
	FileName(now time.Time) string
}
