// Package export はマーケット一覧をExcelファイルに書き出す
package export

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"FestivalMarket-App/internal/domain/model"
)

const (
	// SheetName 出力シート名
	SheetName = "LEH_Export"

	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Headers 出力列の見出し
var Headers = []string{"Marktname", "Adresse", "Suchbegriff"}

// ExcelExporter excelizeでXLSXを生成する
type ExcelExporter struct{}

// NewExcelExporter 新しいExcelExporterを作成
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// ContentType XLSXのMIMEタイプ
func (e *ExcelExporter) ContentType() string {
	return contentTypeXLSX
}

// FileName ダウンロード時のファイル名
func (e *ExcelExporter) FileName(now time.Time) string {
	return fmt.Sprintf("LEH_Export_%s.xlsx", now.Format("20060102_150405"))
}

// Export 行をシートに書き込み、列幅を内容に合わせる
// 重複除去は呼び出し側で行う
func (e *ExcelExporter) Export(rows []model.ExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("シート名の設定に失敗: %w", err)
	}

	widths := make([]int, len(Headers))
	writeRow := func(rowNum int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		cells := make([]any, len(values))
		for i, v := range values {
			cells[i] = v
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
		return f.SetSheetRow(SheetName, cell, &cells)
	}

	if err := writeRow(1, Headers); err != nil {
		return nil, fmt.Errorf("見出しの書き込みに失敗: %w", err)
	}
	for i, row := range rows {
		if err := writeRow(i+2, []string{row.Name, row.Vicinity, row.SearchKeyword}); err != nil {
			return nil, fmt.Errorf("%d行目の書き込みに失敗: %w", i+2, err)
		}
	}

	for i, maxLen := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, col, col, float64(maxLen+2)*1.2); err != nil {
			return nil, fmt.Errorf("列幅の設定に失敗: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("Excelファイルの生成に失敗: %w", err)
	}
	return buf.Bytes(), nil
}
