package report

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/hitoshi/taskboard/internal/model"
)

// csvHeader はCSVの固定ヘッダ行。
var csvHeader = []string{"Description", "Owners", "Date", "Status", "Notes"}

// stripPolicy はリッチテキストをプレーンテキスト化するためのポリシー。
// タグを一切許可しないことでテキストのみを残す。
var stripPolicy = bluemonday.StrictPolicy()

// GenerateCSV はアイテム集合をクォートエスケープ済みのCSVテキストへ変換する。
// 行順は入力の順序をそのまま使う。メモはタグを除去したプレーンテキストになる。
func GenerateCSV(items []model.ActionItem) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("CSVヘッダの書き込みに失敗しました: %w", err)
	}
	for i := range items {
		record := []string{
			items[i].Description,
			strings.Join(items[i].Owners, "; "),
			items[i].Date,
			string(items[i].Status),
			PlainText(items[i].Notes),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("CSV行の書き込みに失敗しました: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("CSVの出力に失敗しました: %w", err)
	}
	return buf.String(), nil
}

// PlainText はリッチテキストHTMLからタグを除去したプレーンテキストを返す。
func PlainText(richHTML string) string {
	return strings.TrimSpace(stripPolicy.Sanitize(richHTML))
}

// ExportFilename はエクスポートファイル名 "taskboard-YYYY-MM-DD.<ext>" を返す。
func ExportFilename(ext string, today string) string {
	return fmt.Sprintf("taskboard-%s.%s", today, ext)
}
