package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hitoshi/taskboard/internal/model"
)

const (
	sheetSummary = "Summary"
	sheetItems   = "Action Items"

	// ヘッダ行の背景色（黄）
	headerFillColor = "FFE600"
)

// GenerateExcel はアイテム集合をスプレッドシート（xlsx）へ変換する。
//
// Summaryシートに集計表、Action Itemsシートに1アイテム1行の明細を出力する。
// 明細は期限切れ優先・期日昇順で並び、ヘッダ行には太字と黄色の背景が付く。
func GenerateExcel(items []model.ActionItem, today string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("シート名の設定に失敗しました: %w", err)
	}
	if _, err := f.NewSheet(sheetItems); err != nil {
		return nil, fmt.Errorf("シートの作成に失敗しました: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{headerFillColor}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("ヘッダスタイルの作成に失敗しました: %w", err)
	}

	if err := writeSummarySheet(f, items, today, headerStyle); err != nil {
		return nil, err
	}
	if err := writeItemsSheet(f, items, today, headerStyle); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("スプレッドシートの出力に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, items []model.ActionItem, today string, headerStyle int) error {
	stats := ComputeStatistics(items, today)

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total", stats.Total},
		{"Completed", stats.Completed},
		{"In Progress", stats.InProgress},
		{"Not Started", stats.NotStarted},
		{"Blocked", stats.Blocked},
		{"Overdue", stats.Overdue},
		{"Completion Rate", fmt.Sprintf("%d%%", stats.CompletionRate)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("セル座標の変換に失敗しました: %w", err)
		}
		if err := f.SetSheetRow(sheetSummary, cell, &row); err != nil {
			return fmt.Errorf("集計行の書き込みに失敗しました: %w", err)
		}
	}

	if err := f.SetCellStyle(sheetSummary, "A1", "B1", headerStyle); err != nil {
		return fmt.Errorf("ヘッダスタイルの適用に失敗しました: %w", err)
	}
	if err := f.SetColWidth(sheetSummary, "A", "A", 20); err != nil {
		return fmt.Errorf("列幅の設定に失敗しました: %w", err)
	}
	return nil
}

func writeItemsSheet(f *excelize.File, items []model.ActionItem, today string, headerStyle int) error {
	header := []interface{}{"Description", "Owners", "Date", "Status", "Notes"}
	if err := f.SetSheetRow(sheetItems, "A1", &header); err != nil {
		return fmt.Errorf("ヘッダ行の書き込みに失敗しました: %w", err)
	}
	if err := f.SetCellStyle(sheetItems, "A1", "E1", headerStyle); err != nil {
		return fmt.Errorf("ヘッダスタイルの適用に失敗しました: %w", err)
	}

	ordered := OrderForReport(items, today)
	for i := range ordered {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("セル座標の変換に失敗しました: %w", err)
		}
		row := []interface{}{
			ordered[i].Description,
			strings.Join(ordered[i].Owners, "; "),
			ordered[i].Date,
			string(ordered[i].Status),
			PlainText(ordered[i].Notes),
		}
		if err := f.SetSheetRow(sheetItems, cell, &row); err != nil {
			return fmt.Errorf("明細行の書き込みに失敗しました: %w", err)
		}
	}

	widths := map[string]float64{"A": 45, "B": 30, "C": 12, "D": 14, "E": 50}
	for col, width := range widths {
		if err := f.SetColWidth(sheetItems, col, col, width); err != nil {
			return fmt.Errorf("列幅の設定に失敗しました: %w", err)
		}
	}
	return nil
}
