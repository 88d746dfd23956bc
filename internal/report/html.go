package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/hitoshi/taskboard/internal/model"
)

//go:embed report.html.tmpl
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

// reportItem はテンプレートに渡す明細1件。
type reportItem struct {
	Description string
	Owners      string
	Date        string
	Status      string
	Notes       string
	Overdue     bool
}

// reportData はテンプレートに渡すルートデータ。
type reportData struct {
	GeneratedAt string
	Today       string
	Stats       Statistics
	Items       []reportItem
}

// GenerateHTMLReport は集計カードと明細リストを含む自己完結のHTMLレポートを生成する。
// 明細は期限切れ優先・期日昇順で並ぶ。
func GenerateHTMLReport(items []model.ActionItem, today string, generatedAt time.Time) ([]byte, error) {
	ordered := OrderForReport(items, today)

	data := reportData{
		GeneratedAt: generatedAt.Format("2006-01-02 15:04"),
		Today:       today,
		Stats:       ComputeStatistics(items, today),
		Items:       make([]reportItem, len(ordered)),
	}
	for i := range ordered {
		data.Items[i] = reportItem{
			Description: ordered[i].Description,
			Owners:      ordered[i].OwnersJoined(),
			Date:        ordered[i].Date,
			Status:      string(ordered[i].Status),
			Notes:       PlainText(ordered[i].Notes),
			Overdue:     ordered[i].IsOverdue(today),
		}
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("HTMLレポートの生成に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}
