package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/report"
)

// ExportRecorder はエクスポート生成のメトリクス記録のインターフェース。
type ExportRecorder interface {
	RecordExportGenerated(format string)
}

// ExportHandler はCSV・Excel・HTMLレポートのエクスポートを提供するHTTPハンドラー。
type ExportHandler struct {
	items   ActionItemServiceInterface
	metrics ExportRecorder

	now func() time.Time // テストで固定するための時刻源
}

// NewExportHandler はExportHandlerを生成する。
func NewExportHandler(items ActionItemServiceInterface, metrics ExportRecorder) *ExportHandler {
	return &ExportHandler{
		items:   items,
		metrics: metrics,
		now:     time.Now,
	}
}

// ExportCSV は全アイテムをCSVとして出力する。
// GET /api/export/csv
func (h *ExportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format(model.DateLayout)

	out, err := report.GenerateCSV(h.items.List(r.Context()))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordExportGenerated("csv")
	writeAttachment(w, "text/csv; charset=utf-8", report.ExportFilename("csv", today), []byte(out))
}

// ExportExcel は全アイテムをサマリー付きのxlsxとして出力する。
// GET /api/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	today := h.now().Format(model.DateLayout)

	data, err := report.GenerateExcel(h.items.List(r.Context()), today)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordExportGenerated("excel")
	writeAttachment(w,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		report.ExportFilename("xlsx", today), data)
}

// ExportReport は全アイテムの単一ページHTMLレポートを出力する。
// GET /api/export/report
func (h *ExportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	today := now.Format(model.DateLayout)

	data, err := report.GenerateHTMLReport(h.items.List(r.Context()), today, now)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	h.metrics.RecordExportGenerated("report")
	writeAttachment(w, "text/html; charset=utf-8", report.ExportFilename("html", today), data)
}

// writeAttachment はダウンロードレスポンスを書き込む。
func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
