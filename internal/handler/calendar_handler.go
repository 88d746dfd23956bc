package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/view"
)

// CalendarHandler は月次カレンダーグリッドのHTTPハンドラー。
type CalendarHandler struct {
	events CalendarEventServiceInterface

	now func() time.Time // テストで固定するための時刻源
}

// NewCalendarHandler はCalendarHandlerを生成する。
func NewCalendarHandler(events CalendarEventServiceInterface) *CalendarHandler {
	return &CalendarHandler{
		events: events,
		now:    time.Now,
	}
}

// monthGridResponse は月次グリッドのレスポンス。
type monthGridResponse struct {
	Year  int            `json:"year"`
	Month int            `json:"month"`
	Cells []view.DayCell `json:"cells"`
}

// GetMonth は指定年月の42セル固定グリッドを返す。
// GET /api/calendar/:year/:month
func (h *CalendarHandler) GetMonth(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("無効な年です"))
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewValidationError("無効な月です"))
		return
	}

	today := h.now().Format(model.DateLayout)
	if raw := r.URL.Query().Get("today"); raw != "" {
		if _, parseErr := time.Parse(model.DateLayout, raw); parseErr == nil {
			today = raw
		}
	}

	cells := view.MonthGrid(year, time.Month(month), h.events.List(r.Context()), today)
	writeJSON(w, http.StatusOK, monthGridResponse{
		Year:  year,
		Month: month,
		Cells: cells,
	})
}
