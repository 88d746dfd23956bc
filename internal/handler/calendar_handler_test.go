package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/view"
)

// newCalendarTestRouter はURLパラメータを解決するためchi経由でハンドラーを呼ぶ。
func newCalendarTestRouter(h *CalendarHandler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/calendar/{year}/{month}", h.GetMonth)
	return r
}

// TestGetMonth は42セル固定グリッドのレスポンスを検証する。
func TestGetMonth(t *testing.T) {
	service := &mockEventService{
		listFunc: func(ctx context.Context) []model.CalendarEvent {
			return []model.CalendarEvent{{ID: "e1", Date: "2024-02-14"}}
		},
	}
	h := NewCalendarHandler(service)
	h.now = fixedClock("2024-02-10")
	router := newCalendarTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/calendar/2024/2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp monthGridResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.Year != 2024 || resp.Month != 2 {
		t.Errorf("year/month = %d/%d", resp.Year, resp.Month)
	}
	if len(resp.Cells) != view.GridCells {
		t.Fatalf("got %d cells, want %d", len(resp.Cells), view.GridCells)
	}

	var hasEvent, hasToday bool
	for _, cell := range resp.Cells {
		if cell.Date == "2024-02-14" && cell.HasEvents {
			hasEvent = true
		}
		if cell.IsToday {
			hasToday = true
		}
	}
	if !hasEvent {
		t.Error("event flag missing on 2024-02-14")
	}
	if !hasToday {
		t.Error("today flag missing")
	}
}

// TestGetMonth_InvalidMonth は範囲外の月の400レスポンスを検証する。
func TestGetMonth_InvalidMonth(t *testing.T) {
	h := NewCalendarHandler(&mockEventService{})
	router := newCalendarTestRouter(h)

	for _, path := range []string{"/api/calendar/2024/13", "/api/calendar/2024/0", "/api/calendar/abc/5"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}
