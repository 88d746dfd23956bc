package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskboard/internal/event"
	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/view"
)

// defaultSectionsPageSize はアジェンダ表示の1ページあたりの行数（見出し行を含む）。
const defaultSectionsPageSize = 5

// CalendarEventServiceInterface はイベントハンドラーが必要とするサービスインターフェース。
type CalendarEventServiceInterface interface {
	List(ctx context.Context) []model.CalendarEvent
	Get(ctx context.Context, id string) (*model.CalendarEvent, error)
	Create(ctx context.Context, input event.CreateInput) (*model.CalendarEvent, error)
	Update(ctx context.Context, id string, input event.UpdateInput) (*model.CalendarEvent, error)
	Delete(ctx context.Context, id string) error
}

// EventHandler はカレンダーイベント管理のHTTPハンドラー。
type EventHandler struct {
	service  CalendarEventServiceInterface
	pageSize int

	now func() time.Time // テストで固定するための時刻源
}

// NewEventHandler はEventHandlerを生成する。
// pageSizeが0以下の場合はデフォルト値を使う。
func NewEventHandler(service CalendarEventServiceInterface, pageSize int) *EventHandler {
	if pageSize <= 0 {
		pageSize = defaultSectionsPageSize
	}
	return &EventHandler{
		service:  service,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// --- リクエスト・レスポンス型 ---

// eventCreateRequest はイベント作成リクエストのボディ。
type eventCreateRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
	Poster      string `json:"poster,omitempty"`
}

// eventUpdateRequest はイベント部分更新リクエストのボディ。省略フィールドは変更しない。
type eventUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Date        *string `json:"date,omitempty"`
	Category    *string `json:"category,omitempty"`
	Description *string `json:"description,omitempty"`
	Poster      *string `json:"poster,omitempty"`
}

// eventListResponse はイベント一覧レスポンス。
type eventListResponse struct {
	Events []model.CalendarEvent `json:"events"`
}

// ListEvents はイベント一覧を日付昇順で返す。
// GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events := h.service.List(r.Context())
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
	writeJSON(w, http.StatusOK, eventListResponse{Events: events})
}

// ListSections はイベントを時間帯区分へ振り分け、ページ分割して返す。
// GET /api/events/sections?page=N
func (h *EventHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	today := h.todayParam(q.Get("today"))
	page, _ := strconv.Atoi(q.Get("page"))

	sections := view.SectionEvents(h.service.List(r.Context()), today)
	writeJSON(w, http.StatusOK, view.PaginateSections(sections, page, h.pageSize))
}

// CreateEvent はイベントを作成する。
// POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	created, err := h.service.Create(r.Context(), event.CreateInput{
		Title:       req.Title,
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Poster:      req.Poster,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// GetEvent はイベント詳細を返す。
// GET /api/events/:id
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// UpdateEvent はイベントを部分更新する。
// PATCH /api/events/:id
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req eventUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), event.UpdateInput{
		Title:       req.Title,
		Date:        req.Date,
		Category:    req.Category,
		Description: req.Description,
		Poster:      req.Poster,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// DeleteEvent はイベントを削除する。派生締切イベントの削除も許可される。冪等。
// DELETE /api/events/:id
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// todayParam はクエリのtoday（省略可）を検証し、不正・省略時はサーバー日付を返す。
func (h *EventHandler) todayParam(raw string) string {
	if raw != "" {
		if _, err := time.Parse(model.DateLayout, raw); err == nil {
			return raw
		}
	}
	return h.now().Format(model.DateLayout)
}
