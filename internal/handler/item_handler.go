package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskboard/internal/actionitem"
	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/view"
)

// ActionItemServiceInterface はアイテムハンドラーが必要とするサービスインターフェース。
type ActionItemServiceInterface interface {
	List(ctx context.Context) []model.ActionItem
	Get(ctx context.Context, id string) (*model.ActionItem, error)
	Create(ctx context.Context, input actionitem.CreateInput) (*model.ActionItem, error)
	Update(ctx context.Context, id string, input actionitem.UpdateInput) (*model.ActionItem, error)
	UpdateStatus(ctx context.Context, id string, status string) (*model.ActionItem, error)
	Delete(ctx context.Context, id string) error
}

// ItemHandler はアクションアイテム管理のHTTPハンドラー。
type ItemHandler struct {
	service ActionItemServiceInterface

	now func() time.Time // テストで固定するための時刻源
}

// NewItemHandler はItemHandlerを生成する。
func NewItemHandler(service ActionItemServiceInterface) *ItemHandler {
	return &ItemHandler{
		service: service,
		now:     time.Now,
	}
}

// --- リクエスト・レスポンス型 ---

// itemCreateRequest はアイテム作成リクエストのボディ。
type itemCreateRequest struct {
	Description  string   `json:"description"`
	Owners       []string `json:"owners"`
	Date         string   `json:"date"`
	Status       string   `json:"status,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	LatestUpdate string   `json:"latestUpdate,omitempty"`
	NextSteps    string   `json:"nextSteps,omitempty"`
}

// itemUpdateRequest はアイテム部分更新リクエストのボディ。省略フィールドは変更しない。
type itemUpdateRequest struct {
	Description  *string  `json:"description,omitempty"`
	Owners       []string `json:"owners,omitempty"`
	Date         *string  `json:"date,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
	LatestUpdate *string  `json:"latestUpdate,omitempty"`
	NextSteps    *string  `json:"nextSteps,omitempty"`
}

// itemStatusRequest はステータス更新リクエストのボディ。
type itemStatusRequest struct {
	Status string `json:"status"`
}

// itemListResponse はアイテム一覧レスポンス。
type itemListResponse struct {
	Items []model.ActionItem `json:"items"`
}

// upcomingResponse は今後のタスクパネルのレスポンス。
type upcomingResponse struct {
	Tasks []view.UpcomingTask `json:"tasks"`
}

// ListItems はアイテム一覧を検索・絞り込み・ソート適用済みで返す。
// GET /api/items?search=xxx&status=xxx&focus=all|overdue|in-progress|blocked&sort=date&dir=asc|desc
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	today := h.todayParam(q.Get("today"))

	items := h.service.List(r.Context())
	items = view.FilterItems(items, q.Get("search"), q.Get("status"))
	if focus := q.Get("focus"); focus != "" {
		items = view.FocusItems(items, focus, today)
	}
	items = view.SortItems(items, view.Sort{
		Field:      view.SortField(q.Get("sort")),
		Descending: q.Get("dir") == "desc",
	})

	writeJSON(w, http.StatusOK, itemListResponse{Items: items})
}

// ListUpcoming は未完了アイテムを期日昇順で最大10件返す。
// GET /api/items/upcoming
func (h *ItemHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	today := h.todayParam(r.URL.Query().Get("today"))
	tasks := view.UpcomingTasks(h.service.List(r.Context()), today)
	writeJSON(w, http.StatusOK, upcomingResponse{Tasks: tasks})
}

// CreateItem はアイテムを作成し、対となる締切イベントを生成する。
// POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req itemCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	item, err := h.service.Create(r.Context(), actionitem.CreateInput{
		Description:  req.Description,
		Owners:       req.Owners,
		Date:         req.Date,
		Status:       req.Status,
		Notes:        req.Notes,
		LatestUpdate: req.LatestUpdate,
		NextSteps:    req.NextSteps,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

// GetItem はアイテム詳細を返す。
// GET /api/items/:id
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateItem はアイテムを部分更新する。
// PATCH /api/items/:id
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req itemUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	item, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), actionitem.UpdateInput{
		Description:  req.Description,
		Owners:       req.Owners,
		Date:         req.Date,
		Status:       req.Status,
		Notes:        req.Notes,
		LatestUpdate: req.LatestUpdate,
		NextSteps:    req.NextSteps,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// UpdateItemStatus はアイテムのステータスのみを更新する。
// PUT /api/items/:id/status
func (h *ItemHandler) UpdateItemStatus(w http.ResponseWriter, r *http.Request) {
	var req itemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	item, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// DeleteItem はアイテムと対となる締切イベントを削除する。冪等。
// DELETE /api/items/:id
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// todayParam はクエリのtoday（省略可）を検証し、不正・省略時はサーバー日付を返す。
func (h *ItemHandler) todayParam(raw string) string {
	if raw != "" {
		if _, err := time.Parse(model.DateLayout, raw); err == nil {
			return raw
		}
	}
	return h.now().Format(model.DateLayout)
}
