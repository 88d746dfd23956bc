package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/taskboard/internal/actionitem"
	"github.com/hitoshi/taskboard/internal/model"
)

// mockItemService はActionItemServiceInterfaceのテスト用モック。
type mockItemService struct {
	listFunc         func(ctx context.Context) []model.ActionItem
	getFunc          func(ctx context.Context, id string) (*model.ActionItem, error)
	createFunc       func(ctx context.Context, input actionitem.CreateInput) (*model.ActionItem, error)
	updateFunc       func(ctx context.Context, id string, input actionitem.UpdateInput) (*model.ActionItem, error)
	updateStatusFunc func(ctx context.Context, id string, status string) (*model.ActionItem, error)
	deleteFunc       func(ctx context.Context, id string) error
}

func (m *mockItemService) List(ctx context.Context) []model.ActionItem {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil
}

func (m *mockItemService) Get(ctx context.Context, id string) (*model.ActionItem, error) {
	return m.getFunc(ctx, id)
}

func (m *mockItemService) Create(ctx context.Context, input actionitem.CreateInput) (*model.ActionItem, error) {
	return m.createFunc(ctx, input)
}

func (m *mockItemService) Update(ctx context.Context, id string, input actionitem.UpdateInput) (*model.ActionItem, error) {
	return m.updateFunc(ctx, id, input)
}

func (m *mockItemService) UpdateStatus(ctx context.Context, id string, status string) (*model.ActionItem, error) {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockItemService) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

var _ ActionItemServiceInterface = (*mockItemService)(nil)

// fixedClock はテスト用の固定時刻を返す。
func fixedClock(date string) func() time.Time {
	t, _ := time.Parse(model.DateLayout, date)
	return func() time.Time { return t }
}

// TestListItems_AppliesQueryPipeline は検索・絞り込み・ソートの適用を検証する。
func TestListItems_AppliesQueryPipeline(t *testing.T) {
	service := &mockItemService{
		listFunc: func(ctx context.Context) []model.ActionItem {
			return []model.ActionItem{
				{ID: "1", Description: "Review budget", Date: "2025-07-01", Status: model.StatusInProgress},
				{ID: "2", Description: "Write report", Date: "2025-06-01", Status: model.StatusInProgress},
				{ID: "3", Description: "Review slides", Date: "2025-06-10", Status: model.StatusDone},
			}
		},
	}
	h := NewItemHandler(service)
	h.now = fixedClock("2025-06-15")

	req := httptest.NewRequest(http.MethodGet, "/api/items?search=review&sort=date&dir=asc", nil)
	rec := httptest.NewRecorder()
	h.ListItems(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp itemListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("got %d items, want 2 matching 'review'", len(resp.Items))
	}
	if resp.Items[0].ID != "3" || resp.Items[1].ID != "1" {
		t.Errorf("order = [%s %s], want date ascending [3 1]", resp.Items[0].ID, resp.Items[1].ID)
	}
}

// TestListItems_FocusOverdue はフォーカスフィルタの適用を検証する。
func TestListItems_FocusOverdue(t *testing.T) {
	service := &mockItemService{
		listFunc: func(ctx context.Context) []model.ActionItem {
			return []model.ActionItem{
				{ID: "past", Date: "2025-06-01", Status: model.StatusNotStarted},
				{ID: "future", Date: "2025-07-01", Status: model.StatusNotStarted},
			}
		},
	}
	h := NewItemHandler(service)
	h.now = fixedClock("2025-06-15")

	req := httptest.NewRequest(http.MethodGet, "/api/items?focus=overdue", nil)
	rec := httptest.NewRecorder()
	h.ListItems(rec, req)

	var resp itemListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ID != "past" {
		t.Errorf("items = %v, want only the overdue item", resp.Items)
	}
}

// TestCreateItem はアイテム作成の201レスポンスを検証する。
func TestCreateItem(t *testing.T) {
	var gotInput actionitem.CreateInput
	service := &mockItemService{
		createFunc: func(ctx context.Context, input actionitem.CreateInput) (*model.ActionItem, error) {
			gotInput = input
			return &model.ActionItem{ID: "new-id", Description: input.Description}, nil
		},
	}
	h := NewItemHandler(service)

	body := `{"description":"Prepare deck","owners":["Sarah Chen"],"date":"2025-07-01","latestUpdate":"<p>draft</p>"}`
	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateItem(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if gotInput.Description != "Prepare deck" || len(gotInput.Owners) != 1 {
		t.Errorf("service received %+v", gotInput)
	}
	if gotInput.LatestUpdate != "<p>draft</p>" {
		t.Errorf("latestUpdate = %q", gotInput.LatestUpdate)
	}

	var created model.ActionItem
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if created.ID != "new-id" {
		t.Errorf("id = %q", created.ID)
	}
}

// TestCreateItem_ValidationError は検証エラーの400レスポンスを検証する。
func TestCreateItem_ValidationError(t *testing.T) {
	service := &mockItemService{
		createFunc: func(ctx context.Context, input actionitem.CreateInput) (*model.ActionItem, error) {
			return nil, model.NewValidationError("説明は必須です")
		},
	}
	h := NewItemHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CreateItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp apiErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.Code != model.ErrCodeValidation {
		t.Errorf("code = %q", resp.Code)
	}
}

// TestCreateItem_MalformedBody は不正なJSONの400レスポンスを検証する。
func TestCreateItem_MalformedBody(t *testing.T) {
	h := NewItemHandler(&mockItemService{})

	req := httptest.NewRequest(http.MethodPost, "/api/items", strings.NewReader(`{broken`))
	rec := httptest.NewRecorder()
	h.CreateItem(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// TestGetItem_NotFound は未検出の404レスポンスを検証する。
func TestGetItem_NotFound(t *testing.T) {
	service := &mockItemService{
		getFunc: func(ctx context.Context, id string) (*model.ActionItem, error) {
			return nil, model.NewItemNotFoundError(id)
		},
	}
	h := NewItemHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/items/missing", nil)
	rec := httptest.NewRecorder()
	h.GetItem(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp apiErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.Code != model.ErrCodeItemNotFound {
		t.Errorf("code = %q", resp.Code)
	}
}

// TestUpdateItemStatus はステータス更新の委譲を検証する。
func TestUpdateItemStatus(t *testing.T) {
	var gotStatus string
	service := &mockItemService{
		updateStatusFunc: func(ctx context.Context, id string, status string) (*model.ActionItem, error) {
			gotStatus = status
			return &model.ActionItem{ID: id, Status: model.Status(status)}, nil
		},
	}
	h := NewItemHandler(service)

	req := httptest.NewRequest(http.MethodPut, "/api/items/x/status", strings.NewReader(`{"status":"Done"}`))
	rec := httptest.NewRecorder()
	h.UpdateItemStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotStatus != "Done" {
		t.Errorf("service received status %q", gotStatus)
	}
}

// TestDeleteItem は削除の204レスポンスを検証する。冪等のため存在しないIDでも成功する。
func TestDeleteItem(t *testing.T) {
	h := NewItemHandler(&mockItemService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/items/anything", nil)
	rec := httptest.NewRecorder()
	h.DeleteItem(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

// TestListUpcoming は今後のタスクパネルのレスポンスを検証する。
func TestListUpcoming(t *testing.T) {
	service := &mockItemService{
		listFunc: func(ctx context.Context) []model.ActionItem {
			return []model.ActionItem{
				{ID: "done", Date: "2025-06-16", Status: model.StatusDone},
				{ID: "late", Date: "2025-06-01", Status: model.StatusBlocked},
				{ID: "soon", Date: "2025-06-16", Status: model.StatusNotStarted},
			}
		},
	}
	h := NewItemHandler(service)
	h.now = fixedClock("2025-06-15")

	req := httptest.NewRequest(http.MethodGet, "/api/items/upcoming", nil)
	rec := httptest.NewRecorder()
	h.ListUpcoming(rec, req)

	var resp upcomingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(resp.Tasks) != 2 {
		t.Fatalf("got %d tasks, want 2 (Done excluded)", len(resp.Tasks))
	}
	if resp.Tasks[0].ID != "late" || !resp.Tasks[0].Overdue {
		t.Errorf("first task = %+v, want the overdue item first", resp.Tasks[0])
	}
	if resp.Tasks[1].ID != "soon" || !resp.Tasks[1].DueSoon {
		t.Errorf("second task = %+v, want due-soon annotation", resp.Tasks[1])
	}
}
