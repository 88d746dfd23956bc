package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/snapshot"
)

// mockSnapshotService はSnapshotServiceInterfaceのテスト用モック。
type mockSnapshotService struct {
	createFunc func(ctx context.Context) (*model.Snapshot, error)
	listFunc   func(ctx context.Context) []snapshot.Summary
	getFunc    func(ctx context.Context, id string) (*model.Snapshot, error)
}

func (m *mockSnapshotService) Create(ctx context.Context) (*model.Snapshot, error) {
	return m.createFunc(ctx)
}

func (m *mockSnapshotService) List(ctx context.Context) []snapshot.Summary {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil
}

func (m *mockSnapshotService) Get(ctx context.Context, id string) (*model.Snapshot, error) {
	return m.getFunc(ctx, id)
}

var _ SnapshotServiceInterface = (*mockSnapshotService)(nil)

// TestCreateSnapshot はスナップショット作成の201レスポンスを検証する。
func TestCreateSnapshot(t *testing.T) {
	service := &mockSnapshotService{
		createFunc: func(ctx context.Context) (*model.Snapshot, error) {
			return &model.Snapshot{
				ID:         "snap-1",
				Name:       "Snapshot - 06/15/2025, 10:30 AM",
				Timestamp:  time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC),
				ItemsCount: 3,
			}, nil
		},
	}
	h := NewSnapshotHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/snapshots", nil)
	rec := httptest.NewRecorder()
	h.CreateSnapshot(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var created model.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if created.Name != "Snapshot - 06/15/2025, 10:30 AM" {
		t.Errorf("name = %q", created.Name)
	}
}

// TestListSnapshots は一覧が内容を含まない要約で返ることを検証する。
func TestListSnapshots(t *testing.T) {
	service := &mockSnapshotService{
		listFunc: func(ctx context.Context) []snapshot.Summary {
			return []snapshot.Summary{
				{ID: "snap-2", Name: "newer", ItemsCount: 5, EventsCount: 2},
				{ID: "snap-1", Name: "older", ItemsCount: 3, EventsCount: 1},
			}
		},
	}
	h := NewSnapshotHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshots", nil)
	rec := httptest.NewRecorder()
	h.ListSnapshots(rec, req)

	var resp snapshotListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if len(resp.Snapshots) != 2 || resp.Snapshots[0].ID != "snap-2" {
		t.Errorf("snapshots = %+v, want newest first", resp.Snapshots)
	}

	// 要約には内容の配列が含まれない
	var raw map[string]any
	json.Unmarshal(rec.Body.Bytes(), &raw)
	list := raw["snapshots"].([]any)
	first := list[0].(map[string]any)
	if _, ok := first["actionItems"]; ok {
		t.Error("summaries must not embed snapshot contents")
	}
}

// TestGetSnapshot_NotFound は未検出の404レスポンスを検証する。
func TestGetSnapshot_NotFound(t *testing.T) {
	service := &mockSnapshotService{
		getFunc: func(ctx context.Context, id string) (*model.Snapshot, error) {
			return nil, model.NewSnapshotNotFoundError(id)
		},
	}
	h := NewSnapshotHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/snapshots/missing", nil)
	rec := httptest.NewRecorder()
	h.GetSnapshot(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var resp apiErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if resp.Code != model.ErrCodeSnapshotNotFound {
		t.Errorf("code = %q", resp.Code)
	}
}
