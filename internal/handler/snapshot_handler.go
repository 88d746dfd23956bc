package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/snapshot"
)

// SnapshotServiceInterface はスナップショットハンドラーが必要とするサービスインターフェース。
type SnapshotServiceInterface interface {
	Create(ctx context.Context) (*model.Snapshot, error)
	List(ctx context.Context) []snapshot.Summary
	Get(ctx context.Context, id string) (*model.Snapshot, error)
}

// SnapshotHandler はスナップショットアーカイブのHTTPハンドラー。
type SnapshotHandler struct {
	service SnapshotServiceInterface
}

// NewSnapshotHandler はSnapshotHandlerを生成する。
func NewSnapshotHandler(service SnapshotServiceInterface) *SnapshotHandler {
	return &SnapshotHandler{service: service}
}

// snapshotListResponse はスナップショット一覧レスポンス。内容は含まない。
type snapshotListResponse struct {
	Snapshots []snapshot.Summary `json:"snapshots"`
}

// CreateSnapshot は現在の全状態を固めたスナップショットを作成する。
// POST /api/snapshots
func (h *SnapshotHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	created, err := h.service.Create(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListSnapshots はアーカイブ全体の要約を新しい順で返す。
// GET /api/snapshots
func (h *SnapshotHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, snapshotListResponse{Snapshots: h.service.List(r.Context())})
}

// GetSnapshot はスナップショットを内容込みで返す。
// GET /api/snapshots/:id
func (h *SnapshotHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, found)
}
