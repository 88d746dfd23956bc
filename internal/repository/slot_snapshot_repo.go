package repository

import (
	"context"
	"sync"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/storage"
)

// SlotSnapshotRepo は永続スロットを使用したスナップショットアーカイブ。
// 先頭追加のみ可能で、作成後のスナップショットは一切変更されない。
type SlotSnapshotRepo struct {
	store storage.SlotStore

	mu        sync.Mutex
	snapshots []model.Snapshot
}

// NewSlotSnapshotRepo はSlotSnapshotRepoを生成する。
func NewSlotSnapshotRepo(store storage.SlotStore) *SlotSnapshotRepo {
	return &SlotSnapshotRepo{store: store}
}

// Load は永続スロットからアーカイブを復元する。
func (r *SlotSnapshotRepo) Load(ctx context.Context) error {
	loaded := storage.Load(ctx, r.store, storage.SlotSnapshots, []model.Snapshot{})

	r.mu.Lock()
	r.snapshots = loaded
	r.mu.Unlock()
	return nil
}

// List はアーカイブ全体を新しい順のコピーで返す。
func (r *SlotSnapshotRepo) List(ctx context.Context) []model.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cloneAll()
}

// FindByID は指定IDのスナップショットのコピーを取得する。見つからない場合はnilを返す。
func (r *SlotSnapshotRepo) FindByID(ctx context.Context, id string) *model.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.snapshots {
		if r.snapshots[i].ID == id {
			cloned := cloneSnapshot(r.snapshots[i])
			return &cloned
		}
	}
	return nil
}

// Add はスナップショットをアーカイブの先頭へ追加し、全体を永続化する。
func (r *SlotSnapshotRepo) Add(ctx context.Context, snapshot model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots = append([]model.Snapshot{snapshot}, r.snapshots...)
	return storage.Save(ctx, r.store, storage.SlotSnapshots, r.snapshots)
}

func (r *SlotSnapshotRepo) cloneAll() []model.Snapshot {
	cloned := make([]model.Snapshot, len(r.snapshots))
	for i, s := range r.snapshots {
		cloned[i] = cloneSnapshot(s)
	}
	return cloned
}

// cloneSnapshot はスナップショットの内部配列まで複製する。
func cloneSnapshot(s model.Snapshot) model.Snapshot {
	s.ActionItems = model.CloneActionItems(s.ActionItems)
	s.CalendarEvents = model.CloneCalendarEvents(s.CalendarEvents)
	return s
}

// compile-time interface check
var _ SnapshotRepository = (*SlotSnapshotRepo)(nil)
