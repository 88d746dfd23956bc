package repository

import (
	"context"
	"testing"
	"time"

	"github.com/hitoshi/taskboard/internal/model"
)

// TestSnapshotRepo_AddPrepends は追加が先頭挿入（新しい順）であることを検証する。
func TestSnapshotRepo_AddPrepends(t *testing.T) {
	store := newMockSlotStore()
	repo := NewSlotSnapshotRepo(store)
	ctx := context.Background()

	if err := repo.Add(ctx, model.Snapshot{ID: "snap-1", Name: "older"}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := repo.Add(ctx, model.Snapshot{ID: "snap-2", Name: "newer"}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	snapshots := repo.List(ctx)
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}
	if snapshots[0].ID != "snap-2" || snapshots[1].ID != "snap-1" {
		t.Errorf("expected newest-first order, got [%s, %s]", snapshots[0].ID, snapshots[1].ID)
	}
}

// TestSnapshotRepo_FindByIDReturnsDeepCopy は取得したスナップショットの改変が
// アーカイブへ波及しないことを検証する。
func TestSnapshotRepo_FindByIDReturnsDeepCopy(t *testing.T) {
	store := newMockSlotStore()
	repo := NewSlotSnapshotRepo(store)
	ctx := context.Background()

	if err := repo.Add(ctx, model.Snapshot{
		ID:        "snap-1",
		Name:      "Snapshot - 06/01/2025, 09:30 AM",
		Timestamp: time.Now(),
		ActionItems: []model.ActionItem{
			{ID: "item-1", Description: "original", Owners: []string{"Alice"}},
		},
	}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	got := repo.FindByID(ctx, "snap-1")
	if got == nil {
		t.Fatal("expected snapshot")
	}
	got.ActionItems[0].Description = "mutated"
	got.ActionItems[0].Owners[0] = "Mallory"

	again := repo.FindByID(ctx, "snap-1")
	if again.ActionItems[0].Description != "original" {
		t.Error("archived snapshot description was mutated through a returned copy")
	}
	if again.ActionItems[0].Owners[0] != "Alice" {
		t.Error("archived snapshot owners were mutated through a returned copy")
	}
}

// TestSnapshotRepo_FindByIDMissingReturnsNil は未検出時にnilが返ることを検証する。
func TestSnapshotRepo_FindByIDMissingReturnsNil(t *testing.T) {
	repo := NewSlotSnapshotRepo(newMockSlotStore())

	if got := repo.FindByID(context.Background(), "nope"); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

// TestSnapshotRepo_LoadRoundTrip は永続化したアーカイブの復元を検証する。
func TestSnapshotRepo_LoadRoundTrip(t *testing.T) {
	store := newMockSlotStore()
	ctx := context.Background()

	first := NewSlotSnapshotRepo(store)
	if err := first.Add(ctx, model.Snapshot{ID: "snap-1", Name: "saved", ItemsCount: 3, EventsCount: 1}); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	second := NewSlotSnapshotRepo(store)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	snapshots := second.List(ctx)
	if len(snapshots) != 1 {
		t.Fatalf("expected 1 snapshot after reload, got %d", len(snapshots))
	}
	if snapshots[0].ItemsCount != 3 || snapshots[0].EventsCount != 1 {
		t.Errorf("counts lost in round trip: %+v", snapshots[0])
	}
}
