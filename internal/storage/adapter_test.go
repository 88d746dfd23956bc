package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/taskboard/internal/model"
)

// --- モック ---

type mockSlotStore struct {
	slots  map[string]string
	getErr error
	putErr error
}

func newMockSlotStore() *mockSlotStore {
	return &mockSlotStore{slots: make(map[string]string)}
}

func (m *mockSlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.slots[key]
	return v, ok, nil
}

func (m *mockSlotStore) Put(ctx context.Context, key, value string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.slots[key] = value
	return nil
}

// --- テスト ---

// TestLoad_MissingSlotReturnsFallback は未作成スロットでフォールバック値が返ることを検証する。
func TestLoad_MissingSlotReturnsFallback(t *testing.T) {
	store := newMockSlotStore()
	fallback := []model.ActionItem{{ID: "seed-1"}}

	got := Load(context.Background(), store, SlotActionItems, fallback)

	if len(got) != 1 || got[0].ID != "seed-1" {
		t.Errorf("expected fallback value, got %v", got)
	}
}

// TestLoad_CorruptSlotReturnsFallback は壊れたJSONでもエラーにならずフォールバックすることを検証する。
func TestLoad_CorruptSlotReturnsFallback(t *testing.T) {
	store := newMockSlotStore()
	store.slots[SlotActionItems] = `{not json`

	got := Load(context.Background(), store, SlotActionItems, []model.ActionItem{})

	if len(got) != 0 {
		t.Errorf("expected empty fallback, got %v", got)
	}
}

// TestLoad_ReadErrorReturnsFallback は読み取りエラー時にフォールバックすることを検証する。
func TestLoad_ReadErrorReturnsFallback(t *testing.T) {
	store := newMockSlotStore()
	store.getErr = errors.New("connection refused")

	got := Load(context.Background(), store, SlotActionItems, []model.ActionItem(nil))

	if got != nil {
		t.Errorf("expected nil fallback, got %v", got)
	}
}

// TestSaveLoad_RoundTrip は保存した値の読み込みが入力と深い等価になることを検証する。
func TestSaveLoad_RoundTrip(t *testing.T) {
	store := newMockSlotStore()
	ctx := context.Background()

	items := []model.ActionItem{
		{
			ID:          "item-1",
			Description: "Draft report",
			Owners:      []string{"Alice", "Bob"},
			Date:        "2025-06-01",
			Status:      model.StatusNotStarted,
			Notes:       "<p>first draft</p>",
		},
		{
			ID:          "item-2",
			Description: "Review budget",
			Owners:      []string{"Carol"},
			Date:        "2025-06-10",
			Status:      model.StatusInProgress,
		},
	}

	if err := Save(ctx, store, SlotActionItems, items); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got := Load(ctx, store, SlotActionItems, []model.ActionItem(nil))

	if len(got) != len(items) {
		t.Fatalf("expected %d items, got %d", len(items), len(got))
	}
	for i := range items {
		if got[i].ID != items[i].ID || got[i].Description != items[i].Description ||
			got[i].Date != items[i].Date || got[i].Status != items[i].Status ||
			got[i].Notes != items[i].Notes {
			t.Errorf("item %d mismatch: got %+v, want %+v", i, got[i], items[i])
		}
		if got[i].OwnersJoined() != items[i].OwnersJoined() {
			t.Errorf("item %d owners mismatch: %q vs %q", i, got[i].OwnersJoined(), items[i].OwnersJoined())
		}
	}
}

// TestSave_PutErrorReturnsStorageError は書き込み失敗がStorageErrorとして報告されることを検証する。
func TestSave_PutErrorReturnsStorageError(t *testing.T) {
	store := newMockSlotStore()
	store.putErr = errors.New("quota exceeded")

	err := Save(context.Background(), store, SlotCalendarEvents, []model.CalendarEvent{})
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeStorageSaveFailed {
		t.Errorf("code = %q, want %q", apiErr.Code, model.ErrCodeStorageSaveFailed)
	}
	if apiErr.Category != "storage" {
		t.Errorf("category = %q, want storage", apiErr.Category)
	}
}

// TestSave_IndependentSlots はスロットが独立しており、片方の失敗が他方に影響しないことを検証する。
func TestSave_IndependentSlots(t *testing.T) {
	store := newMockSlotStore()
	ctx := context.Background()

	if err := Save(ctx, store, SlotActionItems, []model.ActionItem{{ID: "item-1"}}); err != nil {
		t.Fatalf("Save items returned error: %v", err)
	}
	if err := Save(ctx, store, SlotCalendarEvents, []model.CalendarEvent{{ID: "event-1"}}); err != nil {
		t.Fatalf("Save events returned error: %v", err)
	}

	if _, ok := store.slots[SlotActionItems]; !ok {
		t.Error("action items slot should exist")
	}
	if _, ok := store.slots[SlotCalendarEvents]; !ok {
		t.Error("calendar events slot should exist")
	}
}
