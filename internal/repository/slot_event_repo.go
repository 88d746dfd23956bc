package repository

import (
	"context"
	"sync"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/storage"
)

// SlotCalendarEventRepo は永続スロットを使用したカレンダーイベントリポジトリ。
type SlotCalendarEventRepo struct {
	store storage.SlotStore

	mu     sync.Mutex
	events []model.CalendarEvent
}

// NewSlotCalendarEventRepo はSlotCalendarEventRepoを生成する。
func NewSlotCalendarEventRepo(store storage.SlotStore) *SlotCalendarEventRepo {
	return &SlotCalendarEventRepo{store: store}
}

// Load は永続スロットからコレクションを復元する。
func (r *SlotCalendarEventRepo) Load(ctx context.Context) error {
	loaded := storage.Load(ctx, r.store, storage.SlotCalendarEvents, []model.CalendarEvent{})

	r.mu.Lock()
	r.events = loaded
	r.mu.Unlock()
	return nil
}

// List はコレクション全体を現在の順序のコピーで返す。
func (r *SlotCalendarEventRepo) List(ctx context.Context) []model.CalendarEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return model.CloneCalendarEvents(r.events)
}

// FindByID は指定IDのイベントのコピーを取得する。見つからない場合はnilを返す。
func (r *SlotCalendarEventRepo) FindByID(ctx context.Context, id string) *model.CalendarEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID == id {
			event := r.events[i]
			return &event
		}
	}
	return nil
}

// Add はイベントをコレクションの末尾へ追加し、全体を永続化する。
func (r *SlotCalendarEventRepo) Add(ctx context.Context, event model.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
	return r.persist(ctx)
}

// Update は指定IDのイベントへpatchをマージして永続化する。
// 該当IDが存在しない場合は何もせずnil, nilを返す（冪等）。
func (r *SlotCalendarEventRepo) Update(ctx context.Context, id string, patch CalendarEventPatch) (*model.CalendarEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.events {
		if r.events[i].ID != id {
			continue
		}

		event := &r.events[i]
		if patch.Title != nil {
			event.Title = *patch.Title
		}
		if patch.Date != nil {
			event.Date = *patch.Date
		}
		if patch.Category != nil {
			event.Category = *patch.Category
		}
		if patch.Description != nil {
			event.Description = *patch.Description
		}
		if patch.Poster != nil {
			event.Poster = *patch.Poster
		}

		updated := *event
		return &updated, r.persist(ctx)
	}

	return nil, nil
}

// Remove は指定IDのイベントを取り除き、全体を永続化する。冪等。
func (r *SlotCalendarEventRepo) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	filtered := r.events[:0:0]
	for _, event := range r.events {
		if event.ID != id {
			filtered = append(filtered, event)
		}
	}
	if len(filtered) == len(r.events) {
		return nil
	}

	r.events = filtered
	return r.persist(ctx)
}

// persist はコレクション全体をスロットへ書き込む。呼び出し側でロック済みであること。
func (r *SlotCalendarEventRepo) persist(ctx context.Context) error {
	return storage.Save(ctx, r.store, storage.SlotCalendarEvents, r.events)
}

// compile-time interface check
var _ CalendarEventRepository = (*SlotCalendarEventRepo)(nil)
