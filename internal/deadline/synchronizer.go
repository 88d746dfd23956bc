// Package deadline はアクションアイテムと締切イベントの同期を提供する。
//
// 各アクションアイテムは決定的なIDで対になる締切カレンダーイベントを持つ。
// 同期はアイテムの変更操作に追従して行われ、対となるイベントが外部要因で
// 消えていた場合は再作成せず黙ってスキップする。
package deadline

import (
	"context"
	"fmt"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
)

// EventIDPrefix は締切イベントIDの接頭辞。
const EventIDPrefix = "deadline-"

// EventID はアイテムIDから対となる締切イベントIDを導出する。
// 導出は決定的であり、対応表などの状態は持たない。
func EventID(itemID string) string {
	return EventIDPrefix + itemID
}

// Synchronizer は締切イベントをアイテムのライフサイクルへ追従させる。
type Synchronizer struct {
	events repository.CalendarEventRepository
}

// NewSynchronizer はSynchronizerを生成する。
func NewSynchronizer(events repository.CalendarEventRepository) *Synchronizer {
	return &Synchronizer{events: events}
}

// ItemAdded はアイテム追加に対応する締切イベントを作成する。
func (s *Synchronizer) ItemAdded(ctx context.Context, item model.ActionItem) error {
	event := model.CalendarEvent{
		ID:           EventID(item.ID),
		Title:        eventTitle(item),
		Date:         item.Date,
		Category:     model.CategoryDeadline,
		Description:  eventDescription(item),
		LinkedItemID: item.ID,
	}
	return s.events.Add(ctx, event)
}

// ItemUpdated はアイテムの変更を対となる締切イベントへ反映する。
// イベントが既に存在しない場合は再作成せず、何もしない。
func (s *Synchronizer) ItemUpdated(ctx context.Context, item model.ActionItem) error {
	patch := repository.CalendarEventPatch{
		Title:       ptr(eventTitle(item)),
		Date:        ptr(item.Date),
		Description: ptr(eventDescription(item)),
	}
	_, err := s.events.Update(ctx, EventID(item.ID), patch)
	return err
}

// ItemRemoved はアイテム削除に対応する締切イベントを取り除く。
// イベントが既に存在しない場合は何もしない（冪等）。
func (s *Synchronizer) ItemRemoved(ctx context.Context, itemID string) error {
	return s.events.Remove(ctx, EventID(itemID))
}

func eventTitle(item model.ActionItem) string {
	return fmt.Sprintf("Deadline: %s", item.Description)
}

func eventDescription(item model.ActionItem) string {
	return fmt.Sprintf("%q is due. Owners: %s", item.Description, item.OwnersJoined())
}

func ptr[T any](v T) *T { return &v }
