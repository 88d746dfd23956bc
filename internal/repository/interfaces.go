// Package repository はエンティティコレクションの保持と永続化を提供する。
//
// 各リポジトリはメモリ上の順序付きコレクションを正とし、すべての変更操作の
// 直後にコレクション全体を永続スロットへ書き込む。書き込み失敗はエラーとして
// 返されるが、メモリ上の変更は巻き戻されない（§ストレージエラー方針）。
package repository

import (
	"context"

	"github.com/hitoshi/taskboard/internal/model"
)

// ActionItemRepository はアクションアイテムコレクションのインターフェース。
type ActionItemRepository interface {
	// Load は永続スロットからコレクションを復元する。
	// スロットが存在しない・壊れている場合はフォールバック値で初期化される。
	Load(ctx context.Context) error

	// List はコレクション全体を現在の順序のコピーで返す。
	List(ctx context.Context) []model.ActionItem

	// FindByID は指定IDのアイテムのコピーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) *model.ActionItem

	// Add はアイテムをコレクションの先頭へ挿入し（新しい順）、全体を永続化する。
	Add(ctx context.Context, item model.ActionItem) error

	// Update は指定IDのアイテムへpatchをマージし、lastUpdatedを更新して永続化する。
	// 該当IDが存在しない場合は何もせずnil, nilを返す（冪等）。
	Update(ctx context.Context, id string, patch ActionItemPatch) (*model.ActionItem, error)

	// Remove は指定IDのアイテムを取り除き、全体を永続化する。
	// 該当IDが存在しない場合は何もしない（冪等）。
	Remove(ctx context.Context, id string) error
}

// ActionItemPatch はアクションアイテムの部分更新を表す。
// nilフィールドは変更せず、既存の値を維持する。
type ActionItemPatch struct {
	Description  *string
	Owners       []string // nilの場合は変更なし
	Date         *string
	Status       *model.Status
	Notes        *string
	LatestUpdate *string
	NextSteps    *string
}

// CalendarEventRepository はカレンダーイベントコレクションのインターフェース。
type CalendarEventRepository interface {
	// Load は永続スロットからコレクションを復元する。
	Load(ctx context.Context) error

	// List はコレクション全体を現在の順序のコピーで返す。
	// 表示順は保証しない（表示前のソートはビュー側の責務）。
	List(ctx context.Context) []model.CalendarEvent

	// FindByID は指定IDのイベントのコピーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) *model.CalendarEvent

	// Add はイベントをコレクションの末尾へ追加し、全体を永続化する。
	Add(ctx context.Context, event model.CalendarEvent) error

	// Update は指定IDのイベントへpatchをマージして永続化する。
	// 該当IDが存在しない場合は何もせずnil, nilを返す（冪等）。
	Update(ctx context.Context, id string, patch CalendarEventPatch) (*model.CalendarEvent, error)

	// Remove は指定IDのイベントを取り除き、全体を永続化する。冪等。
	Remove(ctx context.Context, id string) error
}

// CalendarEventPatch はカレンダーイベントの部分更新を表す。
// nilフィールドは変更せず、既存の値を維持する。
type CalendarEventPatch struct {
	Title       *string
	Date        *string
	Category    *model.EventCategory
	Description *string
	Poster      *string
}

// SnapshotRepository はスナップショットアーカイブのインターフェース。
// 追加のみ可能で、削除操作は存在しない。
type SnapshotRepository interface {
	// Load は永続スロットからアーカイブを復元する。
	Load(ctx context.Context) error

	// List はアーカイブ全体を新しい順のコピーで返す。
	List(ctx context.Context) []model.Snapshot

	// FindByID は指定IDのスナップショットのコピーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) *model.Snapshot

	// Add はスナップショットをアーカイブの先頭へ追加し、全体を永続化する。
	Add(ctx context.Context, snapshot model.Snapshot) error
}
