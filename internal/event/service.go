// Package event はカレンダーイベントの管理機能を提供する。
package event

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
	"github.com/hitoshi/taskboard/internal/storage"
)

// Sanitizer はリッチテキスト欄のサニタイズのインターフェース。
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// MutationRecorder は変更・保存失敗のメトリクス記録のインターフェース。
type MutationRecorder interface {
	RecordMutation(entity string, operation string)
	RecordStorageSaveFailure(slotKey string)
}

// Service はカレンダーイベントに関するビジネスロジックを提供する。
// 派生締切イベントの作成・追従はここではなくdeadline.Synchronizerが担い、
// このサービスはユーザー操作によるイベントのみを扱う。
// ユーザーが派生イベントを直接編集・削除することは許可される
// （その結果生じる元アイテムとのずれは仕様上許容される）。
type Service struct {
	events    repository.CalendarEventRepository
	sanitizer Sanitizer
	metrics   MutationRecorder
}

// NewService はServiceを生成する。
func NewService(
	events repository.CalendarEventRepository,
	sanitizer Sanitizer,
	metrics MutationRecorder,
) *Service {
	return &Service{
		events:    events,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// CreateInput はイベント作成の入力。
type CreateInput struct {
	Title       string
	Date        string
	Category    string // 省略時は Other
	Description string
	Poster      string // data URI文字列。サーバー側では不透明に保持する
}

// UpdateInput はイベント部分更新の入力。nilフィールドは変更しない。
type UpdateInput struct {
	Title       *string
	Date        *string
	Category    *string
	Description *string
	Poster      *string
}

// List はイベント一覧を現在の順序で返す。
func (s *Service) List(ctx context.Context) []model.CalendarEvent {
	return s.events.List(ctx)
}

// Get は指定IDのイベントを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.CalendarEvent, error) {
	event := s.events.FindByID(ctx, id)
	if event == nil {
		return nil, model.NewEventNotFoundError(id)
	}
	return event, nil
}

// Create は入力を検証してイベントを作成する。
// ここで作成されるイベントはlinkedItemIdを持たない通常イベントとなる。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.CalendarEvent, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, model.NewValidationError("タイトルは必須です")
	}
	if err := validateDate(input.Date); err != nil {
		return nil, err
	}

	category := model.CategoryOther
	if input.Category != "" {
		category = model.EventCategory(input.Category)
		if !category.IsValid() {
			return nil, model.NewValidationError("無効なカテゴリです: " + input.Category)
		}
	}

	event := model.CalendarEvent{
		ID:          uuid.New().String(),
		Title:       title,
		Date:        input.Date,
		Category:    category,
		Description: s.sanitizer.Sanitize(input.Description),
		Poster:      input.Poster,
	}

	s.reportSaveError(s.events.Add(ctx, event))
	s.metrics.RecordMutation("calendar_event", "add")

	return &event, nil
}

// Update は指定IDのイベントを部分更新する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*model.CalendarEvent, error) {
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
	}

	patch := repository.CalendarEventPatch{
		Date:   input.Date,
		Poster: input.Poster,
	}
	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		if trimmed == "" {
			return nil, model.NewValidationError("タイトルを空にすることはできません")
		}
		patch.Title = &trimmed
	}
	if input.Category != nil {
		category := model.EventCategory(*input.Category)
		if !category.IsValid() {
			return nil, model.NewValidationError("無効なカテゴリです: " + *input.Category)
		}
		patch.Category = &category
	}
	if input.Description != nil {
		clean := s.sanitizer.Sanitize(*input.Description)
		patch.Description = &clean
	}

	updated, err := s.events.Update(ctx, id, patch)
	s.reportSaveError(err)
	if updated == nil {
		return nil, model.NewEventNotFoundError(id)
	}
	s.metrics.RecordMutation("calendar_event", "update")

	return updated, nil
}

// Delete は指定IDのイベントを削除する。
// 派生締切イベントの削除も許可される。その後の元アイテムの期日変更は
// 消えたイベントを再作成しない。存在しないIDに対しては何もせず成功する（冪等）。
func (s *Service) Delete(ctx context.Context, id string) error {
	s.reportSaveError(s.events.Remove(ctx, id))
	s.metrics.RecordMutation("calendar_event", "remove")
	return nil
}

// reportSaveError は永続化失敗をログとメトリクスへ記録する。
// メモリ上の変更は確定済みであり、呼び出し元の応答は成功のまま続行する。
func (s *Service) reportSaveError(err error) {
	if err == nil {
		return
	}
	slog.Error("永続化に失敗しましたが操作は続行します",
		slog.String("slot", storage.SlotCalendarEvents),
		slog.String("error", err.Error()),
	)
	s.metrics.RecordStorageSaveFailure(storage.SlotCalendarEvents)
}

// validateDate は "YYYY-MM-DD" 形式の日付を検証する。
func validateDate(date string) error {
	if date == "" {
		return model.NewValidationError("日付は必須です")
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return model.NewInvalidDateError(date)
	}
	return nil
}
