// Package actionitem はアクションアイテムの管理機能を提供する。
package actionitem

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

// DeadlineSynchronizer は対となる締切イベントの追従操作のインターフェース。
type DeadlineSynchronizer interface {
	ItemAdded(ctx context.Context, item model.ActionItem) error
	ItemUpdated(ctx context.Context, item model.ActionItem) error
	ItemRemoved(ctx context.Context, itemID string) error
}

// Sanitizer はリッチテキスト欄のサニタイズのインターフェース。
type Sanitizer interface {
	Sanitize(rawHTML string) string
}

// SyncRecorder は同期・保存失敗のメトリクス記録のインターフェース。
type SyncRecorder interface {
	RecordMutation(entity string, operation string)
	RecordDeadlineSync(operation string)
	RecordStorageSaveFailure(slotKey string)
}

// Service はアクションアイテムに関するビジネスロジックを提供する。
type Service struct {
	items     repository.ActionItemRepository
	sync      DeadlineSynchronizer
	sanitizer Sanitizer
	metrics   SyncRecorder
}

// NewService はServiceを生成する。
func NewService(
	items repository.ActionItemRepository,
	sync DeadlineSynchronizer,
	sanitizer Sanitizer,
	metrics SyncRecorder,
) *Service {
	return &Service{
		items:     items,
		sync:      sync,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// CreateInput はアクションアイテム作成の入力。
type CreateInput struct {
	Description  string
	Owners       []string
	Date         string
	Status       string // 省略時は Not Started
	Notes        string
	LatestUpdate string
	NextSteps    string
}

// UpdateInput はアクションアイテム部分更新の入力。nilフィールドは変更しない。
type UpdateInput struct {
	Description  *string
	Owners       []string // nilの場合は変更なし
	Date         *string
	Status       *string
	Notes        *string
	LatestUpdate *string
	NextSteps    *string
}

// List はアイテム一覧を現在の順序（新しい順）で返す。
func (s *Service) List(ctx context.Context) []model.ActionItem {
	return s.items.List(ctx)
}

// Get は指定IDのアイテムを返す。
func (s *Service) Get(ctx context.Context, id string) (*model.ActionItem, error) {
	item := s.items.FindByID(ctx, id)
	if item == nil {
		return nil, model.NewItemNotFoundError(id)
	}
	return item, nil
}

// Create は入力を検証してアイテムを作成し、対となる締切イベントを生成する。
// 検証エラーはいかなる変更・永続化よりも前に返される。
func (s *Service) Create(ctx context.Context, input CreateInput) (*model.ActionItem, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, model.NewValidationError("説明は必須です")
	}

	owners := normalizeOwners(input.Owners)
	if len(owners) == 0 {
		return nil, model.NewValidationError("担当者を1名以上指定してください")
	}

	if err := validateDate(input.Date); err != nil {
		return nil, err
	}

	status := model.StatusNotStarted
	if input.Status != "" {
		status = model.Status(input.Status)
		if !status.IsValid() {
			return nil, model.NewInvalidStatusError(input.Status)
		}
	}

	item := model.ActionItem{
		ID:           uuid.New().String(),
		Description:  description,
		Owners:       owners,
		Date:         input.Date,
		Status:       status,
		Notes:        s.sanitizer.Sanitize(input.Notes),
		LatestUpdate: s.sanitizer.Sanitize(input.LatestUpdate),
		NextSteps:    s.sanitizer.Sanitize(input.NextSteps),
		LastUpdated:  time.Now(),
	}

	s.reportSaveError(s.items.Add(ctx, item), storage.SlotActionItems)
	s.metrics.RecordMutation("action_item", "add")

	s.reportSaveError(s.sync.ItemAdded(ctx, item), storage.SlotCalendarEvents)
	s.metrics.RecordDeadlineSync("create")

	return &item, nil
}

// Update は指定IDのアイテムを部分更新する。
// 期日が変更された場合のみ、対となる締切イベントへ変更を反映する。
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*model.ActionItem, error) {
	if input.Date != nil {
		if err := validateDate(*input.Date); err != nil {
			return nil, err
		}
	}

	patch := repository.ActionItemPatch{Date: input.Date}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed == "" {
			return nil, model.NewValidationError("説明を空にすることはできません")
		}
		patch.Description = &trimmed
	}
	if input.Owners != nil {
		owners := normalizeOwners(input.Owners)
		if len(owners) == 0 {
			return nil, model.NewValidationError("担当者を1名以上指定してください")
		}
		patch.Owners = owners
	}
	if input.Status != nil {
		status := model.Status(*input.Status)
		if !status.IsValid() {
			return nil, model.NewInvalidStatusError(*input.Status)
		}
		patch.Status = &status
	}
	if input.Notes != nil {
		patch.Notes = s.sanitizePtr(input.Notes)
	}
	if input.LatestUpdate != nil {
		patch.LatestUpdate = s.sanitizePtr(input.LatestUpdate)
	}
	if input.NextSteps != nil {
		patch.NextSteps = s.sanitizePtr(input.NextSteps)
	}

	previous := s.items.FindByID(ctx, id)
	if previous == nil {
		return nil, model.NewItemNotFoundError(id)
	}

	updated, err := s.items.Update(ctx, id, patch)
	s.reportSaveError(err, storage.SlotActionItems)
	if updated == nil {
		// FindByID以降に消えた場合。削除と同じ扱いで未検出を返す。
		return nil, model.NewItemNotFoundError(id)
	}
	s.metrics.RecordMutation("action_item", "update")

	if input.Date != nil && *input.Date != previous.Date {
		s.reportSaveError(s.sync.ItemUpdated(ctx, *updated), storage.SlotCalendarEvents)
		s.metrics.RecordDeadlineSync("move")
	}

	return updated, nil
}

// UpdateStatus は指定IDのアイテムのステータスのみを更新する。
func (s *Service) UpdateStatus(ctx context.Context, id string, status string) (*model.ActionItem, error) {
	return s.Update(ctx, id, UpdateInput{Status: &status})
}

// Delete は指定IDのアイテムと対となる締切イベントを削除する。
// 存在しないIDに対しては何もせず成功する（冪等）。
func (s *Service) Delete(ctx context.Context, id string) error {
	s.reportSaveError(s.items.Remove(ctx, id), storage.SlotActionItems)
	s.metrics.RecordMutation("action_item", "remove")

	s.reportSaveError(s.sync.ItemRemoved(ctx, id), storage.SlotCalendarEvents)
	s.metrics.RecordDeadlineSync("remove")

	return nil
}

// reportSaveError は永続化失敗をログとメトリクスへ記録する。
// メモリ上の変更は確定済みであり、呼び出し元の応答は成功のまま続行する。
func (s *Service) reportSaveError(err error, slotKey string) {
	if err == nil {
		return
	}
	slog.Error("永続化に失敗しましたが操作は続行します",
		slog.String("slot", slotKey),
		slog.String("error", err.Error()),
	)
	s.metrics.RecordStorageSaveFailure(slotKey)
}

func (s *Service) sanitizePtr(raw *string) *string {
	clean := s.sanitizer.Sanitize(*raw)
	return &clean
}

// normalizeOwners は空白のみの名前を除去し、前後の空白を取り除く。
func normalizeOwners(owners []string) []string {
	cleaned := make([]string, 0, len(owners))
	for _, name := range owners {
		name = strings.TrimSpace(name)
		if name != "" {
			cleaned = append(cleaned, name)
		}
	}
	return cleaned
}

// validateDate は "YYYY-MM-DD" 形式の日付を検証する。
func validateDate(date string) error {
	if date == "" {
		return model.NewValidationError("期日は必須です")
	}
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return model.NewInvalidDateError(date)
	}
	return nil
}
