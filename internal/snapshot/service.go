// Package snapshot はアプリケーション状態のスナップショットアーカイブを提供する。
package snapshot

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/taskboard/internal/model"
	"github.com/hitoshi/taskboard/internal/repository"
	"github.com/hitoshi/taskboard/internal/storage"
)

// NameLayout はスナップショット名に埋め込むタイムスタンプの形式。
const NameLayout = "01/02/2006, 03:04 PM"

// SnapshotRecorder はスナップショット作成・保存失敗のメトリクス記録のインターフェース。
type SnapshotRecorder interface {
	RecordSnapshotCreated()
	RecordStorageSaveFailure(slotKey string)
}

// Service はスナップショットの作成と参照を提供する。
// アーカイブは追加のみ可能で、作成後のスナップショットは後続の
// アイテム・イベント変更の影響を受けない。
type Service struct {
	snapshots repository.SnapshotRepository
	items     repository.ActionItemRepository
	events    repository.CalendarEventRepository
	metrics   SnapshotRecorder

	now func() time.Time // テストで固定するための時刻源
}

// NewService はServiceを生成する。
func NewService(
	snapshots repository.SnapshotRepository,
	items repository.ActionItemRepository,
	events repository.CalendarEventRepository,
	metrics SnapshotRecorder,
) *Service {
	return &Service{
		snapshots: snapshots,
		items:     items,
		events:    events,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Create は現在の全アイテム・全イベントのディープコピーを固めた
// スナップショットを作成し、アーカイブの先頭へ追加する。
func (s *Service) Create(ctx context.Context) (*model.Snapshot, error) {
	now := s.now()
	items := s.items.List(ctx)   // Listはコピーを返す
	events := s.events.List(ctx) // 同上

	snapshot := model.Snapshot{
		ID:             uuid.New().String(),
		Name:           "Snapshot - " + now.Format(NameLayout),
		Timestamp:      now,
		ItemsCount:     len(items),
		EventsCount:    len(events),
		ActionItems:    items,
		CalendarEvents: events,
	}

	if err := s.snapshots.Add(ctx, snapshot); err != nil {
		slog.Error("スナップショットの永続化に失敗しましたが操作は続行します",
			slog.String("error", err.Error()),
		)
		s.metrics.RecordStorageSaveFailure(storage.SlotSnapshots)
	}
	s.metrics.RecordSnapshotCreated()

	slog.Info("スナップショットを作成しました",
		slog.String("snapshot_id", snapshot.ID),
		slog.Int("items", snapshot.ItemsCount),
		slog.Int("events", snapshot.EventsCount),
	)

	return &snapshot, nil
}

// Summary はスナップショット一覧向けの要約。内容の配列は含まない。
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Timestamp   time.Time `json:"timestamp"`
	ItemsCount  int       `json:"itemsCount"`
	EventsCount int       `json:"eventsCount"`
}

// List はアーカイブ全体の要約を新しい順で返す。
func (s *Service) List(ctx context.Context) []Summary {
	snapshots := s.snapshots.List(ctx)
	summaries := make([]Summary, len(snapshots))
	for i, snap := range snapshots {
		summaries[i] = Summary{
			ID:          snap.ID,
			Name:        snap.Name,
			Timestamp:   snap.Timestamp,
			ItemsCount:  snap.ItemsCount,
			EventsCount: snap.EventsCount,
		}
	}
	return summaries
}

// Get は指定IDのスナップショットを内容込みで返す。
func (s *Service) Get(ctx context.Context, id string) (*model.Snapshot, error) {
	snapshot := s.snapshots.FindByID(ctx, id)
	if snapshot == nil {
		return nil, model.NewSnapshotNotFoundError(id)
	}
	return snapshot, nil
}
