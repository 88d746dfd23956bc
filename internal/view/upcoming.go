package view

import (
	"sort"
	"time"

	"github.com/hitoshi/taskboard/internal/model"
)

// UpcomingLimit は今後のタスクパネルに表示する最大件数。
const UpcomingLimit = 10

// UpcomingTask は今後のタスクパネルの1件を表す。
// OverdueとDueSoonは表示強調のための分類であり、永続化されない。
type UpcomingTask struct {
	model.ActionItem
	Overdue bool `json:"overdue"`
	DueSoon bool `json:"dueSoon"`
}

// UpcomingTasks は未完了アイテムを期日昇順で最大10件返す。
//
// 期日がtodayより前のものはOverdue、todayから3日以内（当日含む）の
// ものはDueSoonとして注釈される。
func UpcomingTasks(items []model.ActionItem, today string) []UpcomingTask {
	ref, err := time.Parse(model.DateLayout, today)
	if err != nil {
		return nil
	}
	soonEnd := ref.AddDate(0, 0, 3).Format(model.DateLayout)

	pending := make([]model.ActionItem, 0, len(items))
	for _, item := range items {
		if item.Status != model.StatusDone {
			pending = append(pending, item)
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Date < pending[j].Date
	})

	if len(pending) > UpcomingLimit {
		pending = pending[:UpcomingLimit]
	}

	tasks := make([]UpcomingTask, len(pending))
	for i, item := range pending {
		tasks[i] = UpcomingTask{
			ActionItem: item,
			Overdue:    item.Date != "" && item.Date < today,
			DueSoon:    item.Date >= today && item.Date <= soonEnd,
		}
	}
	return tasks
}
