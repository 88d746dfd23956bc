// Package report はコレクション状態からエクスポート成果物
// （CSV、スプレッドシート、HTMLレポート）を生成する。
//
// すべてのジェネレータは書き出し専用で、再取り込みの経路は存在しない。
package report

import (
	"math"
	"sort"

	"github.com/hitoshi/taskboard/internal/model"
)

// Statistics はレポートに埋め込む集計値。
type Statistics struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	InProgress     int `json:"inProgress"`
	NotStarted     int `json:"notStarted"`
	Blocked        int `json:"blocked"`
	Overdue        int `json:"overdue"`
	CompletionRate int `json:"completionRate"` // 四捨五入したパーセント
}

// ComputeStatistics はアイテム集合の集計値を計算する。
// Overdueは期日がtodayより前かつ未完了のものを数える。
func ComputeStatistics(items []model.ActionItem, today string) Statistics {
	stats := Statistics{Total: len(items)}
	for i := range items {
		switch items[i].Status {
		case model.StatusDone:
			stats.Completed++
		case model.StatusInProgress:
			stats.InProgress++
		case model.StatusNotStarted:
			stats.NotStarted++
		case model.StatusBlocked:
			stats.Blocked++
		}
		if items[i].IsOverdue(today) {
			stats.Overdue++
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = int(math.Round(float64(stats.Completed) / float64(stats.Total) * 100))
	}
	return stats
}

// OrderForReport はレポート詳細リスト用の表示順（期限切れ優先、次いで
// 期日昇順）に並べたコピーを返す。同順位は入力の相対順序を維持する。
func OrderForReport(items []model.ActionItem, today string) []model.ActionItem {
	ordered := model.CloneActionItems(items)
	sort.SliceStable(ordered, func(i, j int) bool {
		oi, oj := ordered[i].IsOverdue(today), ordered[j].IsOverdue(today)
		if oi != oj {
			return oi
		}
		return ordered[i].Date < ordered[j].Date
	})
	return ordered
}
