package view

import (
	"sort"
	"strings"

	"github.com/hitoshi/taskboard/internal/model"
)

// SortField はアイテム一覧のソート対象フィールド。
type SortField string

const (
	SortByDescription SortField = "description"
	SortByOwners      SortField = "owners"
	SortByDate        SortField = "date"
	SortByStatus      SortField = "status"
)

// Sort はソートフィールドと方向の組。ゼロ値はソートなしを表す。
type Sort struct {
	Field      SortField
	Descending bool
}

// NextSort はソートヘッダをクリックした際の次のソート状態を返す。
// 同じフィールドなら方向を反転し、別のフィールドなら昇順から始める。
func NextSort(cur Sort, field SortField) Sort {
	if cur.Field == field {
		return Sort{Field: field, Descending: !cur.Descending}
	}
	return Sort{Field: field, Descending: false}
}

// SortItems は指定のソートを適用したコピーを返す。
//
// 日付フィールドは日付として、文字列フィールドは大文字小文字を区別せず
// 比較する。同値の要素は入力の相対順序を維持する（安定ソート）。
// s.Fieldが空の場合は入力の順序のままコピーを返す。
func SortItems(items []model.ActionItem, s Sort) []model.ActionItem {
	sorted := model.CloneActionItems(items)
	if s.Field == "" {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sortKey(&sorted[i], s.Field), sortKey(&sorted[j], s.Field)
		if s.Descending {
			return a > b
		}
		return a < b
	})
	return sorted
}

// sortKey は比較用の正規化キーを返す。"YYYY-MM-DD" の日付は
// 辞書順比較がそのまま日付順になるため、全フィールドを文字列で扱える。
func sortKey(item *model.ActionItem, field SortField) string {
	switch field {
	case SortByDescription:
		return strings.ToLower(item.Description)
	case SortByOwners:
		return strings.ToLower(item.OwnersJoined())
	case SortByDate:
		return item.Date
	case SortByStatus:
		return strings.ToLower(string(item.Status))
	}
	return ""
}
