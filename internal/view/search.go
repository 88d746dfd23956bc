// Package view はコレクション状態と一時的なUIパラメータから表示用データを
// 導出する純粋な射影関数を提供する。
//
// すべての関数は入力のみに依存し、永続化の副作用を持たない。現在日付も
// 引数todayとして明示的に受け取る（"YYYY-MM-DD" 形式）。
package view

import (
	"strings"

	"github.com/hitoshi/taskboard/internal/model"
)

// FuzzyMatch はtextがsearchに緩くマッチするかを返す。
//
// 判定は大文字小文字を区別しない。まず部分文字列として含まれるかを試し
// （完全一致・部分一致の高速パス）、失敗した場合はサブシーケンス走査に
// 切り替える: textを左から走査し、現在の文字がsearchの次の文字と一致する
// たびにポインタを進め、searchの末尾まで到達すればマッチ成功となる。
// スコア付けは行わない。"aeiou" は母音をこの順で含む任意のtextにマッチする。
func FuzzyMatch(text, search string) bool {
	if search == "" {
		return true
	}

	text = strings.ToLower(text)
	search = strings.ToLower(search)

	if strings.Contains(text, search) {
		return true
	}

	needle := []rune(search)
	i := 0
	for _, r := range text {
		if r == needle[i] {
			i++
			if i == len(needle) {
				return true
			}
		}
	}
	return false
}

// FilterItems は検索文字列とステータスフィルタを適用したアイテム一覧を返す。
//
// 検索は説明・担当者（", " 連結）・メモ・最新状況・次のアクションの
// いずれかへのFuzzyMatchで判定する。statusが空文字列の場合はステータスで
// 絞り込まない。元の相対順序は維持される。
func FilterItems(items []model.ActionItem, query string, status string) []model.ActionItem {
	filtered := make([]model.ActionItem, 0, len(items))
	for _, item := range items {
		if status != "" && string(item.Status) != status {
			continue
		}
		if query != "" && !matchesQuery(&item, query) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

func matchesQuery(item *model.ActionItem, query string) bool {
	return FuzzyMatch(item.Description, query) ||
		FuzzyMatch(item.OwnersJoined(), query) ||
		FuzzyMatch(item.Notes, query) ||
		FuzzyMatch(item.LatestUpdate, query) ||
		FuzzyMatch(item.NextSteps, query)
}

// 会議ビューの絞り込みモード。
const (
	FocusAll        = "all"
	FocusOverdue    = "overdue"
	FocusInProgress = "in-progress"
	FocusBlocked    = "blocked"
)

// FocusItems は会議ビュー向けの絞り込みを適用したアイテム一覧を返す。
// 未知のfocus値は all と同じ扱いになる。
func FocusItems(items []model.ActionItem, focus string, today string) []model.ActionItem {
	switch focus {
	case FocusOverdue:
		filtered := make([]model.ActionItem, 0, len(items))
		for _, item := range items {
			if item.IsOverdue(today) {
				filtered = append(filtered, item)
			}
		}
		return filtered
	case FocusInProgress:
		return FilterItems(items, "", string(model.StatusInProgress))
	case FocusBlocked:
		return FilterItems(items, "", string(model.StatusBlocked))
	default:
		return model.CloneActionItems(items)
	}
}
