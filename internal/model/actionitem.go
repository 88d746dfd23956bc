// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"
)

// DateLayout は期日・イベント日付の保存形式（時刻成分なし）。
const DateLayout = "2006-01-02"

// ActionItem は追跡対象のアクションアイテムを表す。
// Dateは "YYYY-MM-DD" 形式の文字列として保持する。
type ActionItem struct {
	ID           string    `json:"id"`
	Description  string    `json:"description"`
	Owners       []string  `json:"owners"`
	Date         string    `json:"date"`
	Status       Status    `json:"status"`
	Notes        string    `json:"notes,omitempty"` // サニタイズ済みHTML
	LatestUpdate string    `json:"latestUpdate,omitempty"`
	NextSteps    string    `json:"nextSteps,omitempty"`
	LastUpdated  time.Time `json:"lastUpdated"`

	// 旧形式フィールド。読み込み時にOwnersへ正規化され、以後は空になる。
	LegacyOwner     string `json:"owner,omitempty"`
	LegacyTaskforce string `json:"taskforce,omitempty"`
}

// Status はアクションアイテムの進行状態を表す閉じた列挙。
type Status string

const (
	// StatusNotStarted は未着手状態。
	StatusNotStarted Status = "Not Started"
	// StatusInProgress は進行中状態。
	StatusInProgress Status = "In Progress"
	// StatusBlocked はブロック状態。
	StatusBlocked Status = "Blocked"
	// StatusDone は完了状態。
	StatusDone Status = "Done"
)

// Statuses は有効な全ステータスを表示順で返す。
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusBlocked, StatusDone}
}

// IsValid はステータスが閉じた列挙に含まれるかを返す。
func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusBlocked, StatusDone:
		return true
	}
	return false
}

// Normalize は旧形式（owner文字列 + taskforce自由記述）をOwners配列へ移行する。
// Ownersが既に存在する場合は何もしない。旧形式の場合はownerを先頭に、
// taskforceをカンマ分割した名前を順序を保って追加し、重複は除去する。
func (a *ActionItem) Normalize() {
	if len(a.Owners) == 0 {
		seen := make(map[string]struct{})
		appendOwner := func(name string) {
			name = strings.TrimSpace(name)
			if name == "" {
				return
			}
			key := strings.ToLower(name)
			if _, ok := seen[key]; ok {
				return
			}
			seen[key] = struct{}{}
			a.Owners = append(a.Owners, name)
		}

		appendOwner(a.LegacyOwner)
		for _, name := range strings.Split(a.LegacyTaskforce, ",") {
			appendOwner(name)
		}
	}
	a.LegacyOwner = ""
	a.LegacyTaskforce = ""
}

// OwnersJoined はOwnersを ", " 区切りで連結した表示用文字列を返す。
func (a *ActionItem) OwnersJoined() string {
	return strings.Join(a.Owners, ", ")
}

// IsOverdue は期日がtoday（"YYYY-MM-DD"）より前かつ未完了かを返す。
// 日付文字列は辞書順比較がそのまま日付順になる。
func (a *ActionItem) IsOverdue(today string) bool {
	return a.Status != StatusDone && a.Date != "" && a.Date < today
}

// CloneActionItems はアクションアイテム配列のディープコピーを返す。
// Ownersスライスも複製するため、コピー後の変更は元に影響しない。
func CloneActionItems(items []ActionItem) []ActionItem {
	cloned := make([]ActionItem, len(items))
	for i, item := range items {
		cloned[i] = item
		if item.Owners != nil {
			cloned[i].Owners = append([]string(nil), item.Owners...)
		}
	}
	return cloned
}
