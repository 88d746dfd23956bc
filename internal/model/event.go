// Package model はドメインモデルを定義する。
package model

// CalendarEvent はカレンダーに表示される日付付きイベントを表す。
// ユーザーが直接作成する通常イベントと、アクションアイテムの期日から
// 派生する締切イベントの両方をこの型で扱う。
type CalendarEvent struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Date         string        `json:"date"` // "YYYY-MM-DD"
	Category     EventCategory `json:"category"`
	Description  string        `json:"description,omitempty"`  // サニタイズ済みHTML
	Poster       string        `json:"poster,omitempty"`       // 画像添付（data URI文字列、サーバー側では不透明に扱う）
	LinkedItemID string        `json:"linkedItemId,omitempty"` // 派生元アクションアイテムへの弱参照
}

// EventCategory はイベントの分類を表す。
type EventCategory string

const (
	// CategoryMeeting は会議イベント。
	CategoryMeeting EventCategory = "Meeting"
	// CategoryDeadline は締切イベント。派生イベントはこのカテゴリを持つ。
	CategoryDeadline EventCategory = "Deadline"
	// CategoryReview はレビューイベント。
	CategoryReview EventCategory = "Review"
	// CategoryWorkshop はワークショップイベント。
	CategoryWorkshop EventCategory = "Workshop"
	// CategoryOther はその他のイベント。
	CategoryOther EventCategory = "Other"
)

// Categories は有効な全カテゴリを表示順で返す。
func Categories() []EventCategory {
	return []EventCategory{CategoryMeeting, CategoryDeadline, CategoryReview, CategoryWorkshop, CategoryOther}
}

// IsValid はカテゴリが閉じた列挙に含まれるかを返す。
func (c EventCategory) IsValid() bool {
	switch c {
	case CategoryMeeting, CategoryDeadline, CategoryReview, CategoryWorkshop, CategoryOther:
		return true
	}
	return false
}

// IsDerived はアクションアイテムから派生した締切イベントかを返す。
func (e *CalendarEvent) IsDerived() bool {
	return e.LinkedItemID != ""
}

// CloneCalendarEvents はカレンダーイベント配列のディープコピーを返す。
func CloneCalendarEvents(events []CalendarEvent) []CalendarEvent {
	cloned := make([]CalendarEvent, len(events))
	copy(cloned, events)
	return cloned
}
