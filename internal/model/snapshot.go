// Package model はドメインモデルを定義する。
package model

import "time"

// Snapshot は両コレクションのある時点のディープコピーを表す。
// アーカイブへ追加された後は一切変更されない。
type Snapshot struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Timestamp      time.Time       `json:"timestamp"`
	ItemsCount     int             `json:"itemsCount"`
	EventsCount    int             `json:"eventsCount"`
	ActionItems    []ActionItem    `json:"actionItems"`
	CalendarEvents []CalendarEvent `json:"calendarEvents"`
}
