package view

import (
	"time"

	"github.com/hitoshi/taskboard/internal/model"
)

// GridCells は月グリッドの固定セル数（6週 × 7曜日）。
const GridCells = 42

// DayCell は月グリッドの1セルを表す。
type DayCell struct {
	Day       int    `json:"day"`
	Date      string `json:"date"` // "YYYY-MM-DD"
	InMonth   bool   `json:"inMonth"`
	IsToday   bool   `json:"isToday"`
	HasEvents bool   `json:"hasEvents"`
}

// MonthGrid は指定の年月の6行×7列の月グリッドを生成する。
//
// 先頭には前月のセルを1日の曜日インデックス（日曜=0）と同じ数だけ置き、
// 当月の全日を順に並べ、残りを翌月のセルで42セルちょうどまで埋める。
// 当月セルにはtodayとの一致、およびその日付のイベント有無のフラグが付く。
func MonthGrid(year int, month time.Month, events []model.CalendarEvent, today string) []DayCell {
	eventDates := make(map[string]bool, len(events))
	for _, event := range events {
		eventDates[event.Date] = true
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	leading := int(first.Weekday()) // 日曜=0

	cells := make([]DayCell, 0, GridCells)
	cursor := first.AddDate(0, 0, -leading)

	for len(cells) < GridCells {
		date := cursor.Format(model.DateLayout)
		inMonth := cursor.Month() == month && cursor.Year() == year

		cell := DayCell{
			Day:     cursor.Day(),
			Date:    date,
			InMonth: inMonth,
		}
		if inMonth {
			cell.IsToday = date == today
			cell.HasEvents = eventDates[date]
		}

		cells = append(cells, cell)
		cursor = cursor.AddDate(0, 0, 1)
	}

	return cells
}
