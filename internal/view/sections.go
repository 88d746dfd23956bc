package view

import (
	"sort"
	"time"

	"github.com/hitoshi/taskboard/internal/model"
)

// セクション見出し。表示順もこの順で固定。
const (
	SectionToday     = "Today"
	SectionThisWeek  = "This Week"
	SectionThisMonth = "This Month"
	SectionLater     = "Later"
)

// Section は時間帯ごとにまとめたイベントの区分を表す。
type Section struct {
	Title  string                `json:"title"`
	Events []model.CalendarEvent `json:"events"`
}

// SectionEvents はイベントをtodayを基準に4つの区分へ振り分ける。
//
// Today: 日付がtodayと一致。This Week: 翌日から6日後まで。
// This Month: 7日後から暦上の1ヶ月後の前日まで。Later: それ以外すべて
// （過去のイベントを含む）。各区分内は日付昇順で、空の区分は省略される。
func SectionEvents(events []model.CalendarEvent, today string) []Section {
	ref, err := time.Parse(model.DateLayout, today)
	if err != nil {
		return nil
	}

	// "YYYY-MM-DD" は辞書順比較が日付順になるため境界も文字列で持つ
	weekEnd := ref.AddDate(0, 0, 6).Format(model.DateLayout)
	monthEnd := ref.AddDate(0, 1, 0).Format(model.DateLayout)

	buckets := map[string][]model.CalendarEvent{}
	for _, event := range events {
		title := SectionLater
		switch {
		case event.Date == today:
			title = SectionToday
		case event.Date > today && event.Date <= weekEnd:
			title = SectionThisWeek
		case event.Date > weekEnd && event.Date < monthEnd:
			title = SectionThisMonth
		}
		buckets[title] = append(buckets[title], event)
	}

	sections := make([]Section, 0, 4)
	for _, title := range []string{SectionToday, SectionThisWeek, SectionThisMonth, SectionLater} {
		bucket := buckets[title]
		if len(bucket) == 0 {
			continue
		}
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Date < bucket[j].Date
		})
		sections = append(sections, Section{Title: title, Events: bucket})
	}
	return sections
}

// Row はセクション見出しとイベントを混在させた表示1行を表す。
// 見出し行はHeaderが非空でEventがnil、イベント行はその逆となる。
type Row struct {
	Header string               `json:"header,omitempty"`
	Event  *model.CalendarEvent `json:"event,omitempty"`
}

// Page はページ分割済みの行列とページ情報を表す。
type Page struct {
	Rows       []Row `json:"rows"`
	Page       int   `json:"page"`
	TotalPages int   `json:"totalPages"`
}

// PaginateSections は区分を（見出し, イベント...）の平坦な行列に展開し、
// 固定サイズのページへ切り出す。
//
// ページ番号は0始まり。最終ページより先への移動は最終ページへ、
// 先頭より前への移動は0ページへクランプされる。
func PaginateSections(sections []Section, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = 1
	}

	var rows []Row
	for i := range sections {
		rows = append(rows, Row{Header: sections[i].Title})
		for j := range sections[i].Events {
			rows = append(rows, Row{Event: &sections[i].Events[j]})
		}
	}

	totalPages := (len(rows) + pageSize - 1) / pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 0 {
		page = 0
	}
	if page > totalPages-1 {
		page = totalPages - 1
	}

	start := page * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}

	return Page{
		Rows:       rows[start:end],
		Page:       page,
		TotalPages: totalPages,
	}
}
