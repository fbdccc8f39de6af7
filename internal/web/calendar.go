package web

import (
	"time"

	"bnote/internal/dates"
	"bnote/internal/store"
)

type CalendarMonth struct {
	Label string
	Weeks []CalendarWeek
}

type CalendarWeek struct {
	Days []CalendarDay
}

type CalendarDay struct {
	Date      string
	Day       int
	InMonth   bool
	NoteCount int
	URL       string
	Active    bool
}

// monthRange returns the first and last day of the month containing day.
func monthRange(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func buildCalendarMonth(active time.Time, counts []store.DayCount, baseURL string) CalendarMonth {
	monthStart, monthEnd := monthRange(active)
	activeKey := active.Format(dates.DayLayout)
	countMap := make(map[string]int, len(counts))
	for _, c := range counts {
		countMap[c.Day] = c.Count
	}

	offset := int(monthStart.Weekday())
	gridStart := monthStart.AddDate(0, 0, -offset)

	var weeks []CalendarWeek
	var days []CalendarDay
	for day := gridStart; ; day = day.AddDate(0, 0, 1) {
		key := day.Format(dates.DayLayout)
		days = append(days, CalendarDay{
			Date:      key,
			Day:       day.Day(),
			InMonth:   day.Month() == monthStart.Month(),
			NoteCount: countMap[key],
			URL:       baseURL + "/list/" + key,
			Active:    key == activeKey,
		})

		if len(days) == 7 {
			weeks = append(weeks, CalendarWeek{Days: days})
			days = nil
			if !day.Before(monthEnd) && day.Weekday() == time.Saturday {
				break
			}
		}
	}

	return CalendarMonth{
		Label: monthStart.Format("January 2006"),
		Weeks: weeks,
	}
}
