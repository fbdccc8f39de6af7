// Package dates normalizes user supplied day strings and computes calendar
// neighbours for day navigation.
package dates

import (
	"regexp"
	"time"
)

const (
	DayLayout       = "2006-01-02"
	CompactLayout   = "20060102"
	TimestampLayout = "2006-01-02 15:04:05"
)

var (
	compactPattern = regexp.MustCompile(`^\d{8}$`)
	dashedPattern  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Normalize accepts YYYYMMDD or YYYY-MM-DD and returns the YYYY-MM-DD form.
// Any other shape, or a day that does not exist on the calendar, is rejected.
func Normalize(input string) (string, bool) {
	var layout string
	switch {
	case compactPattern.MatchString(input):
		layout = CompactLayout
	case dashedPattern.MatchString(input):
		layout = DayLayout
	default:
		return "", false
	}
	day, err := time.Parse(layout, input)
	if err != nil {
		return "", false
	}
	return day.Format(DayLayout), true
}

// Valid reports whether s is a real calendar day in YYYY-MM-DD form.
func Valid(s string) bool {
	if !dashedPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(DayLayout, s)
	return err == nil
}

// Adjacent returns the days before and after day. ok is false when day is
// not a valid YYYY-MM-DD string, in which case navigation should be omitted.
func Adjacent(day string) (prev, next string, ok bool) {
	if !Valid(day) {
		return "", "", false
	}
	d, _ := time.Parse(DayLayout, day)
	return d.AddDate(0, 0, -1).Format(DayLayout), d.AddDate(0, 0, 1).Format(DayLayout), true
}

// Today is the current day in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(orLocal(loc)).Format(DayLayout)
}

// Timestamp formats now as a stored note timestamp in loc.
func Timestamp(now time.Time, loc *time.Location) string {
	return now.In(orLocal(loc)).Format(TimestampLayout)
}

// Dotted renders YYYY-MM-DD as YYYY.MM.DD for digest headings.
func Dotted(day string) string {
	d, err := time.Parse(DayLayout, day)
	if err != nil {
		return day
	}
	return d.Format("2006.01.02")
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
