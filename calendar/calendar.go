package calendar

import (
	"fmt"
	"time"
)

// DateLayout ISO date layout used on the wire
const DateLayout = "2006-01-02"

// displayLayout matches the human readable dates shown next to results
const displayLayout = "Mon Jan 02 2006"

// IsBusinessDay reports whether t falls on Monday to Friday. There is no holiday calendar.
func IsBusinessDay(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

// AddBusinessDays advances n business days (n can be negative).
// Adding 0 returns t unchanged, even on a weekend.
func AddBusinessDays(t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(t) {
			n -= step
		}
	}
	return t
}

// Date truncates t to midnight UTC of its calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO yyyy-MM-dd date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// FormatDate formats t as an ISO date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Display formats t for people, e.g. "Wed Jan 03 2024".
func Display(t time.Time) string {
	return t.Format(displayLayout)
}
