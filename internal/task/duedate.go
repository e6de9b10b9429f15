package task

import (
	"fmt"
	"strings"
	"time"
)

// DueDateLayout is the only accepted due-date format at the user boundary.
const DueDateLayout = "2006-01-02 15:04"

// ParseDueDate parses due-date text in DueDateLayout.
//
// Blank (or whitespace-only) input returns nil, nil: the task is unscheduled.
// The parse is strict - the value must format back to exactly the input, so
// single-digit hours and similar shorthand are rejected.
// Due dates are zone-free wall-clock readings. They are carried as UTC
// times so that every valid reading exists, including readings that fall
// in a daylight-saving gap of the local zone.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation(DueDateLayout, s, time.UTC)
	if err != nil || t.Format(DueDateLayout) != s {
		return nil, fmt.Errorf("%w: %q (want YYYY-MM-DD HH:MM)", ErrInvalidDueDate, s)
	}
	return &t, nil
}

// FormatDueDate formats a due date in DueDateLayout.
// Returns "" for an unscheduled task.
func FormatDueDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DueDateLayout)
}

// WallClock returns the local wall-clock reading of now in the same
// zone-free form as parsed due dates, for comparing against them.
func WallClock(now time.Time) time.Time {
	l := now.In(time.Local)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), l.Nanosecond(), time.UTC)
}
