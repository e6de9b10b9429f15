package task

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Status values reported by Task.Status.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// DefaultPriorities is the priority set offered by the shell when no
// configuration overrides it. The store itself accepts any non-empty text.
var DefaultPriorities = []string{"high", "medium", "low"}

// Task is a single tracked task.
type Task struct {
	// ID is assigned by the store at creation and never reused.
	ID int64

	// Description is the non-empty task text.
	Description string

	// Priority is a free-form, non-empty label (e.g. "high").
	Priority string

	// DueDate is nil for unscheduled tasks. Minute precision, zone-free
	// wall clock carried in UTC (see ParseDueDate).
	DueDate *time.Time

	// Completed only ever transitions from false to true.
	Completed bool
}

// Status returns StatusCompleted or StatusPending.
func (t Task) Status() string {
	if t.Completed {
		return StatusCompleted
	}
	return StatusPending
}

// Overdue reports whether the task is still pending and its due date is
// strictly before the local wall-clock reading of now. Unscheduled tasks
// are never overdue.
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.DueDate != nil && t.DueDate.Before(WallClock(now))
}

// Stats summarizes the task collection.
type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
}

// NormalizeText trims surrounding whitespace and applies Unicode NFC
// normalization so that visually identical input is stored identically.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// IsKnownPriority reports whether p matches one of allowed, ignoring case.
func IsKnownPriority(p string, allowed []string) bool {
	p = NormalizeText(p)
	for _, a := range allowed {
		if strings.EqualFold(p, a) {
			return true
		}
	}
	return false
}
