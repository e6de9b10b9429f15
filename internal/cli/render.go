package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/roach88/tasker/internal/task"
)

// taskView is the JSON representation of a task.
type taskView struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
	Completed   bool   `json:"completed"`
	Status      string `json:"status"`
	Overdue     bool   `json:"overdue,omitempty"`
}

func newTaskView(t task.Task, now time.Time) taskView {
	return taskView{
		ID:          t.ID,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     task.FormatDueDate(t.DueDate),
		Completed:   t.Completed,
		Status:      t.Status(),
		Overdue:     t.Overdue(now),
	}
}

func newTaskViews(tasks []task.Task, now time.Time) []taskView {
	views := make([]taskView, len(tasks))
	for i, t := range tasks {
		views[i] = newTaskView(t, now)
	}
	return views
}

// formatTaskLine renders one task as a single text line.
func formatTaskLine(t task.Task, now time.Time) string {
	due := task.FormatDueDate(t.DueDate)
	if due == "" {
		due = "not set"
	}
	status := t.Status()
	if t.Overdue(now) {
		status += " (overdue)"
	}
	return fmt.Sprintf("%d. %s - Priority: %s - Due: %s - Status: %s",
		t.ID, t.Description, t.Priority, due, status)
}

// formatTaskList renders tasks as text, one per line, under a header.
// The result has no trailing newline.
func formatTaskList(tasks []task.Task, now time.Time) string {
	if len(tasks) == 0 {
		return "No tasks."
	}
	lines := make([]string, 0, len(tasks)+1)
	lines = append(lines, "Tasks:")
	for _, t := range tasks {
		lines = append(lines, formatTaskLine(t, now))
	}
	return strings.Join(lines, "\n")
}

// writeTaskList writes formatTaskList followed by a newline.
func writeTaskList(w io.Writer, tasks []task.Task, now time.Time) {
	fmt.Fprintln(w, formatTaskList(tasks, now))
}

func formatStats(s task.Stats) string {
	return fmt.Sprintf("Total: %d  Pending: %d  Completed: %d  Overdue: %d",
		s.Total, s.Pending, s.Completed, s.Overdue)
}
