package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/tasker/internal/task"
)

const selectTaskColumns = `SELECT id, description, priority, due_date, completed FROM tasks`

// ListTasks returns every task ordered by due date.
// Ordering is ORDER BY due_date ASC, id ASC: unscheduled tasks (NULL) come
// first, then scheduled tasks in non-decreasing due-date order, with equal
// due dates in creation order.
//
// Returns an empty slice (not nil) if the store holds no tasks.
func (s *Store) ListTasks(ctx context.Context) ([]task.Task, error) {
	db, err := s.conn()
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	rows, err := db.QueryContext(ctx, selectTaskColumns+`
		ORDER BY due_date ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w: %w", task.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w: %w", task.ErrStoreUnavailable, err)
	}

	return tasks, nil
}

// GetTask retrieves a single task by id.
// Returns task.ErrTaskNotFound if no such task exists.
func (s *Store) GetTask(ctx context.Context, id int64) (task.Task, error) {
	db, err := s.conn()
	if err != nil {
		return task.Task{}, fmt.Errorf("get task: %w", err)
	}

	row := db.QueryRowContext(ctx, selectTaskColumns+` WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, fmt.Errorf("get task %d: %w", id, task.ErrTaskNotFound)
	}
	if err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// Stats counts tasks by state. Overdue counts pending tasks whose due date
// is strictly before now.
func (s *Store) Stats(ctx context.Context, now time.Time) (task.Stats, error) {
	db, err := s.conn()
	if err != nil {
		return task.Stats{}, fmt.Errorf("task stats: %w", err)
	}

	cutoff := task.WallClock(now).Format(storedDueDateLayout)
	var stats task.Stats
	err = db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COALESCE(SUM(completed != 0), 0),
			COALESCE(SUM(completed = 0 AND due_date IS NOT NULL AND due_date < ?), 0)
		FROM tasks
	`, cutoff).Scan(&stats.Total, &stats.Completed, &stats.Overdue)
	if err != nil {
		return task.Stats{}, fmt.Errorf("task stats: %w: %w", task.ErrStoreUnavailable, err)
	}
	stats.Pending = stats.Total - stats.Completed
	return stats, nil
}

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask scans a row selected with selectTaskColumns into a Task.
// sql.ErrNoRows is returned unwrapped so callers can detect it.
func scanTask(row rowScanner) (task.Task, error) {
	var t task.Task
	var due sql.NullString
	var completed sql.NullInt64

	if err := row.Scan(&t.ID, &t.Description, &t.Priority, &due, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Task{}, err
		}
		return task.Task{}, fmt.Errorf("scan task: %w", err)
	}

	dueDate, err := unmarshalDueDate(due)
	if err != nil {
		return task.Task{}, fmt.Errorf("scan task %d: %w", t.ID, err)
	}
	t.DueDate = dueDate
	t.Completed = completed.Valid && completed.Int64 != 0

	return t, nil
}
