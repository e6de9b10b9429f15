package store

import (
	"context"
	"fmt"

	"github.com/roach88/tasker/internal/task"
)

// CreateTask validates and inserts a new pending task, returning its id.
//
// description and priority are trimmed and NFC-normalized; either being
// blank fails with task.ErrEmptyDescription / task.ErrEmptyPriority.
// dueDate is parsed with task.ParseDueDate: blank means unscheduled,
// anything not in YYYY-MM-DD HH:MM fails with task.ErrInvalidDueDate.
// Nothing is written when validation fails.
func (s *Store) CreateTask(ctx context.Context, description, priority, dueDate string) (int64, error) {
	db, err := s.conn()
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}

	description = task.NormalizeText(description)
	if description == "" {
		return 0, fmt.Errorf("create task: %w", task.ErrEmptyDescription)
	}
	priority = task.NormalizeText(priority)
	if priority == "" {
		return 0, fmt.Errorf("create task: %w", task.ErrEmptyPriority)
	}
	due, err := task.ParseDueDate(dueDate)
	if err != nil {
		return 0, fmt.Errorf("create task: %w", err)
	}

	result, err := db.ExecContext(ctx, `
		INSERT INTO tasks (description, priority, due_date, completed)
		VALUES (?, ?, ?, 0)
	`,
		description,
		priority,
		marshalDueDate(due),
	)
	if err != nil {
		return 0, fmt.Errorf("create task: %w: %w", task.ErrStoreUnavailable, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create task: last insert id: %w", err)
	}
	return id, nil
}

// CompleteTask marks the task with the given id as completed.
// Completing an already-completed or unknown task is a no-op, not an error.
func (s *Store) CompleteTask(ctx context.Context, id int64) error {
	db, err := s.conn()
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}

	if _, err := db.ExecContext(ctx, `UPDATE tasks SET completed = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("complete task: %w: %w", task.ErrStoreUnavailable, err)
	}
	return nil
}

// RemoveTask permanently deletes the task with the given id.
// Removing an unknown task is a no-op, not an error.
func (s *Store) RemoveTask(ctx context.Context, id int64) error {
	db, err := s.conn()
	if err != nil {
		return fmt.Errorf("remove task: %w", err)
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove task: %w: %w", task.ErrStoreUnavailable, err)
	}
	return nil
}
