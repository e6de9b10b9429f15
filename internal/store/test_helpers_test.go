package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustCreateTask creates a task and fails the test on error.
func mustCreateTask(t *testing.T, s *Store, description, priority, due string) int64 {
	t.Helper()
	id, err := s.CreateTask(context.Background(), description, priority, due)
	if err != nil {
		t.Fatalf("CreateTask(%q, %q, %q) failed: %v", description, priority, due, err)
	}
	return id
}

// mustListTasks lists tasks and fails the test on error.
func mustListTasks(t *testing.T, s *Store) []taskSummary {
	t.Helper()
	tasks, err := s.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("ListTasks() failed: %v", err)
	}
	out := make([]taskSummary, len(tasks))
	for i, tk := range tasks {
		out[i] = taskSummary{ID: tk.ID, Description: tk.Description, Completed: tk.Completed}
	}
	return out
}

// taskSummary is the subset of a task compared by ordering tests.
type taskSummary struct {
	ID          int64
	Description string
	Completed   bool
}
