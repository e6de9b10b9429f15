package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/tasker/internal/store"
)

// TempDBPath returns a database path inside a per-test temp directory.
func TempDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tasks.db")
}

// OpenStore opens a store at path and closes it when the test ends.
func OpenStore(t *testing.T, path string) *store.Store {
	t.Helper()
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("store.Open(%q) failed: %v", path, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// SeedTask is a task to insert with Seed.
type SeedTask struct {
	Description string
	Priority    string
	Due         string
	Completed   bool
}

// Seed inserts tasks in order and returns their ids.
func Seed(t *testing.T, s *store.Store, tasks ...SeedTask) []int64 {
	t.Helper()
	ctx := context.Background()
	ids := make([]int64, 0, len(tasks))
	for _, st := range tasks {
		id, err := s.CreateTask(ctx, st.Description, st.Priority, st.Due)
		if err != nil {
			t.Fatalf("Seed: CreateTask(%q) failed: %v", st.Description, err)
		}
		if st.Completed {
			if err := s.CompleteTask(ctx, id); err != nil {
				t.Fatalf("Seed: CompleteTask(%d) failed: %v", id, err)
			}
		}
		ids = append(ids, id)
	}
	return ids
}
