package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/tasker/internal/config"
	"github.com/roach88/tasker/internal/store"
	"github.com/roach88/tasker/internal/task"
)

// newTraceID returns a time-sortable UUIDv7 identifying one CLI invocation.
func newTraceID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// newFormatter builds the output formatter for a command.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
		TraceID:   opts.TraceID,
	}
}

// openStore opens the configured database. The caller must defer closeStore.
// The default data directory is created on first use; explicit paths are
// used as given.
func openStore(opts *RootOptions) (*store.Store, error) {
	path := opts.Config.Database
	if path == config.DefaultDatabasePath() {
		if err := opts.Config.EnsureDataDir(); err != nil {
			return nil, fmt.Errorf("create data directory: %w: %w", task.ErrStoreUnavailable, err)
		}
	}

	opts.Logger.Debug("opening database", "path", path)
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("database ready", "path", path)
	return st, nil
}

// closeStore releases the database, logging any failure.
func closeStore(opts *RootOptions, st *store.Store) {
	if err := st.Close(); err != nil {
		opts.Logger.Error("error closing database", "error", err)
		return
	}
	opts.Logger.Debug("database closed")
}

// parseTaskID parses a task id argument.
func parseTaskID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q: must be a positive integer", s)
	}
	return id, nil
}

// checkPriority enforces the configured priority set when strict_priorities
// is enabled. The store itself accepts any non-empty priority.
func checkPriority(opts *RootOptions, priority string) error {
	if !opts.Config.StrictPriorities || strings.TrimSpace(priority) == "" {
		return nil
	}
	if !task.IsKnownPriority(priority, opts.Config.Priorities) {
		return fmt.Errorf("%w %q: must be one of %s",
			task.ErrUnknownPriority, strings.TrimSpace(priority), strings.Join(opts.Config.Priorities, ", "))
	}
	return nil
}
