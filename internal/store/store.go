package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/tasker/internal/task"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (tables created by earlier releases, no AUTOINCREMENT,
// nullable completed)
// 1 - tasks rebuilt with AUTOINCREMENT ids and completed NOT NULL DEFAULT 0
const currentSchemaVersion = 1

// Store provides durable storage for tasks.
// A Store is not safe for concurrent use; it is driven by a single caller.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// This function is idempotent - safe to call on an existing database.
// Any failure is reported as task.ErrStoreUnavailable.
func Open(path string) (*Store, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w: %w", task.ErrStoreUnavailable, err)
	}

	// sql.Open is lazy; Ping surfaces permission and path errors
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w: %w", task.ErrStoreUnavailable, err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w: %w", task.ErrStoreUnavailable, err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w: %w", task.ErrStoreUnavailable, err)
	}

	return &Store{db: db}, nil
}

// Close releases the database connection.
// Safe to call more than once; later operations fail with
// task.ErrStoreUnavailable.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// conn returns the open database handle or task.ErrStoreUnavailable.
func (s *Store) conn() (*sql.DB, error) {
	if s.db == nil {
		return nil, task.ErrStoreUnavailable
	}
	return s.db, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}

// runMigrations applies incremental schema migrations based on user_version.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version < 1 {
		if err := migrateToV1(db); err != nil {
			return err
		}
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// migrateToV1 upgrades a tasks table created by an earlier release.
// Those tables used a bare INTEGER PRIMARY KEY, which lets SQLite hand out
// the id of a deleted last row again, and allowed NULL in completed; they
// are rebuilt. Due dates are rewritten to storedDueDateLayout so that text
// ordering matches time ordering.
func migrateToV1(db *sql.DB) error {
	var ddl string
	if err := db.QueryRow(
		"SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'tasks'",
	).Scan(&ddl); err != nil {
		return fmt.Errorf("migrate to v1: read table definition: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate to v1: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var steps []string
	if !strings.Contains(strings.ToUpper(ddl), "AUTOINCREMENT") {
		steps = append(steps,
			`CREATE TABLE tasks_v1 (
				id          INTEGER PRIMARY KEY AUTOINCREMENT,
				description TEXT    NOT NULL,
				priority    TEXT    NOT NULL,
				due_date    TEXT,
				completed   INTEGER NOT NULL DEFAULT 0
			)`,
			`INSERT INTO tasks_v1 (id, description, priority, due_date, completed)
				SELECT id, description, priority, due_date, COALESCE(completed, 0) FROM tasks`,
			`DROP TABLE tasks`,
			`ALTER TABLE tasks_v1 RENAME TO tasks`,
			`CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date, id)`,
		)
	}
	steps = append(steps,
		// "2006-01-02T15:04:05" sorts after every "2006-01-02 15:04:05" of the same day
		`UPDATE tasks SET due_date = replace(due_date, 'T', ' ') WHERE instr(due_date, 'T') > 0`,
		// "2006-01-02 15:04" sorts before the same minute with seconds
		`UPDATE tasks SET due_date = due_date || ':00' WHERE length(due_date) = 16`,
		`UPDATE tasks SET due_date = NULL WHERE due_date = ''`,
	)

	for _, step := range steps {
		if _, err := tx.Exec(step); err != nil {
			return fmt.Errorf("migrate to v1: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate to v1: commit: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
