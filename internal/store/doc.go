// Package store provides SQLite-backed durable storage for tasks.
//
// The store owns a single table:
//   - tasks: id, description, priority, due_date, completed
//
// # Invariants
//
// Ids are assigned by SQLite (INTEGER PRIMARY KEY AUTOINCREMENT) and are
// never reused, even after the highest id is deleted.
//
// Listing order is ORDER BY due_date ASC, id ASC. SQLite sorts NULL first,
// so unscheduled tasks always precede scheduled ones. Due dates are stored
// as "YYYY-MM-DD HH:MM:SS" text, which sorts chronologically.
//
// Completion is one way: there is no statement that clears completed.
// Complete and remove on an unknown id affect zero rows and succeed.
//
// # Database Configuration
//
//   - WAL mode
//   - synchronous=NORMAL
//   - busy_timeout=5000
//
// Once Close has been called every operation fails with
// task.ErrStoreUnavailable.
package store
