// Package task defines the Task record shared by the store and the CLI.
//
// A Task is created once, may be marked completed (one way, never undone),
// and is destroyed by a hard delete. Description and priority are fixed at
// creation.
//
// # Due Dates
//
// Due dates cross the user-facing boundary in exactly one format,
// YYYY-MM-DD HH:MM (24-hour, minute precision, no timezone). Blank input
// means "unscheduled". Anything else is rejected with ErrInvalidDueDate.
//
// # Errors
//
// All failures are reported through the sentinel errors in errors.go,
// wrapped with context. Callers match them with errors.Is.
package task
