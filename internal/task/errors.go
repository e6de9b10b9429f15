package task

import "errors"

var (
	// ErrInvalidDueDate indicates due-date text that is not YYYY-MM-DD HH:MM.
	ErrInvalidDueDate = errors.New("invalid due date")

	// ErrStoreUnavailable indicates the backing store could not be opened,
	// has been closed, or failed an I/O operation.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrEmptyDescription indicates a blank task description.
	ErrEmptyDescription = errors.New("description is required")

	// ErrEmptyPriority indicates a blank task priority.
	ErrEmptyPriority = errors.New("priority is required")

	// ErrUnknownPriority indicates a priority outside the allowed set.
	// Only raised by callers that opt in to strict priorities.
	ErrUnknownPriority = errors.New("unknown priority")

	// ErrTaskNotFound is returned by lookups of a single task.
	// Complete and remove treat a missing id as a no-op instead.
	ErrTaskNotFound = errors.New("task not found")
)

// IsInputError returns true if err was caused by invalid user input rather
// than by the store.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDueDate) ||
		errors.Is(err, ErrEmptyDescription) ||
		errors.Is(err, ErrEmptyPriority) ||
		errors.Is(err, ErrUnknownPriority)
}
