package task

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate_Valid(t *testing.T) {
	due, err := ParseDueDate("2024-03-15 14:30")
	require.NoError(t, err)
	require.NotNil(t, due)

	assert.Equal(t, 2024, due.Year())
	assert.Equal(t, time.March, due.Month())
	assert.Equal(t, 15, due.Day())
	assert.Equal(t, 14, due.Hour())
	assert.Equal(t, 30, due.Minute())
	assert.Equal(t, "2024-03-15 14:30", FormatDueDate(due))
}

func TestParseDueDate_TrimsWhitespace(t *testing.T) {
	due, err := ParseDueDate("  2024-01-01 09:00\n")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01 09:00", FormatDueDate(due))
}

func TestParseDueDate_BlankIsUnscheduled(t *testing.T) {
	for _, in := range []string{"", " ", "\t\n"} {
		due, err := ParseDueDate(in)
		require.NoError(t, err, "input %q", in)
		assert.Nil(t, due, "input %q", in)
	}
}

func TestParseDueDate_Invalid(t *testing.T) {
	cases := []string{
		"15/03/2024",
		"2024-03-15",
		"2024-03-15 14:30:00",
		"2024-03-15T14:30",
		"2024-03-15 9:30",
		"2024-3-15 14:30",
		"2024-02-30 10:00",
		"2024-03-15 24:00",
		"tomorrow",
	}

	for _, in := range cases {
		t.Run(in, func(t *testing.T) {
			due, err := ParseDueDate(in)
			require.Error(t, err)
			assert.Nil(t, due)
			assert.True(t, errors.Is(err, ErrInvalidDueDate))
			assert.Contains(t, err.Error(), "YYYY-MM-DD HH:MM")
		})
	}
}

func TestFormatDueDate_Nil(t *testing.T) {
	assert.Equal(t, "", FormatDueDate(nil))
}

func TestTaskStatus(t *testing.T) {
	assert.Equal(t, StatusPending, Task{}.Status())
	assert.Equal(t, StatusCompleted, Task{Completed: true}.Status())
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	due := func(s string) *time.Time {
		d, err := ParseDueDate(s)
		require.NoError(t, err)
		return d
	}

	assert.True(t, Task{DueDate: due("2024-06-01 11:59")}.Overdue(now))
	assert.False(t, Task{DueDate: due("2024-06-01 12:01")}.Overdue(now))
	assert.False(t, Task{DueDate: due("2024-06-01 12:00")}.Overdue(now), "due exactly now is not overdue")
	assert.False(t, Task{DueDate: due("2024-06-01 11:59"), Completed: true}.Overdue(now))
	assert.False(t, Task{}.Overdue(now), "unscheduled is never overdue")
}

func TestNormalizeText(t *testing.T) {
	// "e" + combining acute accent composes to a single code point.
	assert.Equal(t, "caf\u00e9", NormalizeText("  cafe\u0301 "))
	assert.Equal(t, "buy milk", NormalizeText("buy milk"))
	assert.Equal(t, "", NormalizeText("   "))
}

func TestIsKnownPriority(t *testing.T) {
	assert.True(t, IsKnownPriority("high", DefaultPriorities))
	assert.True(t, IsKnownPriority(" HIGH ", DefaultPriorities))
	assert.True(t, IsKnownPriority("Low", DefaultPriorities))
	assert.False(t, IsKnownPriority("urgent", DefaultPriorities))
	assert.False(t, IsKnownPriority("", DefaultPriorities))
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(fmt.Errorf("create task: %w", ErrInvalidDueDate)))
	assert.True(t, IsInputError(ErrEmptyDescription))
	assert.True(t, IsInputError(ErrEmptyPriority))
	assert.True(t, IsInputError(ErrUnknownPriority))
	assert.False(t, IsInputError(ErrStoreUnavailable))
	assert.False(t, IsInputError(ErrTaskNotFound))
	assert.False(t, IsInputError(nil))
}
