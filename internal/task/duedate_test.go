package task

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setLocal switches time.Local for the duration of the test.
func setLocal(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
	return loc
}

func TestParseDueDate_DaylightSavingGap(t *testing.T) {
	setLocal(t, "America/New_York")

	// 02:30 does not exist locally on 2024-03-10; it is still a valid reading.
	due, err := ParseDueDate("2024-03-10 02:30")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10 02:30", FormatDueDate(due))
}

func TestParseDueDate_DaylightSavingOverlap(t *testing.T) {
	setLocal(t, "America/New_York")

	due, err := ParseDueDate("2024-11-03 01:30")
	require.NoError(t, err)
	assert.Equal(t, "2024-11-03 01:30", FormatDueDate(due))
}

func TestParseDueDate_IgnoresLocalZone(t *testing.T) {
	setLocal(t, "Asia/Kolkata")
	a, err := ParseDueDate("2024-06-01 09:00")
	require.NoError(t, err)

	setLocal(t, "America/Los_Angeles")
	b, err := ParseDueDate("2024-06-01 09:00")
	require.NoError(t, err)

	assert.True(t, a.Equal(*b))
}

func TestWallClock(t *testing.T) {
	ny := setLocal(t, "America/New_York")

	now := time.Date(2024, 3, 10, 3, 30, 15, 0, ny)
	wall := WallClock(now)
	assert.Equal(t, time.UTC, wall.Location())
	assert.Equal(t, "2024-03-10 03:30:15", wall.Format("2006-01-02 15:04:05"))

	// An instant given in another zone is read on the local clock.
	assert.Equal(t, "2024-03-10 03:30:15", WallClock(now.UTC()).Format("2006-01-02 15:04:05"))
}

func TestOverdue_DaylightSavingGap(t *testing.T) {
	ny := setLocal(t, "America/New_York")

	due, err := ParseDueDate("2024-03-10 02:30")
	require.NoError(t, err)
	task := Task{DueDate: due}

	assert.False(t, task.Overdue(time.Date(2024, 3, 10, 1, 59, 0, 0, ny)))
	assert.True(t, task.Overdue(time.Date(2024, 3, 10, 3, 0, 0, 0, ny)))
}
