package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tasker/internal/task"
	"github.com/roach88/tasker/internal/testutil"
)

func TestRemoveCommand(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, runCLI(t, "", "--db", db, "add", "Keep").Err)
	require.NoError(t, runCLI(t, "", "--db", db, "add", "Drop").Err)

	res := runCLI(t, "", "--db", db, "rm", "2")
	require.NoError(t, res.Err)
	assert.Equal(t, "Task 2 removed.\n", res.Stdout)

	st := testutil.OpenStore(t, db)
	_, err := st.GetTask(context.Background(), 2)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	tasks, err := st.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Keep", tasks[0].Description)
}

func TestRemoveCommand_Idempotent(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, runCLI(t, "", "--db", db, "add", "Drop").Err)

	require.NoError(t, runCLI(t, "", "--db", db, "remove", "1").Err)
	require.NoError(t, runCLI(t, "", "--db", db, "remove", "1").Err)
}

func TestRemoveCommand_InvalidID(t *testing.T) {
	db := newTestDB(t)

	res := runCLI(t, "", "--db", db, "--format", "json", "rm", "abc")
	require.Error(t, res.Err)
	assert.Equal(t, ExitFailure, GetExitCode(res.Err))

	resp := decodeResponse(t, res.Stdout)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInvalidInput, resp.Error.Code)
}

func TestRemoveCommand_JSON(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, runCLI(t, "", "--db", db, "add", "Drop").Err)

	res := runCLI(t, "", "--db", db, "--format", "json", "rm", "1")
	require.NoError(t, res.Err)

	var data struct {
		ID      int64 `json:"id"`
		Removed bool  `json:"removed"`
	}
	decodeData(t, decodeResponse(t, res.Stdout), &data)
	assert.Equal(t, int64(1), data.ID)
	assert.True(t, data.Removed)
}
