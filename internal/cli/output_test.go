package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tasker/internal/task"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "json",
		Writer:  buf,
		TraceID: "trace-1",
	}

	err := formatter.Success(map[string]int{"id": 7}, "Added task 7.")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, "trace-1", resp.TraceID)
	assert.NotContains(t, buf.String(), "Added task 7.")
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Error(ErrCodeInvalidDueDate, "bad date", nil)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E003", resp.Error.Code)
	assert.Equal(t, "bad date", resp.Error.Message)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Success(map[string]int{"id": 1}, "Added task 1."))
	assert.Equal(t, "Added task 1.\n", buf.String())
}

func TestFormatTaskList(t *testing.T) {
	assert.Equal(t, "No tasks.", formatTaskList(nil, testNow))

	due, err := task.ParseDueDate("2023-12-31 08:00")
	require.NoError(t, err)
	tasks := []task.Task{
		{ID: 1, Description: "A", Priority: "high"},
		{ID: 3, Description: "C", Priority: "low", DueDate: due},
	}
	want := "Tasks:\n" +
		"1. A - Priority: high - Due: not set - Status: pending\n" +
		"3. C - Priority: low - Due: 2023-12-31 08:00 - Status: pending (overdue)"
	assert.Equal(t, want, formatTaskList(tasks, testNow))
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	require.NoError(t, formatter.Error("E004", "store unavailable", map[string]string{"path": "x"}))
	assert.Equal(t, "Error [E004]: store unavailable\n", buf.String())
}

func TestOutputFormatter_TextErrorVerbose(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format:  "text",
		Writer:  buf,
		Verbose: true,
	}

	require.NoError(t, formatter.Error("E004", "store unavailable", map[string]string{"path": "x"}))
	assert.Contains(t, buf.String(), "Error [E004]")
	assert.Contains(t, buf.String(), "Details:")
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		wantLog bool
	}{
		{"verbose_enabled", true, true},
		{"verbose_disabled", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			errBuf := &bytes.Buffer{}
			formatter := &OutputFormatter{
				Format:    "json",
				Writer:    buf,
				ErrWriter: errBuf,
				Verbose:   tt.verbose,
			}

			formatter.VerboseLog("Listing %d task(s)", 3)

			assert.Empty(t, buf.String(), "verbose output must not corrupt stdout")
			if tt.wantLog {
				assert.Contains(t, errBuf.String(), "Listing 3 task(s)")
			} else {
				assert.Empty(t, errBuf.String())
			}
		})
	}
}

func TestOutputFormatter_Fail(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
		wantExit int
	}{
		{"due date", fmt.Errorf("create task: %w", task.ErrInvalidDueDate), ErrCodeInvalidDueDate, ExitFailure},
		{"empty description", task.ErrEmptyDescription, ErrCodeInvalidInput, ExitFailure},
		{"unknown priority", task.ErrUnknownPriority, ErrCodeInvalidInput, ExitFailure},
		{"not found", task.ErrTaskNotFound, ErrCodeNotFound, ExitFailure},
		{"store", fmt.Errorf("list tasks: %w", task.ErrStoreUnavailable), ErrCodeStoreUnavailable, ExitCommandError},
		{"other", errors.New("boom"), ErrCodeGeneric, ExitCommandError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "text", Writer: buf}

			err := formatter.Fail("operation failed", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.wantExit, GetExitCode(err))
			assert.ErrorIs(t, err, tt.err)
			assert.Contains(t, buf.String(), "Error ["+tt.wantCode+"]: operation failed")
		})
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to open database", inner)

	assert.Equal(t, "failed to open database: disk full", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	plain := NewExitError(ExitFailure, "rejected")
	assert.Equal(t, "rejected", plain.Error())
	assert.Nil(t, plain.Unwrap())

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("not an exit error")))
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("wrapped: %w", plain)))
}
