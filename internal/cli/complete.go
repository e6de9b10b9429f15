package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCompleteCommand creates the complete command.
func NewCompleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a task as completed",
		Long: `Mark a task as completed.

Completing a task that is already completed, or that does not exist, is a
no-op and succeeds.`,
		Aliases:       []string{"done"},
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComplete(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runComplete(opts *RootOptions, arg string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	id, err := parseTaskID(arg)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid task id", err)
	}

	st, err := openStore(opts)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer closeStore(opts, st)

	if err := st.CompleteTask(cmd.Context(), id); err != nil {
		return formatter.Fail("failed to complete task", err)
	}
	opts.Logger.Debug("task completed", "id", id)

	return formatter.Success(map[string]any{"id": id, "completed": true},
		fmt.Sprintf("Task %d marked as completed.", id))
}
