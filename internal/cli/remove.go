package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a task permanently",
		Long: `Remove a task permanently. There is no undo.

Removing a task that does not exist is a no-op and succeeds.`,
		Aliases:       []string{"remove"},
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, arg string, cmd *cobra.Command) error {
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

	if err := st.RemoveTask(cmd.Context(), id); err != nil {
		return formatter.Fail("failed to remove task", err)
	}
	opts.Logger.Debug("task removed", "id", id)

	return formatter.Success(map[string]any{"id": id, "removed": true},
		fmt.Sprintf("Task %d removed.", id))
}
