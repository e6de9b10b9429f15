package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// AddOptions holds flags for the add command.
type AddOptions struct {
	*RootOptions
	Priority string
	Due      string
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <description...>",
		Short: "Add a task",
		Long: `Add a task with a priority and an optional due date.

The due date must be exactly YYYY-MM-DD HH:MM (24-hour clock).

Example:
  tasker add Pay rent --priority high --due "2024-03-01 09:00"
  tasker add Read a book -p low`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(opts, strings.Join(args, " "), cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Priority, "priority", "p", "medium", "task priority")
	cmd.Flags().StringVarP(&opts.Due, "due", "d", "", `due date "YYYY-MM-DD HH:MM"`)

	return cmd
}

func runAdd(opts *AddOptions, description string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if err := checkPriority(opts.RootOptions, opts.Priority); err != nil {
		return formatter.Fail("failed to add task", err)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer closeStore(opts.RootOptions, st)

	ctx := cmd.Context()
	id, err := st.CreateTask(ctx, description, opts.Priority, opts.Due)
	if err != nil {
		return formatter.Fail("failed to add task", err)
	}
	opts.Logger.Debug("task created", "id", id)

	created, err := st.GetTask(ctx, id)
	if err != nil {
		return formatter.Fail("failed to read task", err)
	}

	return formatter.Success(newTaskView(created, opts.Now()), fmt.Sprintf("Added task %d.", id))
}
