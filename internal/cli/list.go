package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/tasker/internal/task"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Pending bool
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks by due date",
		Long: `List tasks ordered by due date.

Tasks without a due date are listed first, then scheduled tasks from the
earliest due date to the latest.`,
		Aliases:       []string{"ls"},
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Pending, "pending", false, "only show tasks that are not completed")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return formatter.Fail("failed to open database", err)
	}
	defer closeStore(opts.RootOptions, st)

	tasks, err := st.ListTasks(cmd.Context())
	if err != nil {
		return formatter.Fail("failed to list tasks", err)
	}
	if opts.Pending {
		tasks = pendingOnly(tasks)
	}
	formatter.VerboseLog("Listing %d task(s) from %s", len(tasks), opts.Config.Database)

	now := opts.Now()
	return formatter.Success(newTaskViews(tasks, now), formatTaskList(tasks, now))
}

// pendingOnly filters out completed tasks, preserving order.
func pendingOnly(tasks []task.Task) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}
