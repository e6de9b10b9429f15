package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/tasker/internal/store"
)

// NewShellCommand creates the shell command.
// The root command runs the same loop when no subcommand is given.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menu",
		Long: `Start the interactive menu.

Choices:
  1. Add task
  2. List tasks
  3. Complete task
  4. Remove task
  5. Exit

Invalid choices are re-prompted. End of input exits like choice 5.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}
}

// errEndOfInput signals that stdin was exhausted mid-session.
var errEndOfInput = errors.New("end of input")

// shell is one interactive menu session over an open store.
type shell struct {
	opts  *RootOptions
	store *store.Store
	in    *bufio.Scanner
	out   io.Writer
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	st, err := openStore(opts)
	if err != nil {
		formatter := newFormatter(opts, cmd)
		formatter.Format = "text"
		return formatter.Fail("failed to open database", err)
	}
	defer closeStore(opts, st)

	sh := &shell{
		opts:  opts,
		store: st,
		in:    bufio.NewScanner(cmd.InOrStdin()),
		out:   cmd.OutOrStdout(),
	}
	opts.Logger.Debug("shell started")
	return sh.run(cmd.Context())
}

// run loops over the menu until the user exits or input ends.
func (sh *shell) run(ctx context.Context) error {
	for {
		sh.printMenu()
		choice, err := sh.prompt("Choose an option: ")
		if err != nil {
			return sh.endOfInput(err)
		}

		switch choice {
		case "1":
			err = sh.addTask(ctx)
		case "2":
			err = sh.listTasks(ctx)
		case "3":
			err = sh.completeTask(ctx)
		case "4":
			err = sh.removeTask(ctx)
		case "5":
			fmt.Fprintln(sh.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(sh.out, "Invalid option. Please choose 1-5.")
		}
		if err != nil {
			return sh.endOfInput(err)
		}
	}
}

func (sh *shell) printMenu() {
	fmt.Fprintln(sh.out)
	fmt.Fprintln(sh.out, "1. Add task")
	fmt.Fprintln(sh.out, "2. List tasks")
	fmt.Fprintln(sh.out, "3. Complete task")
	fmt.Fprintln(sh.out, "4. Remove task")
	fmt.Fprintln(sh.out, "5. Exit")
}

// prompt writes label and reads one trimmed line.
// Returns errEndOfInput when input is exhausted.
func (sh *shell) prompt(label string) (string, error) {
	fmt.Fprint(sh.out, label)
	if !sh.in.Scan() {
		if err := sh.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errEndOfInput
	}
	return strings.TrimSpace(sh.in.Text()), nil
}

// endOfInput turns exhausted input into a clean exit.
func (sh *shell) endOfInput(err error) error {
	if errors.Is(err, errEndOfInput) {
		fmt.Fprintln(sh.out)
		sh.opts.Logger.Debug("shell input closed")
		return nil
	}
	return err
}

// reportError prints a store or input error and lets the loop continue.
func (sh *shell) reportError(message string, err error) {
	code, _ := classifyError(err)
	fmt.Fprintf(sh.out, "Error [%s]: %s: %v\n", code, message, err)
	sh.opts.Logger.Debug(message, "error", err)
}

func (sh *shell) addTask(ctx context.Context) error {
	description, err := sh.prompt("Description: ")
	if err != nil {
		return err
	}
	priorities := strings.Join(sh.opts.Config.Priorities, ", ")
	priority, err := sh.prompt(fmt.Sprintf("Priority (%s): ", priorities))
	if err != nil {
		return err
	}
	due, err := sh.prompt("Due date (optional, YYYY-MM-DD HH:MM): ")
	if err != nil {
		return err
	}

	if err := checkPriority(sh.opts, priority); err != nil {
		sh.reportError("failed to add task", err)
		return nil
	}

	id, err := sh.store.CreateTask(ctx, description, priority, due)
	if err != nil {
		sh.reportError("failed to add task", err)
		return nil
	}
	sh.opts.Logger.Debug("task created", "id", id)
	fmt.Fprintf(sh.out, "Task added (id %d).\n", id)
	return nil
}

func (sh *shell) listTasks(ctx context.Context) error {
	tasks, err := sh.store.ListTasks(ctx)
	if err != nil {
		sh.reportError("failed to list tasks", err)
		return nil
	}
	writeTaskList(sh.out, tasks, sh.opts.Now())
	return nil
}

func (sh *shell) completeTask(ctx context.Context) error {
	id, ok, err := sh.promptID("Task number to complete: ")
	if err != nil || !ok {
		return err
	}
	if err := sh.store.CompleteTask(ctx, id); err != nil {
		sh.reportError("failed to complete task", err)
		return nil
	}
	sh.opts.Logger.Debug("task completed", "id", id)
	fmt.Fprintln(sh.out, "Task marked as completed.")
	return nil
}

func (sh *shell) removeTask(ctx context.Context) error {
	id, ok, err := sh.promptID("Task number to remove: ")
	if err != nil || !ok {
		return err
	}
	if err := sh.store.RemoveTask(ctx, id); err != nil {
		sh.reportError("failed to remove task", err)
		return nil
	}
	sh.opts.Logger.Debug("task removed", "id", id)
	fmt.Fprintln(sh.out, "Task removed.")
	return nil
}

// promptID reads a task id. ok is false (with a nil error) when the input
// was not a valid id and the user should be returned to the menu.
func (sh *shell) promptID(label string) (id int64, ok bool, err error) {
	raw, err := sh.prompt(label)
	if err != nil {
		return 0, false, err
	}
	id, err = parseTaskID(raw)
	if err != nil {
		fmt.Fprintln(sh.out, "Invalid task number.")
		return 0, false, nil
	}
	return id, true, nil
}
