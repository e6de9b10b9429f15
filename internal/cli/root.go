package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tasker/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"; empty means "from config"
	Database   string
	ConfigPath string

	// Now allows overriding the wall clock (for testing).
	// If nil, defaults to time.Now.
	Now func() time.Time

	// Populated by PersistentPreRunE.
	Config  *config.Config
	Logger  *slog.Logger
	TraceID string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the tasker CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasker",
		Short: "tasker - personal task tracker",
		Long: `A personal task tracker backed by a local SQLite database.

Run without a subcommand to start the interactive menu.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(opts, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "", "output format (json|text), default from config")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to config file")

	// Add subcommands
	cmd.AddCommand(NewShellCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewCompleteCommand(opts))
	cmd.AddCommand(NewRemoveCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))

	return cmd
}

// resolve loads configuration and applies flag overrides.
// Precedence: flags > TASKER_DB > config file > defaults.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	if o.Format != "" && !isValidFormat(o.Format) {
		err := fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
		fmt.Fprintf(cmd.ErrOrStderr(), "Error [%s]: %v\n", ErrCodeInvalidInput, err)
		return WrapExitError(ExitFailure, "invalid format", err)
	}

	var (
		cfg *config.Config
		err error
	)
	if o.ConfigPath != "" {
		cfg, err = config.LoadFile(o.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error [%s]: failed to load config: %v\n", ErrCodeConfig, err)
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	if o.Database != "" {
		cfg.Database = o.Database
	}
	if o.Format == "" {
		o.Format = cfg.Format
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	o.Config = cfg

	// Configure logging based on config and verbose flag
	level := cfg.SlogLevel()
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.TraceID = newTraceID()
	o.Logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: level,
	})).With("trace_id", o.TraceID)

	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
