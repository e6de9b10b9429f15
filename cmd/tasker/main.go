// Command tasker is a personal task tracker backed by a local SQLite database.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/tasker/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// Commands report their own errors; anything else (bad flags,
		// unknown subcommand) is printed here.
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
