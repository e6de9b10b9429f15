package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/tasker/internal/config"
	"github.com/roach88/tasker/internal/testutil"
)

// testNow is the frozen wall clock used by CLI tests.
var testNow = time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

// isolateEnv points config and data directories at temp dirs so tests never
// read the developer's real configuration.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv(config.EnvDatabase, "")
}

// cliResult captures one command execution.
type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the root command with args and stdin against a fixed clock.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	clock := testutil.NewFixedClock(testNow)
	cmd := newRootCommand(&RootOptions{Now: clock.Now})

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cliResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// newTestDB returns a fresh database path in a temp directory.
func newTestDB(t *testing.T) string {
	t.Helper()
	isolateEnv(t)
	return filepath.Join(t.TempDir(), "tasks.db")
}

// assertGolden compares got against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/cli -update
func assertGolden(t *testing.T, name string, got string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(got))
}
