package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/tasker/internal/store"
	"github.com/roach88/tasker/internal/task"
	"github.com/roach88/tasker/internal/testutil"
)

// Harness executes one scenario against its own store.
type Harness struct {
	path       string
	store      *store.Store // nil after shutdown
	priorities []string
	clock  *testutil.FixedClock
	logger *slog.Logger
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh database in a temporary directory,
// which is removed when Run returns. The returned error reports harness
// failures (bad setup, unusable arguments); expectation and assertion
// failures are recorded in Result.Errors instead.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	dir, err := os.MkdirTemp("", "tasker-scenario-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create scenario directory: %w", err)
	}
	defer os.RemoveAll(dir)

	nowText := scenario.Now
	if nowText == "" {
		nowText = DefaultNow
	}
	wall, err := task.ParseDueDate(nowText)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario clock: %w", err)
	}
	// The scenario clock reads now on the local wall clock.
	now := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), 0, 0, time.Local)

	h := &Harness{
		path:       filepath.Join(dir, "tasks.db"),
		priorities: scenario.Priorities,
		clock:      testutil.NewFixedClock(now),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}
	if err := h.open(); err != nil {
		return nil, err
	}
	defer h.close()

	result := NewResult()
	if err := h.executeSetup(ctx, scenario.Setup); err != nil {
		return nil, fmt.Errorf("failed to execute setup: %w", err)
	}

	if err := h.executeFlow(ctx, scenario.Flow, result); err != nil {
		return nil, fmt.Errorf("failed to execute flow: %w", err)
	}

	// Assertions always read from disk, even after a shutdown step.
	if h.store == nil {
		if err := h.open(); err != nil {
			return nil, err
		}
	}
	actx := &AssertionContext{
		Store: h.store,
		Ctx:   ctx,
		Now:   h.clock.Now(),
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

func (h *Harness) open() error {
	st, err := store.Open(h.path)
	if err != nil {
		return fmt.Errorf("failed to open scenario store: %w", err)
	}
	h.store = st
	return nil
}

func (h *Harness) close() {
	if h.store == nil {
		return
	}
	if err := h.store.Close(); err != nil {
		h.logger.Error("error closing scenario store", "error", err)
	}
	h.store = nil
}

// executeSetup seeds tasks. Any failure aborts the run.
func (h *Harness) executeSetup(ctx context.Context, setup []SeedStep) error {
	for i, step := range setup {
		id, err := h.store.CreateTask(ctx, step.Description, step.Priority, step.Due)
		if err != nil {
			return fmt.Errorf("setup step %d: %w", i, err)
		}
		if step.Completed {
			if err := h.store.CompleteTask(ctx, id); err != nil {
				return fmt.Errorf("setup step %d: %w", i, err)
			}
		}
		h.logger.Info("setup step completed", "step", i, "id", id)
	}
	return nil
}

// executeFlow runs every flow step, records it in the trace, and checks its
// expect clause.
func (h *Harness) executeFlow(ctx context.Context, flow []FlowStep, result *Result) error {
	for i, step := range flow {
		out, err := h.execute(ctx, step)
		if errors.Is(err, errBadArgs) {
			return fmt.Errorf("flow step %d: %w", i, err)
		}

		event := TraceEvent{
			Seq:     int64(i + 1),
			Op:      step.Op,
			Args:    step.Args,
			Outcome: OutcomeOK,
			Result:  out,
		}
		if err != nil {
			event.Outcome = errorKind(err)
			event.Result = nil
		}
		result.AddTrace(event)

		if msg := checkExpect(i, step, event, err); msg != "" {
			result.AddError(msg)
		}

		h.logger.Info("flow step completed",
			"step", i,
			"op", step.Op,
			"outcome", event.Outcome,
		)
	}
	return nil
}

// errBadArgs marks a step whose arguments cannot be used at all.
var errBadArgs = errors.New("bad step arguments")

// execute performs one operation and returns its result fields.
func (h *Harness) execute(ctx context.Context, step FlowStep) (map[string]interface{}, error) {
	st := h.store
	if st == nil {
		// A closed store behaves like any other closed store.
		st = closedStore()
	}

	switch step.Op {
	case OpAdd:
		if err := h.checkPriority(stringArg(step.Args, "priority")); err != nil {
			return nil, err
		}
		id, err := st.CreateTask(ctx,
			stringArg(step.Args, "description"),
			stringArg(step.Args, "priority"),
			stringArg(step.Args, "due"),
		)
		if err != nil {
			return nil, err
		}
		return map[string]interface{}{"id": id}, nil

	case OpList:
		tasks, err := st.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		return listResult(tasks, h.clock.Now()), nil

	case OpComplete, OpRemove:
		id, err := intArg(step.Args, "id")
		if err != nil {
			return nil, err
		}
		if step.Op == OpComplete {
			err = st.CompleteTask(ctx, id)
		} else {
			err = st.RemoveTask(ctx, id)
		}
		return nil, err

	case OpStats:
		stats, err := st.Stats(ctx, h.clock.Now())
		if err != nil {
			return nil, err
		}
		return statsResult(stats), nil

	case OpShutdown:
		if h.store == nil {
			return nil, nil
		}
		err := h.store.Close()
		h.store = nil
		return nil, err

	case OpInitialize:
		h.close()
		return nil, h.open()

	case OpAdvance:
		minutes, err := intArg(step.Args, "minutes")
		if err != nil {
			return nil, err
		}
		h.clock.Advance(time.Duration(minutes) * time.Minute)
		return nil, nil

	default:
		return nil, fmt.Errorf("%w: unknown op %q", errBadArgs, step.Op)
	}
}

// checkPriority rejects priorities outside the scenario's allowed set.
// Blank priorities are left for the store to reject.
func (h *Harness) checkPriority(priority string) error {
	if len(h.priorities) == 0 || task.NormalizeText(priority) == "" {
		return nil
	}
	if !task.IsKnownPriority(priority, h.priorities) {
		return fmt.Errorf("%w %q", task.ErrUnknownPriority, task.NormalizeText(priority))
	}
	return nil
}

// closedStore returns a store that has already been shut down.
func closedStore() *store.Store {
	return &store.Store{}
}

// errorKind maps a store error to its trace name.
func errorKind(err error) string {
	switch {
	case errors.Is(err, task.ErrInvalidDueDate):
		return KindInvalidDueDate
	case errors.Is(err, task.ErrEmptyDescription):
		return KindEmptyDescription
	case errors.Is(err, task.ErrEmptyPriority):
		return KindEmptyPriority
	case errors.Is(err, task.ErrUnknownPriority):
		return KindUnknownPriority
	case errors.Is(err, task.ErrTaskNotFound):
		return KindNotFound
	case errors.Is(err, task.ErrStoreUnavailable):
		return KindStoreUnavailable
	default:
		return KindOther
	}
}

// checkExpect compares a traced step with its expect clause.
// Returns "" when the step behaved as expected.
func checkExpect(index int, step FlowStep, event TraceEvent, err error) string {
	wantOutcome := OutcomeOK
	if step.Expect != nil && step.Expect.Error != "" {
		wantOutcome = step.Expect.Error
	}
	if event.Outcome != wantOutcome {
		msg := fmt.Sprintf("flow[%d] %s: expected outcome %s, got %s", index, step.Op, wantOutcome, event.Outcome)
		if err != nil {
			msg += fmt.Sprintf(" (%v)", err)
		}
		return msg
	}

	if step.Expect == nil || step.Expect.Result == nil {
		return ""
	}
	for key, want := range step.Expect.Result {
		got, ok := event.Result[key]
		if !ok {
			return fmt.Sprintf("flow[%d] %s: result field %q not present", index, step.Op, key)
		}
		if !valuesEqual(want, got) {
			return fmt.Sprintf("flow[%d] %s: result field %q = %v, expected %v", index, step.Op, key, got, want)
		}
	}
	return ""
}

func stringArg(args map[string]interface{}, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func intArg(args map[string]interface{}, key string) (int64, error) {
	switch v := args[key].(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", errBadArgs, key, args[key])
	}
}
