package harness

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/roach88/tasker/internal/store"
	"github.com/roach88/tasker/internal/task"
)

// AssertionContext provides what assertions need to inspect final state.
type AssertionContext struct {
	Store *store.Store
	Ctx   context.Context
	Now   time.Time
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %v -> %s\n", event.Seq, event.Op, event.Args, event.Outcome)
		}
	}

	return buf.String()
}

// EvaluateAssertions runs every assertion and returns failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluateAssertion(result.Trace, a, actx); err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

func evaluateAssertion(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	switch a.Type {
	case AssertListOrder:
		return assertListOrder(trace, a, actx)
	case AssertTaskCount:
		return assertTaskCount(trace, a, actx)
	case AssertFinalState:
		return assertFinalState(trace, a, actx)
	case AssertAbsent:
		return assertAbsent(trace, a, actx)
	case AssertStats:
		return assertStats(trace, a, actx)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertListOrder checks that listing returns exactly the expected ids in order.
func assertListOrder(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	tasks, err := actx.Store.ListTasks(actx.Ctx)
	if err != nil {
		return err
	}

	got := make([]int64, len(tasks))
	for i, t := range tasks {
		got[i] = t.ID
	}
	if !reflect.DeepEqual(got, a.IDs) && !(len(got) == 0 && len(a.IDs) == 0) {
		return &AssertionError{
			Type:     AssertListOrder,
			Expected: fmt.Sprintf("ids %v", a.IDs),
			Actual:   fmt.Sprintf("ids %v", got),
			Trace:    trace,
		}
	}
	return nil
}

// assertTaskCount checks the number of stored tasks.
func assertTaskCount(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	tasks, err := actx.Store.ListTasks(actx.Ctx)
	if err != nil {
		return err
	}
	if len(tasks) != a.Count {
		return &AssertionError{
			Type:     AssertTaskCount,
			Expected: fmt.Sprintf("%d tasks", a.Count),
			Actual:   fmt.Sprintf("%d tasks", len(tasks)),
			Trace:    trace,
		}
	}
	return nil
}

// assertFinalState checks the stored fields of one task (subset semantics).
func assertFinalState(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	t, err := actx.Store.GetTask(actx.Ctx, a.ID)
	if errors.Is(err, task.ErrTaskNotFound) {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: fmt.Sprintf("task %d", a.ID),
			Actual:   "task not found",
			Trace:    trace,
		}
	}
	if err != nil {
		return err
	}

	actual := taskFields(t, actx.Now)
	for key, want := range a.Expect {
		got, ok := actual[key]
		if !ok {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("field %q to exist", key),
				Actual:   fmt.Sprintf("task fields: %v", sortedKeys(actual)),
			}
		}
		if !valuesEqual(want, got) {
			return &AssertionError{
				Type:     AssertFinalState,
				Expected: fmt.Sprintf("task %d field %q = %v", a.ID, key, want),
				Actual:   fmt.Sprintf("task %d field %q = %v", a.ID, key, got),
				Trace:    trace,
			}
		}
	}
	return nil
}

// assertAbsent checks that a task no longer exists.
func assertAbsent(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	_, err := actx.Store.GetTask(actx.Ctx, a.ID)
	if errors.Is(err, task.ErrTaskNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return &AssertionError{
		Type:     AssertAbsent,
		Expected: fmt.Sprintf("task %d to be absent", a.ID),
		Actual:   "task exists",
		Trace:    trace,
	}
}

// assertStats checks store statistics at the scenario clock (subset semantics).
func assertStats(trace []TraceEvent, a Assertion, actx *AssertionContext) error {
	stats, err := actx.Store.Stats(actx.Ctx, actx.Now)
	if err != nil {
		return err
	}
	actual := statsResult(stats)
	for key, want := range a.Expect {
		got, ok := actual[key]
		if !ok || !valuesEqual(want, got) {
			return &AssertionError{
				Type:     AssertStats,
				Expected: fmt.Sprintf("%s = %v", key, want),
				Actual:   fmt.Sprintf("%s = %v", key, got),
				Trace:    trace,
			}
		}
	}
	return nil
}

// taskFields flattens a task into comparable fields.
func taskFields(t task.Task, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"id":          t.ID,
		"description": t.Description,
		"priority":    t.Priority,
		"due_date":    task.FormatDueDate(t.DueDate),
		"completed":   t.Completed,
		"status":      t.Status(),
		"overdue":     t.Overdue(now),
	}
}

func listResult(tasks []task.Task, now time.Time) map[string]interface{} {
	ids := make([]interface{}, len(tasks))
	rows := make([]interface{}, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
		rows[i] = taskFields(t, now)
	}
	return map[string]interface{}{"ids": ids, "tasks": rows}
}

func statsResult(s task.Stats) map[string]interface{} {
	return map[string]interface{}{
		"total":     int64(s.Total),
		"pending":   int64(s.Pending),
		"completed": int64(s.Completed),
		"overdue":   int64(s.Overdue),
	}
}

// valuesEqual compares a YAML-decoded expectation with an actual value.
// Integers compare by value regardless of width; maps use subset semantics.
func valuesEqual(want, got interface{}) bool {
	want, got = normalize(want), normalize(got)

	if wm, ok := want.(map[string]interface{}); ok {
		gm, ok := got.(map[string]interface{})
		if !ok {
			return false
		}
		for k, wv := range wm {
			gv, ok := gm[k]
			if !ok || !valuesEqual(wv, gv) {
				return false
			}
		}
		return true
	}

	if ws, ok := want.([]interface{}); ok {
		gs, ok := got.([]interface{})
		if !ok || len(ws) != len(gs) {
			return false
		}
		for i := range ws {
			if !valuesEqual(ws[i], gs[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(want, got)
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int32:
		return int64(val)
	case uint64:
		return int64(val)
	case []int64:
		out := make([]interface{}, len(val))
		for i, n := range val {
			out[i] = n
		}
		return out
	default:
		return v
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
