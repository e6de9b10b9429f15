// Package harness runs conformance scenarios against the task store.
//
// A scenario drives a fresh on-disk store through a flow of operations,
// checks each outcome against its expect clause, and then evaluates
// assertions on the final state. Every run records a trace that can be
// compared against a golden file.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	now: "2024-01-01 00:00"
//	priorities: [high, medium, low]   # optional; add rejects others
//	setup:
//	  - description: Water plants
//	    priority: low
//	    due: "2024-01-02 08:00"
//	    completed: false
//	flow:
//	  - op: add
//	    args: { description: Pay rent, priority: high, due: "2024-01-05 09:00" }
//	    expect:
//	      result: { id: 2 }
//	  - op: add
//	    args: { description: Bad, priority: high, due: "15/03/2024" }
//	    expect:
//	      error: invalid_due_date
//	assertions:
//	  - type: list_order
//	    ids: [1, 2]
//	  - type: final_state
//	    id: 2
//	    expect: { completed: false }
//
// # Operations
//
//   - add: create a task (args: description, priority, due)
//   - list: list all tasks; result has ids and tasks
//   - complete, remove: act on args.id
//   - stats: count tasks at the scenario clock
//   - shutdown: close the store; later operations fail with store_unavailable
//   - initialize: reopen the store from disk
//   - advance: move the scenario clock forward by args.minutes
//
// # Assertion Types
//
//   - list_order: listed ids equal ids, in order
//   - task_count: exactly count tasks are stored
//   - final_state: task id exists and matches expect (subset match)
//   - absent: task id does not exist
//   - stats: store statistics match expect (subset match)
//
// # Deterministic Testing
//
// The scenario clock is a testutil.FixedClock set from the now field, so
// overdue flags and statistics are reproducible across runs.
package harness
