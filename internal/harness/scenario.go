package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/tasker/internal/task"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Now is the scenario wall clock in YYYY-MM-DD HH:MM.
	// Defaults to DefaultNow.
	Now string `yaml:"now,omitempty"`

	// Priorities, when set, restricts add to these priorities
	// (case-insensitive), as strict_priorities does for the CLI.
	Priorities []string `yaml:"priorities,omitempty"`

	// Setup seeds tasks before the flow. Setup steps must succeed.
	Setup []SeedStep `yaml:"setup,omitempty"`

	// Flow contains the operations under test.
	Flow []FlowStep `yaml:"flow"`

	// Assertions validate the final state.
	Assertions []Assertion `yaml:"assertions"`
}

// DefaultNow is the scenario clock when Scenario.Now is empty.
const DefaultNow = "2024-01-01 00:00"

// SeedStep is a task inserted during setup.
type SeedStep struct {
	Description string `yaml:"description"`
	Priority    string `yaml:"priority"`
	Due         string `yaml:"due,omitempty"`
	Completed   bool   `yaml:"completed,omitempty"`
}

// FlowStep is one operation in the flow.
type FlowStep struct {
	// Op is the operation name (see the Op constants).
	Op string `yaml:"op"`

	// Args holds the operation arguments.
	Args map[string]interface{} `yaml:"args,omitempty"`

	// Expect specifies the expected outcome.
	// If nil, the step must succeed and its result is not checked.
	Expect *ExpectClause `yaml:"expect,omitempty"`
}

// ExpectClause specifies expected step behavior.
type ExpectClause struct {
	// Error is the expected error kind (e.g. "invalid_due_date").
	// Empty means the step must succeed.
	Error string `yaml:"error,omitempty"`

	// Result contains expected result fields (subset match).
	Result map[string]interface{} `yaml:"result,omitempty"`
}

// Assertion validates final state.
type Assertion struct {
	// Type is one of the Assert constants.
	Type string `yaml:"type"`

	// ID selects the task (final_state, absent).
	ID int64 `yaml:"id,omitempty"`

	// IDs is the expected listing order (list_order).
	IDs []int64 `yaml:"ids,omitempty"`

	// Count is the expected number of stored tasks (task_count).
	Count int `yaml:"count,omitempty"`

	// Expect contains expected field values (final_state, stats).
	Expect map[string]interface{} `yaml:"expect,omitempty"`
}

// Operation names.
const (
	OpAdd        = "add"
	OpList       = "list"
	OpComplete   = "complete"
	OpRemove     = "remove"
	OpStats      = "stats"
	OpShutdown   = "shutdown"
	OpInitialize = "initialize"
	OpAdvance    = "advance"
)

// Assertion type constants.
const (
	AssertListOrder  = "list_order"
	AssertTaskCount  = "task_count"
	AssertFinalState = "final_state"
	AssertAbsent     = "absent"
	AssertStats      = "stats"
)

// Error kinds reported in traces and matched by ExpectClause.Error.
const (
	KindInvalidDueDate   = "invalid_due_date"
	KindStoreUnavailable = "store_unavailable"
	KindEmptyDescription = "empty_description"
	KindEmptyPriority    = "empty_priority"
	KindUnknownPriority  = "unknown_priority"
	KindNotFound         = "not_found"
	KindOther            = "error"
)

var knownKinds = map[string]bool{
	KindInvalidDueDate:   true,
	KindStoreUnavailable: true,
	KindEmptyDescription: true,
	KindEmptyPriority:    true,
	KindUnknownPriority:  true,
	KindNotFound:         true,
	KindOther:            true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Now != "" {
		if _, err := task.ParseDueDate(s.Now); err != nil {
			return fmt.Errorf("now: %w", err)
		}
	}

	for i, p := range s.Priorities {
		if task.NormalizeText(p) == "" {
			return fmt.Errorf("priorities[%d]: must be non-empty", i)
		}
	}

	if len(s.Flow) == 0 {
		return fmt.Errorf("flow list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Setup {
		if step.Description == "" {
			return fmt.Errorf("setup[%d]: description is required", i)
		}
		if step.Priority == "" {
			return fmt.Errorf("setup[%d]: priority is required", i)
		}
	}

	for i, step := range s.Flow {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single flow step based on its operation.
func validateStep(index int, step *FlowStep) error {
	switch step.Op {
	case "":
		return fmt.Errorf("flow[%d]: op is required", index)
	case OpAdd, OpList, OpStats, OpShutdown, OpInitialize:
	case OpComplete, OpRemove:
		if _, ok := step.Args["id"]; !ok {
			return fmt.Errorf("flow[%d]: %s requires args.id", index, step.Op)
		}
	case OpAdvance:
		if _, ok := step.Args["minutes"]; !ok {
			return fmt.Errorf("flow[%d]: advance requires args.minutes", index)
		}
	default:
		return fmt.Errorf("flow[%d]: unknown op %q", index, step.Op)
	}

	if step.Expect != nil && step.Expect.Error != "" {
		if !knownKinds[step.Expect.Error] {
			return fmt.Errorf("flow[%d].expect: unknown error kind %q", index, step.Expect.Error)
		}
		if step.Expect.Result != nil {
			return fmt.Errorf("flow[%d].expect: error and result are mutually exclusive", index)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertListOrder:
		if a.IDs == nil {
			return fmt.Errorf("assertions[%d]: list_order requires ids (use [] for none)", index)
		}
	case AssertTaskCount:
	case AssertFinalState:
		if a.ID <= 0 {
			return fmt.Errorf("assertions[%d]: final_state requires id", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: final_state requires expect", index)
		}
	case AssertAbsent:
		if a.ID <= 0 {
			return fmt.Errorf("assertions[%d]: absent requires id", index)
		}
	case AssertStats:
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: stats requires expect", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown type %q", index, a.Type)
	}
	return nil
}
