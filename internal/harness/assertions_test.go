package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValuesEqual(t *testing.T) {
	tests := []struct {
		name string
		want interface{}
		got  interface{}
		eq   bool
	}{
		{"int vs int64", 3, int64(3), true},
		{"different ints", 3, int64(4), false},
		{"strings", "high", "high", true},
		{"bools", true, false, false},
		{"yaml list vs ids", []interface{}{1, 3, 2}, []interface{}{int64(1), int64(3), int64(2)}, true},
		{"list order matters", []interface{}{1, 2}, []interface{}{int64(2), int64(1)}, false},
		{"list length", []interface{}{1}, []interface{}{int64(1), int64(2)}, false},
		{"int64 slice", []interface{}{1, 2}, []int64{1, 2}, true},
		{"map subset", map[string]interface{}{"id": 1}, map[string]interface{}{"id": int64(1), "x": "y"}, true},
		{"map missing key", map[string]interface{}{"z": 1}, map[string]interface{}{"id": int64(1)}, false},
		{"type mismatch", "1", int64(1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eq, valuesEqual(tt.want, tt.got))
		})
	}
}

func TestAssertionError_Message(t *testing.T) {
	err := &AssertionError{
		Type:     AssertListOrder,
		Expected: "ids [1 2]",
		Actual:   "ids [2 1]",
		Trace: []TraceEvent{
			{Seq: 1, Op: OpList, Outcome: OutcomeOK},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: list_order")
	assert.Contains(t, msg, "Expected: ids [1 2]")
	assert.Contains(t, msg, "Actual: ids [2 1]")
	assert.Contains(t, msg, "[1] list map[] -> ok")
}
