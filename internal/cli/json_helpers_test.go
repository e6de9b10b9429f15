package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// jsonResponse mirrors CLIResponse with a raw payload for typed decoding.
type jsonResponse struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Error   *CLIError       `json:"error"`
	TraceID string          `json:"trace_id"`
}

func decodeResponse(t *testing.T, out string) jsonResponse {
	t.Helper()
	var resp jsonResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "stdout: %s", out)
	return resp
}

func decodeData(t *testing.T, resp jsonResponse, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, v), "data: %s", resp.Data)
}
