package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertStatusCode checks the response code.
func AssertStatusCode(t *testing.T, s *Scenario, got int) {
	t.Helper()
	assert.Equal(t, s.ExpectedCode, got, "[%s] HTTP status code mismatch", s.Name)
}

// AssertJSONBody compares actual against expected after decoding both, so
// key order and whitespace never matter. An empty expected body skips the
// check.
func AssertJSONBody(t *testing.T, s *Scenario, expected, actual []byte) {
	t.Helper()
	if len(expected) == 0 {
		return
	}

	var want, got any
	require.NoError(t, json.Unmarshal(expected, &want),
		"[%s] expected body is not valid JSON", s.Name)
	if !assert.NoError(t, json.Unmarshal(actual, &got),
		"[%s] response is not valid JSON\nbody: %s", s.Name, string(actual)) {
		return
	}
	assert.Equal(t, want, got, "[%s] response body mismatch", s.Name)
}
