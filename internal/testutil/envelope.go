package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope mirrors the wire shape of parse results for test assertions.
// Registry entry points fill Platform; the direct-template entry fills
// Vendor.
type Envelope struct {
	OK       bool             `json:"ok"`
	Platform string           `json:"platform"`
	Vendor   string           `json:"vendor"`
	Key      string           `json:"commandKey"`
	Records  []map[string]any `json:"records"`
	Error    *EnvelopeError   `json:"error"`
}

// EnvelopeError is the error object of a failure envelope.
type EnvelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeEnvelope unmarshals an envelope string, failing the test on
// malformed JSON.
func DecodeEnvelope(t *testing.T, raw string) Envelope {
	t.Helper()

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env), "envelope is not valid JSON: %s", raw)
	return env
}
