package integration_tests

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/netcli/internal/app"
	"github.com/vk/netcli/internal/cli"
	"github.com/vk/netcli/internal/testutil"
)

// TestCLI_ParsePipeline_EndToEnd drives the whole chain the binary wires
// together: flag parsing, config merge, app construction over the embedded
// packs, and envelope output.
func TestCLI_ParsePipeline_EndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"-platform", "ios", "-command", "show version", "-log-level", "error"}
	deviceOutput := "edge-1 uptime is 1 week, 2 days\nProcessor board ID ABC123\n"
	outW := &bytes.Buffer{}

	// --- Act ---
	config, shouldExit, err := cli.Parse(args, outW)
	require.NoError(t, err)
	require.False(t, shouldExit)

	netcliApp := app.New(strings.NewReader(deviceOutput), outW, io.Discard, config)
	runErr := netcliApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, runErr)

	env := testutil.DecodeEnvelope(t, outW.String())
	require.True(t, env.OK, "envelope: %s", outW.String())
	assert.Equal(t, "cisco_ios", env.Platform)
	assert.Equal(t, "show_version", env.Key)
	require.Len(t, env.Records, 1)
	assert.Equal(t, "edge-1", env.Records[0]["HOSTNAME"])
	assert.Equal(t, "ABC123", env.Records[0]["SERIAL"])
}

// TestCLI_ParsePipeline_FailureEnvelopeExitsClean verifies the contract
// that a failed parse is still a successful invocation: the envelope
// carries the error and Run returns nil.
func TestCLI_ParsePipeline_FailureEnvelopeExitsClean(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"-platform", "ios", "-key", "show_running_config", "-log-level", "error"}
	outW := &bytes.Buffer{}

	config, shouldExit, err := cli.Parse(args, outW)
	require.NoError(t, err)
	require.False(t, shouldExit)

	// --- Act ---
	netcliApp := app.New(strings.NewReader("hostname edge-1\n"), outW, io.Discard, config)
	runErr := netcliApp.Run(context.Background())

	// --- Assert ---
	require.NoError(t, runErr, "an error envelope is a result, not a failure")

	env := testutil.DecodeEnvelope(t, outW.String())
	require.False(t, env.OK)
	require.NotNil(t, env.Error)
	assert.Equal(t, "TEMPLATE_NOT_FOUND", env.Error.Code)
}
