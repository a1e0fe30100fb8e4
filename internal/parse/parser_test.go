package parse

import (
	"sync"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/netcli/internal/metric"
	"github.com/vk/netcli/internal/registry"
	"github.com/vk/netcli/internal/testutil"
)

const versionTemplate = `Value VERSION (\S+)
Value HOSTNAME (\S+)

Start
 ^Version: ${VERSION}
 ^Host: ${HOSTNAME} -> Record
`

const strictTemplate = `Value NAME (\S+)

Start
 ^ok ${NAME} -> Record
 ^garbage -> Error "unparseable line"
`

const brokenTemplate = `Value SLOT (\d+

Start
 ^${SLOT}
`

const versionOutput = "Version: 17.3\nHost: edge-1\n"

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	return testutil.Registry(t, map[string]string{
		"templates/cisco_ios/pack.hcl": `pack "cisco_ios" {
  aliases = ["classic-ios"]

  template "show_version" {
    file    = "show_version.textfsm"
    command = "show version"
  }
  template "show_lldp_neighbors" {
    file = "show_lldp_neighbors.textfsm"
  }
  template "show_inventory" {
    file = "show_inventory.textfsm"
  }
}
`,
		"templates/cisco_ios/show_version.textfsm":        versionTemplate,
		"templates/cisco_ios/show_lldp_neighbors.textfsm": strictTemplate,
		"templates/cisco_ios/show_inventory.textfsm":      brokenTemplate,
	})
}

func TestJSONSuccessEnvelope(t *testing.T) {
	t.Parallel()

	p := New(testRegistry(t))
	got := p.JSON(testutil.Context(), "cisco_ios", "show_version", versionOutput)

	assert.Equal(t,
		`{"ok":true,"platform":"cisco_ios","commandKey":"show_version","records":[{"VERSION":"17.3","HOSTNAME":"edge-1"}]}`,
		got)
}

func TestJSONCarriesResolvedSlugs(t *testing.T) {
	t.Parallel()

	p := New(testRegistry(t))

	// Built-in alias, mixed case, and a pack alias all resolve to the same
	// canonical pair in the envelope.
	for _, raw := range []string{"IOS", "Cisco-IOS", "classic-ios"} {
		env := testutil.DecodeEnvelope(t, p.JSON(testutil.Context(), raw, "show_version", versionOutput))
		require.True(t, env.OK, "platform %q", raw)
		assert.Equal(t, "cisco_ios", env.Platform)
		assert.Equal(t, "show_version", env.Key)
	}
}

func TestCommandJSONMatchesKeyResolution(t *testing.T) {
	t.Parallel()

	p := New(testRegistry(t))
	ctx := testutil.Context()

	byKey := p.JSON(ctx, "cisco_ios", "show_version", versionOutput)
	byCommand := p.CommandJSON(ctx, "cisco_ios", "  Show   Version  ", versionOutput)

	assert.Equal(t, byKey, byCommand)
}

func TestRecordsTypedResult(t *testing.T) {
	t.Parallel()

	p := New(testRegistry(t))
	result, err := p.Records(testutil.Context(), "ios", "show version", versionOutput)

	require.NoError(t, err)
	assert.Equal(t, "cisco_ios", result.Platform)
	assert.Equal(t, "show_version", result.Key)
	require.Len(t, result.Records, 1)
	version, ok := result.Records[0].Get("VERSION")
	require.True(t, ok)
	assert.Equal(t, "17.3", version)
}

func TestJSONZeroRecordsIsEmptyArray(t *testing.T) {
	t.Parallel()

	p := New(testRegistry(t))
	got := p.JSON(testutil.Context(), "cisco_ios", "show_version", "nothing relevant here\n")

	assert.Equal(t,
		`{"ok":true,"platform":"cisco_ios","commandKey":"show_version","records":[]}`,
		got)
}

func TestJSONFailureEnvelopes(t *testing.T) {
	t.Parallel()

	p := New(testRegistry(t))

	testCases := []struct {
		name        string
		platform    string
		command     string
		output      string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "empty platform",
			platform:    "",
			command:     "show_version",
			output:      versionOutput,
			wantCode:    "INVALID_INPUT",
			wantMessage: "required input is empty: platform",
		},
		{
			name:        "empty command",
			platform:    "cisco_ios",
			command:     "   ",
			output:      versionOutput,
			wantCode:    "INVALID_INPUT",
			wantMessage: "required input is empty: command_key",
		},
		{
			name:        "empty output",
			platform:    "cisco_ios",
			command:     "show_version",
			output:      "",
			wantCode:    "INVALID_INPUT",
			wantMessage: "required input is empty: output_text",
		},
		{
			name:        "blank output",
			platform:    "cisco_ios",
			command:     "show_version",
			output:      " \n\t\n",
			wantCode:    "INVALID_INPUT",
			wantMessage: "required input is empty: output_text",
		},
		{
			name:     "malformed platform",
			platform: "ci$co",
			command:  "show_version",
			output:   versionOutput,
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "malformed command",
			platform: "cisco_ios",
			command:  "show version | include uptime",
			output:   versionOutput,
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "invalid utf-8 output",
			platform: "cisco_ios",
			command:  "show_version",
			output:   "Version: \xff\xfe\n",
			wantCode: "INVALID_INPUT",
		},
		{
			name:     "unknown well-formed platform",
			platform: "zte_zxros_v2",
			command:  "show_version",
			output:   versionOutput,
			wantCode: "TEMPLATE_NOT_FOUND",
		},
		{
			name:     "unknown command key",
			platform: "cisco_ios",
			command:  "show_environment",
			output:   versionOutput,
			wantCode: "TEMPLATE_NOT_FOUND",
		},
		{
			name:     "template fails to compile",
			platform: "cisco_ios",
			command:  "show_inventory",
			output:   versionOutput,
			wantCode: "TEMPLATE_COMPILE_ERROR",
		},
		{
			name:        "template error action fires",
			platform:    "cisco_ios",
			command:     "show_lldp_neighbors",
			output:      "garbage\n",
			wantCode:    "EXECUTION_ERROR",
			wantMessage: "unparseable line",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := testutil.DecodeEnvelope(t, p.JSON(testutil.Context(), tc.platform, tc.command, tc.output))

			require.False(t, env.OK)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.wantCode, env.Error.Code)
			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, env.Error.Message)
			}
			assert.Empty(t, env.Records)
		})
	}
}

func TestJSONRecoversPanicsAsInternalError(t *testing.T) {
	t.Parallel()

	// A parser with no registry panics on resolution; the facade converts
	// that into an envelope instead of crashing the caller.
	p := New(nil)
	env := testutil.DecodeEnvelope(t, p.JSON(testutil.Context(), "cisco_ios", "show_version", versionOutput))

	require.False(t, env.OK)
	assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
}

func TestWithCanonicalFields(t *testing.T) {
	t.Parallel()

	p := New(testRegistry(t), WithCanonicalFields())
	got := p.JSON(testutil.Context(), "cisco_ios", "show_version", versionOutput)

	assert.Equal(t,
		`{"ok":true,"platform":"cisco_ios","commandKey":"show_version","records":[{"software_version":"17.3","hostname":"edge-1"}]}`,
		got)
}

func TestWithMetrics(t *testing.T) {
	t.Parallel()

	m := metric.New()
	p := New(testRegistry(t), WithMetrics(m))
	ctx := testutil.Context()

	p.JSON(ctx, "cisco_ios", "show_version", versionOutput)
	p.JSON(ctx, "cisco_ios", "show_version", versionOutput)
	p.JSON(ctx, "arista_eos", "show_version", versionOutput)

	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.ParseRequests.WithLabelValues("cisco_ios", "show_version", "ok")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.ParseRequests.WithLabelValues("unresolved", "unresolved", "template_not_found")))
	assert.Equal(t, 2.0, promtestutil.ToFloat64(m.ParseRecords.WithLabelValues("cisco_ios", "show_version")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.TemplateCompiles.WithLabelValues("ok")))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.TemplateCacheHits))
}

func TestJSONConcurrentUse(t *testing.T) {
	t.Parallel()

	p := New(testRegistry(t))
	ctx := testutil.Context()
	want := p.JSON(ctx, "cisco_ios", "show_version", versionOutput)

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = p.JSON(ctx, "cisco_ios", "show_version", versionOutput)
		}()
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
