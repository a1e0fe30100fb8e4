package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/netcli/internal/testutil"
)

func TestTemplateJSONSuccessEnvelope(t *testing.T) {
	t.Parallel()

	got := TemplateJSON(testutil.Context(), "lab-router", "show version", versionTemplate, versionOutput)

	// The direct entry carries a vendor field instead of platform, with the
	// same slug canonicalization as the registry entry points.
	assert.Equal(t,
		`{"ok":true,"vendor":"lab_router","commandKey":"show_version","records":[{"VERSION":"17.3","HOSTNAME":"edge-1"}]}`,
		got)
}

func TestTemplateJSONFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		vendor      string
		key         string
		source      string
		output      string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "empty vendor",
			key:         "show_version",
			source:      versionTemplate,
			output:      versionOutput,
			wantCode:    "INVALID_INPUT",
			wantMessage: "required input is empty: vendor",
		},
		{
			name:        "empty key",
			vendor:      "cisco_ios",
			source:      versionTemplate,
			output:      versionOutput,
			wantCode:    "INVALID_INPUT",
			wantMessage: "required input is empty: command_key",
		},
		{
			name:        "empty template",
			vendor:      "cisco_ios",
			key:         "show_version",
			output:      versionOutput,
			wantCode:    "INVALID_INPUT",
			wantMessage: "required input is empty: template_text",
		},
		{
			name:        "empty output",
			vendor:      "cisco_ios",
			key:         "show_version",
			source:      versionTemplate,
			wantCode:    "INVALID_INPUT",
			wantMessage: "required input is empty: output_text",
		},
		{
			name:     "template does not compile",
			vendor:   "cisco_ios",
			key:      "show_version",
			source:   brokenTemplate,
			output:   versionOutput,
			wantCode: "TEMPLATE_COMPILE_ERROR",
		},
		{
			name:        "error action fires",
			vendor:      "cisco_ios",
			key:         "show_lldp_neighbors",
			source:      strictTemplate,
			output:      "garbage\n",
			wantCode:    "EXECUTION_ERROR",
			wantMessage: "unparseable line",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			env := testutil.DecodeEnvelope(t, TemplateJSON(testutil.Context(), tc.vendor, tc.key, tc.source, tc.output))

			require.False(t, env.OK)
			require.NotNil(t, env.Error)
			assert.Equal(t, tc.wantCode, env.Error.Code)
			if tc.wantMessage != "" {
				assert.Equal(t, tc.wantMessage, env.Error.Message)
			}
		})
	}
}
