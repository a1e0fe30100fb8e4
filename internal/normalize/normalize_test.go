package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/netcli/internal/command"
	"github.com/vk/netcli/internal/textfsm"
)

const versionTemplate = `Value VERSION (\S+)
Value Hostname (\S+)
Value CHASSIS (\S+)

Start
 ^version ${VERSION}
 ^host ${Hostname}
 ^chassis ${CHASSIS} -> Record
`

func parseRecords(t *testing.T, source, input string) []textfsm.Record {
	t.Helper()

	tmpl, err := textfsm.Compile(source)
	require.NoError(t, err)
	records, err := tmpl.Run(input)
	require.NoError(t, err)
	return records
}

func recordsJSON(t *testing.T, records []textfsm.Record) string {
	t.Helper()

	data, err := json.Marshal(records)
	require.NoError(t, err)
	return string(data)
}

func TestApplyRenamesKnownFields(t *testing.T) {
	t.Parallel()

	records := parseRecords(t, versionTemplate, "version 17.3.5\nhost edge-1\nchassis C9300\n")
	normalized := Apply(command.ShowVersion, records)

	// VERSION maps directly, Hostname maps case-insensitively, CHASSIS has
	// no row in the table and keeps its declared name. Field order holds.
	assert.Equal(t,
		`[{"software_version":"17.3.5","hostname":"edge-1","CHASSIS":"C9300"}]`,
		recordsJSON(t, normalized))

	// The input records are left untouched.
	assert.Equal(t,
		`[{"VERSION":"17.3.5","Hostname":"edge-1","CHASSIS":"C9300"}]`,
		recordsJSON(t, records))
}

func TestApplyUnknownKeyPassesThrough(t *testing.T) {
	t.Parallel()

	records := parseRecords(t, versionTemplate, "version 17.3.5\nhost edge-1\nchassis C9300\n")
	normalized := Apply("show_environment", records)

	assert.Equal(t, recordsJSON(t, records), recordsJSON(t, normalized))
}

func TestApplyPreservesRecordOrder(t *testing.T) {
	t.Parallel()

	const routeTemplate = `Value PREFIX (\S+)

Start
 ^route ${PREFIX} -> Record
`
	records := parseRecords(t, routeTemplate, "route 10.0.0.0/8\nroute 192.168.1.0/24\n")
	normalized := Apply(command.ShowIPRoute, records)

	assert.Equal(t,
		`[{"prefix":"10.0.0.0/8"},{"prefix":"192.168.1.0/24"}]`,
		recordsJSON(t, normalized))
}
