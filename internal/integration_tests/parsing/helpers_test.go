package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/netcli/internal/parse"
	"github.com/vk/netcli/internal/registry"
	"github.com/vk/netcli/internal/testutil"
	"github.com/vk/netcli/templates"
)

// embeddedRegistry loads the builtin template packs, the same set the
// application ships with.
func embeddedRegistry(t *testing.T) *registry.Registry {
	t.Helper()

	reg := registry.New()
	require.NoError(t, reg.LoadFS(testutil.Context(), templates.FS, "."))
	return reg
}

// embeddedParser is a parser over the builtin packs.
func embeddedParser(t *testing.T) *parse.Parser {
	t.Helper()

	return parse.New(embeddedRegistry(t))
}

// embeddedCanonicalParser is the same parser with canonical field naming
// switched on.
func embeddedCanonicalParser(t *testing.T) *parse.Parser {
	t.Helper()

	return parse.New(embeddedRegistry(t), parse.WithCanonicalFields())
}
