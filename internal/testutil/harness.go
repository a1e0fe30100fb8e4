package testutil

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// Context returns a context carrying a logger that discards everything.
// Tests that do not assert on log output use this.
func Context() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

// ContextWithBuffer returns a context whose logger writes debug-level text
// lines into the returned buffer.
func ContextWithBuffer() (context.Context, *SafeBuffer) {
	buffer := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(buffer, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger), buffer
}

// Registry loads a template registry from an in-memory file tree. Paths are
// relative to a synthetic "templates" root, e.g.
// "templates/cisco_ios/pack.hcl".
func Registry(t *testing.T, files map[string]string) *registry.Registry {
	t.Helper()

	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}

	reg := registry.New()
	require.NoError(t, reg.LoadFS(Context(), fsys, "templates"))
	return reg
}
