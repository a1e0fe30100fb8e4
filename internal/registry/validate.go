package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/textfsm"
)

// CompileAll compiles every registered template and reports all failures in
// a single error. The parse path compiles lazily, so this is how the check
// command surfaces broken templates before anyone requests them.
func (reg *Registry) CompileAll(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	checked := 0
	for _, slug := range reg.Platforms() {
		for _, entry := range reg.Entries(slug) {
			checked++
			if _, err := textfsm.Compile(entry.Source); err != nil {
				errs = append(errs, fmt.Sprintf("%s/%s: %v", entry.Platform, entry.Key, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("template validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("All registered templates compiled cleanly.", "templates", checked)
	return nil
}
