package parse

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/vk/netcli/internal/command"
	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/platform"
	"github.com/vk/netcli/internal/textfsm"
)

// TemplateJSON parses device output with a caller-supplied template,
// bypassing the registry entirely. The success envelope carries a "vendor"
// field in place of the registry entry points' "platform". Like the other
// JSON entry points it never returns an error, and panics surface as
// CodeInternalError envelopes.
func TemplateJSON(ctx context.Context, vendor, key, source, output string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = failureJSON(errorf(CodeInternalError, "internal error: %v", r))
		}
	}()

	logger := ctxlog.FromContext(ctx)

	if strings.TrimSpace(vendor) == "" {
		return failureJSON(errorf(CodeInvalidInput, "required input is empty: vendor"))
	}
	if strings.TrimSpace(key) == "" {
		return failureJSON(errorf(CodeInvalidInput, "required input is empty: command_key"))
	}
	if strings.TrimSpace(source) == "" {
		return failureJSON(errorf(CodeInvalidInput, "required input is empty: template_text"))
	}
	if strings.TrimSpace(output) == "" {
		return failureJSON(errorf(CodeInvalidInput, "required input is empty: output_text"))
	}
	if !utf8.ValidString(source) || !utf8.ValidString(output) {
		return failureJSON(errorf(CodeInvalidInput, "input text is not valid UTF-8"))
	}

	slug, err := platform.Normalize(vendor)
	if err != nil {
		return failureJSON(wrapError(CodeInvalidInput, err))
	}
	ckey, err := command.Normalize(key)
	if err != nil {
		return failureJSON(wrapError(CodeInvalidInput, err))
	}

	logger.Debug("Parsing with direct template...", "vendor", slug, "command", ckey, "bytes", len(output))

	tmpl, err := textfsm.Compile(source)
	if err != nil {
		return failureJSON(classify(err))
	}
	records, err := tmpl.Run(output)
	if err != nil {
		return failureJSON(classify(err))
	}

	logger.Debug("Direct-template parse succeeded.", "vendor", slug, "command", ckey, "records", len(records))
	return vendorJSON(slug, ckey, records)
}
