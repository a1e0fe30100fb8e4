package parse

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/vk/netcli/internal/command"
	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/metric"
	"github.com/vk/netcli/internal/normalize"
	"github.com/vk/netcli/internal/platform"
	"github.com/vk/netcli/internal/registry"
	"github.com/vk/netcli/internal/textfsm"
)

// Result is a successful parse: the canonical pair the template was
// resolved under, plus the records it produced.
type Result struct {
	Platform string
	Key      string
	Records  []textfsm.Record
}

// Parser binds the template registry to the engine and caches compiled
// templates per (platform, key). A Parser is safe for concurrent use.
type Parser struct {
	registry  *registry.Registry
	cache     sync.Map
	canonical bool
	metrics   *metric.Metrics
}

// Option configures a Parser.
type Option func(*Parser)

// WithCanonicalFields renames record fields to the per-command canonical
// names before results are built. Default output keeps the names the
// template declares.
func WithCanonicalFields() Option {
	return func(p *Parser) { p.canonical = true }
}

// WithMetrics attaches pipeline instrumentation to the parser.
func WithMetrics(m *metric.Metrics) Option {
	return func(p *Parser) { p.metrics = m }
}

// New creates a Parser over the given registry.
func New(reg *registry.Registry, opts ...Option) *Parser {
	p := &Parser{registry: reg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Records parses device output for a platform and command, returning the
// typed result. The command argument accepts both stable keys and raw
// command strings; normalization folds them to the same registry key. All
// failures come back as a single *Error; panics anywhere in the pipeline
// surface as CodeInternalError rather than crossing the facade.
func (p *Parser) Records(ctx context.Context, platformRaw, commandRaw, output string) (result *Result, err error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = errorf(CodeInternalError, "internal error: %v", r)
		}
		p.observe(result, err, time.Since(start))
	}()

	result, perr := p.parse(ctx, platformRaw, commandRaw, output)
	if perr != nil {
		return nil, perr
	}
	return result, nil
}

// JSON parses device output resolved by stable command key and returns the
// JSON envelope. It never returns an error; failures become error
// envelopes.
func (p *Parser) JSON(ctx context.Context, platformRaw, key, output string) string {
	result, err := p.Records(ctx, platformRaw, key, output)
	if err != nil {
		return failureJSON(classify(err))
	}
	return successJSON(result.Platform, result.Key, result.Records)
}

// CommandJSON parses device output resolved by raw command string ("show
// version") and returns the JSON envelope. Normalization is idempotent, so
// a stable key is accepted here too and resolves identically to JSON.
func (p *Parser) CommandJSON(ctx context.Context, platformRaw, commandRaw, output string) string {
	result, err := p.Records(ctx, platformRaw, commandRaw, output)
	if err != nil {
		return failureJSON(classify(err))
	}
	return successJSON(result.Platform, result.Key, result.Records)
}

func (p *Parser) parse(ctx context.Context, platformRaw, commandRaw, output string) (*Result, *Error) {
	logger := ctxlog.FromContext(ctx)

	if strings.TrimSpace(platformRaw) == "" {
		return nil, errorf(CodeInvalidInput, "required input is empty: platform")
	}
	if strings.TrimSpace(commandRaw) == "" {
		return nil, errorf(CodeInvalidInput, "required input is empty: command_key")
	}
	if strings.TrimSpace(output) == "" {
		return nil, errorf(CodeInvalidInput, "required input is empty: output_text")
	}
	if !utf8.ValidString(output) {
		return nil, errorf(CodeInvalidInput, "output text is not valid UTF-8")
	}

	slug, err := platform.Normalize(platformRaw)
	if err != nil {
		return nil, wrapError(CodeInvalidInput, err)
	}
	key, err := command.Normalize(commandRaw)
	if err != nil {
		return nil, wrapError(CodeInvalidInput, err)
	}

	logger.Debug("Parsing device output...", "platform", slug, "command", key, "bytes", len(output))

	entry, err := p.registry.Resolve(slug, key)
	if err != nil {
		return nil, classify(err)
	}
	// Resolve may have followed a pack alias; the envelope carries the
	// canonical pair the entry is registered under.
	slug, key = entry.Platform, entry.Key

	tmpl, err := p.template(entry)
	if err != nil {
		return nil, classify(err)
	}

	records, err := tmpl.Run(output)
	if err != nil {
		return nil, classify(err)
	}
	if p.canonical {
		records = normalize.Apply(key, records)
	}

	logger.Debug("Parse succeeded.", "platform", slug, "command", key, "records", len(records))
	return &Result{Platform: slug, Key: key, Records: records}, nil
}

// template returns the compiled template for an entry, compiling on first
// use. Concurrent misses may compile twice; the result is identical either
// way, so the racing Store is benign.
func (p *Parser) template(entry *registry.Entry) (*textfsm.Template, error) {
	cacheKey := entry.Platform + "/" + entry.Key
	if cached, ok := p.cache.Load(cacheKey); ok {
		if p.metrics != nil {
			p.metrics.TemplateCacheHits.Inc()
		}
		return cached.(*textfsm.Template), nil
	}

	tmpl, err := textfsm.Compile(entry.Source)
	if p.metrics != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		p.metrics.TemplateCompiles.WithLabelValues(result).Inc()
	}
	if err != nil {
		return nil, err
	}

	p.cache.Store(cacheKey, tmpl)
	return tmpl, nil
}

// observe records request metrics. Requests that fail before resolution
// have no canonical pair; those count under the unresolved label so label
// cardinality stays bounded.
func (p *Parser) observe(result *Result, err error, elapsed time.Duration) {
	if p.metrics == nil {
		return
	}

	platformLabel, commandLabel := "unresolved", "unresolved"
	if result != nil {
		platformLabel, commandLabel = result.Platform, result.Key
	}

	outcome := "ok"
	if err != nil {
		outcome = "internal_error"
		var perr *Error
		if errors.As(err, &perr) {
			outcome = strings.ToLower(string(perr.Code))
		}
	}

	p.metrics.ParseRequests.WithLabelValues(platformLabel, commandLabel, outcome).Inc()
	p.metrics.ParseDuration.WithLabelValues(platformLabel, commandLabel).Observe(elapsed.Seconds())
	if err == nil && result != nil {
		p.metrics.ParseRecords.WithLabelValues(platformLabel, commandLabel).Add(float64(len(result.Records)))
	}
}
