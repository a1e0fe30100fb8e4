package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/metric"
	"github.com/vk/netcli/internal/parse"
	"github.com/vk/netcli/internal/registry"
	"github.com/vk/netcli/templates"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Results are written to outW, logs to the logger built over
// errW.
type App struct {
	inR      io.Reader
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	parser   *parse.Parser
	metrics  *metric.Metrics
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a registry
// holding the embedded template packs plus any configured on-disk ones.
// Startup failures are programmer or deployment errors, so New panics;
// the entrypoint recovers and turns the panic into a clean exit.
func New(inR io.Reader, outW, errW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if err := reg.LoadFS(ctx, templates.FS, "."); err != nil {
		panic(fmt.Errorf("failed to load embedded template packs: %w", err))
	}
	logger.Debug("Embedded template packs loaded.", "templates", reg.Len())

	if cfg.TemplatesPath != "" {
		if err := reg.LoadFS(ctx, os.DirFS(cfg.TemplatesPath), "."); err != nil {
			panic(fmt.Errorf("failed to load template packs from %q: %w", cfg.TemplatesPath, err))
		}
		logger.Debug("On-disk template packs loaded.", "path", cfg.TemplatesPath, "templates", reg.Len())
	}

	metrics := metric.New()
	opts := []parse.Option{parse.WithMetrics(metrics)}
	if cfg.Canonical {
		opts = append(opts, parse.WithCanonicalFields())
	}

	return &App{
		inR:      inR,
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: reg,
		parser:   parse.New(reg, opts...),
		metrics:  metrics,
	}
}

// Registry returns the application's template registry. This is primarily
// for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
