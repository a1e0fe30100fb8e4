package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/metric"
	"github.com/vk/netcli/internal/parse"
	"github.com/vk/netcli/internal/server"
)

// Run executes the mode the configuration selected. Parse mode writes an
// envelope and returns nil even when the envelope carries an error; the
// envelope is the result.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	switch {
	case a.config.List:
		return a.runList(ctx)
	case a.config.Check:
		return a.runCheck(ctx)
	case a.config.ListenAddr != "":
		return a.runServe(ctx)
	default:
		return a.runParse(ctx)
	}
}

func (a *App) runParse(ctx context.Context) error {
	output, err := a.readInput()
	if err != nil {
		return err
	}

	key := a.config.Key
	if key == "" {
		key = a.config.Command
	}

	var envelope string
	if a.config.TemplatePath != "" {
		source, err := os.ReadFile(a.config.TemplatePath)
		if err != nil {
			return fmt.Errorf("read template file: %w", err)
		}
		envelope = parse.TemplateJSON(ctx, a.config.Platform, key, string(source), output)
	} else {
		envelope = a.parser.JSON(ctx, a.config.Platform, key, output)
	}

	fmt.Fprintln(a.outW, envelope)
	a.logger.Debug("App.Run method finished.")
	return nil
}

// readInput returns the device output text, from stdin when the input path
// is "-".
func (a *App) readInput() (string, error) {
	if a.config.InputPath == "-" {
		raw, err := io.ReadAll(a.inR)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}

	raw, err := os.ReadFile(a.config.InputPath)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	return string(raw), nil
}

func (a *App) runList(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Listing registered templates.", "count", a.registry.Len())

	for _, slug := range a.registry.Platforms() {
		header := slug
		if description := a.registry.Description(slug); description != "" {
			header += " - " + description
		}
		fmt.Fprintln(a.outW, header)

		for _, entry := range a.registry.Entries(slug) {
			line := "  " + entry.Key
			if entry.Command != "" {
				line += "  (" + entry.Command + ")"
			}
			if len(entry.Labels) > 0 {
				pairs := make([]string, 0, len(entry.Labels))
				for name, value := range entry.Labels {
					pairs = append(pairs, name+"="+value)
				}
				sort.Strings(pairs)
				line += "  [" + strings.Join(pairs, " ") + "]"
			}
			fmt.Fprintln(a.outW, line)
		}
	}
	return nil
}

func (a *App) runCheck(ctx context.Context) error {
	if err := a.registry.CompileAll(ctx); err != nil {
		return err
	}

	fmt.Fprintf(a.outW, "ok: %d templates compiled\n", a.registry.Len())
	return nil
}

// runServe starts the HTTP facade and blocks until SIGINT or SIGTERM, then
// shuts it down gracefully.
func (a *App) runServe(ctx context.Context) error {
	signalCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(ctx, a.config.ListenAddr, a.parser, a.registry, metric.NewRegistry(a.metrics))
	srv.Start()

	<-signalCtx.Done()
	a.logger.Info("Shutdown signal received.")
	return srv.Shutdown()
}
