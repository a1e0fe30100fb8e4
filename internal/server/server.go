// Package server exposes the parse facade over HTTP.
//
// Endpoints:
//   - POST /v1/parse     - parse device output into the JSON envelope
//   - GET  /v1/templates - list registered platforms and their templates
//   - GET  /health       - health check
//   - GET  /metrics      - Prometheus metrics
//
// Every response of /v1/parse is an envelope; the HTTP status mirrors the
// envelope's error code so callers can route on either.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/parse"
	"github.com/vk/netcli/internal/registry"
)

const shutdownTimeout = 5 * time.Second

// Server is the HTTP facade over a parser and its template registry.
type Server struct {
	ctx        context.Context
	parser     *parse.Parser
	registry   *registry.Registry
	httpServer *http.Server
}

// New creates a Server listening on addr once started. The context must
// carry the process logger; it is the base for per-request loggers. A nil
// gatherer disables the /metrics endpoint.
func New(ctx context.Context, addr string, parser *parse.Parser, reg *registry.Registry, gatherer prometheus.Gatherer) *Server {
	s := &Server{ctx: ctx, parser: parser, registry: reg}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/parse", s.handleParse)
	mux.HandleFunc("/v1/templates", s.handleTemplates)
	mux.HandleFunc("/health", s.handleHealth)
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}))
	}

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.middleware(mux),
	}
	return s
}

// Handler returns the root handler with all middleware applied. Tests mount
// it on httptest servers.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start runs the server in a background goroutine so it doesn't block.
func (s *Server) Start() {
	logger := ctxlog.FromContext(s.ctx)

	go func() {
		logger.Info("🌐 HTTP facade starting", "address", s.httpServer.Addr)
		// ListenAndServe returns ErrServerClosed on graceful shutdown; only
		// other errors are real failures.
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP facade failed unexpectedly", "error", err)
		}
	}()
}

// Shutdown drains in-flight requests, giving up after a 5 second timeout.
// The drain context is independent of s.ctx, which is typically already
// canceled by the signal that triggered the shutdown.
func (s *Server) Shutdown() error {
	logger := ctxlog.FromContext(s.ctx)
	logger.Info("🌐 Shutting down HTTP facade...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP facade shutdown failed", "error", err)
		return err
	}

	logger.Debug("HTTP facade shut down gracefully.")
	return nil
}
