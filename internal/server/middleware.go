package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/parse"
)

// maxRequestBody caps the size of a /v1/parse request body at 1 MiB.
const maxRequestBody = 1 << 20

// statusRecorder captures the status code a handler writes so the access
// log can report it.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// middleware wraps every request with a request id, a per-request logger
// derived from the server context, panic recovery, and an access log line.
func (s *Server) middleware(next http.Handler) http.Handler {
	base := ctxlog.FromContext(s.ctx)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.New().String()
		logger := base.With("request_id", requestID)
		w.Header().Set("X-Request-Id", requestID)

		r = r.WithContext(ctxlog.WithLogger(r.Context(), logger))
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Panic while serving request",
					"panic", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				writeEnvelope(recorder, http.StatusInternalServerError,
					parse.ErrorJSON(parse.CodeInternalError, "internal error"))
			}

			logger.Debug("Request served.",
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration", time.Since(start).String(),
			)
		}()

		next.ServeHTTP(recorder, r)
	})
}
