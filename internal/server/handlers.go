package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/parse"
)

type parseRequest struct {
	Platform   string `json:"platform"`
	CommandKey string `json:"commandKey"`
	Command    string `json:"command"`
	Output     string `json:"output"`
}

type templateInfo struct {
	Key         string            `json:"commandKey"`
	Command     string            `json:"command,omitempty"`
	Description string            `json:"description,omitempty"`
	Aliases     []string          `json:"aliases,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

type platformTemplates struct {
	Platform    string         `json:"platform"`
	Description string         `json:"description,omitempty"`
	Templates   []templateInfo `json:"templates"`
}

type templatesResponse struct {
	Platforms []platformTemplates `json:"platforms"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeEnvelope(w, http.StatusMethodNotAllowed,
			parse.ErrorJSON(parse.CodeInvalidInput, "method not allowed, use POST"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeEnvelope(w, http.StatusBadRequest,
				parse.ErrorJSON(parse.CodeInvalidInput, "request body exceeds 1 MiB"))
			return
		}
		writeEnvelope(w, http.StatusBadRequest,
			parse.ErrorJSON(parse.CodeInvalidInput, "could not read request body"))
		return
	}

	var req parseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeEnvelope(w, http.StatusBadRequest,
			parse.ErrorJSON(parse.CodeInvalidInput, "request body is not valid JSON"))
		return
	}

	// commandKey and command resolve identically; commandKey wins when a
	// client sends both.
	commandArg := req.CommandKey
	if commandArg == "" {
		commandArg = req.Command
	}

	result, err := s.parser.Records(r.Context(), req.Platform, commandArg, req.Output)
	if err != nil {
		var perr *parse.Error
		if !errors.As(err, &perr) {
			perr = &parse.Error{Code: parse.CodeInternalError, Message: "internal error"}
		}
		writeEnvelope(w, statusFor(perr.Code), parse.ErrorJSON(perr.Code, perr.Message))
		return
	}

	writeEnvelope(w, http.StatusOK, parse.ResultJSON(result))
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeEnvelope(w, http.StatusMethodNotAllowed,
			parse.ErrorJSON(parse.CodeInvalidInput, "method not allowed, use GET"))
		return
	}

	response := templatesResponse{Platforms: []platformTemplates{}}
	for _, slug := range s.registry.Platforms() {
		entry := platformTemplates{
			Platform:    slug,
			Description: s.registry.Description(slug),
			Templates:   []templateInfo{},
		}
		for _, tmpl := range s.registry.Entries(slug) {
			entry.Templates = append(entry.Templates, templateInfo{
				Key:         tmpl.Key,
				Command:     tmpl.Command,
				Description: tmpl.Description,
				Aliases:     tmpl.Aliases,
				Labels:      tmpl.Labels,
			})
		}
		response.Platforms = append(response.Platforms, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		ctxlog.FromContext(r.Context()).Error("Failed to encode template listing", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(r.Context())
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "OK\n")
}

// statusFor maps envelope error codes onto HTTP statuses.
func statusFor(code parse.Code) int {
	switch code {
	case parse.CodeInvalidInput:
		return http.StatusBadRequest
	case parse.CodeTemplateNotFound:
		return http.StatusNotFound
	case parse.CodeTemplateCompileError, parse.CodeExecutionError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeEnvelope(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}
