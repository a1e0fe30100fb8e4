package parse

import (
	"errors"
	"fmt"

	"github.com/vk/netcli/internal/registry"
	"github.com/vk/netcli/internal/textfsm"
)

// Code classifies a parse failure for the envelope and, at the HTTP
// surface, the status mapping.
type Code string

// Failure codes carried in error envelopes.
const (
	CodeInvalidInput         Code = "INVALID_INPUT"
	CodeTemplateNotFound     Code = "TEMPLATE_NOT_FOUND"
	CodeTemplateCompileError Code = "TEMPLATE_COMPILE_ERROR"
	CodeExecutionError       Code = "EXECUTION_ERROR"
	CodeAllocationFailure    Code = "ALLOCATION_FAILURE"
	CodeInternalError        Code = "INTERNAL_ERROR"
)

// Error is the one failure type the facade returns. Message is what the
// envelope carries; Cause keeps the underlying error for logs and tests.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

func errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code Code, err error) *Error {
	return &Error{Code: code, Message: err.Error(), Cause: err}
}

// classify maps an arbitrary pipeline error onto its envelope code. Errors
// that are already typed pass through untouched.
func classify(err error) *Error {
	var perr *Error
	if errors.As(err, &perr) {
		return perr
	}

	var cerr *textfsm.CompileError
	if errors.As(err, &cerr) {
		return &Error{Code: CodeTemplateCompileError, Message: cerr.Error(), Cause: err}
	}

	var xerr *textfsm.ExecutionError
	if errors.As(err, &xerr) {
		message := xerr.Message
		if message == "" {
			message = xerr.Error()
		}
		return &Error{Code: CodeExecutionError, Message: message, Cause: err}
	}

	if errors.Is(err, registry.ErrNotFound) {
		return &Error{Code: CodeTemplateNotFound, Message: err.Error(), Cause: err}
	}

	return &Error{Code: CodeInternalError, Message: err.Error(), Cause: err}
}
