package textfsm

import "fmt"

// CompileError reports a defect in template source. Line is the 1-based
// line number of the offending template line.
type CompileError struct {
	Line   int
	Reason string
}

// Error implements the error interface for CompileError.
func (e *CompileError) Error() string {
	return fmt.Sprintf("template line %d: %s", e.Line, e.Reason)
}

// compileErrorf builds a CompileError with a formatted reason. Line stays
// 1-based even when the source had no lines to point at.
func compileErrorf(line int, format string, args ...any) *CompileError {
	if line < 1 {
		line = 1
	}
	return &CompileError{Line: line, Reason: fmt.Sprintf(format, args...)}
}

// ExecutionError is returned by Run when a rule with an Error action
// matches. Message carries the template-supplied text, if any.
type ExecutionError struct {
	Message  string
	RuleLine int    // template line of the rule that fired
	Input    string // input line being processed when it fired
}

// Error implements the error interface for ExecutionError.
func (e *ExecutionError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("error action %q at template line %d, input line %q", e.Message, e.RuleLine, e.Input)
	}
	return fmt.Sprintf("error action at template line %d, input line %q", e.RuleLine, e.Input)
}
