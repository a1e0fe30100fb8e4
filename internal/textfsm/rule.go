package textfsm

import (
	"regexp"
	"strings"
)

// Line operators. An empty LineOp is an implicit Next.
const (
	opNext     = "Next"
	opContinue = "Continue"
	opError    = "Error"
)

// Record operators. An empty RecordOp is an implicit NoRecord.
const (
	opRecord   = "Record"
	opNoRecord = "NoRecord"
	opClear    = "Clear"
	opClearall = "Clearall"
)

// Reserved transition targets.
const (
	stateEnd = "End"
	stateEOF = "EOF"
)

const (
	lineOpPat   = `(?P<ln>Continue|Next|Error)`
	recordOpPat = `(?P<rec>Clear|Clearall|Record|NoRecord)`
	newStatePat = `(?P<state>\w+|".*")`
)

var (
	// matchActionRegex splits a rule into its pattern and the text after
	// the last ` ->`.
	matchActionRegex = regexp.MustCompile(`^(?P<match>.*)\s->(?P<action>.*)$`)

	// The three accepted action layouts, tried in order: line operator
	// with optional record operator, bare record operator, bare new state.
	actionLineOpRegex   = regexp.MustCompile(`^\s+` + lineOpPat + `(?:\.` + recordOpPat + `)?(?:\s+` + newStatePat + `)?$`)
	actionRecordOpRegex = regexp.MustCompile(`^\s+` + recordOpPat + `(?:\s+` + newStatePat + `)?$`)
	actionNewStateRegex = regexp.MustCompile(`^(?:\s+` + newStatePat + `)?$`)
)

// Rule is one compiled pattern line within a state.
type Rule struct {
	Match    string // pattern as written, before substitution
	LineOp   string // Next, Continue, Error, or "" for implicit Next
	RecordOp string // Record, NoRecord, Clear, Clearall, or ""
	NewState string // destination state, or the Error action's message
	Line     int    // 1-based template line the rule appears on

	re *regexp.Regexp
}

// parseRule parses a single rule line. The caller has already verified the
// indentation and the leading caret.
func parseRule(line string, lineNum int, values map[string]*Value) (*Rule, error) {
	r := &Rule{Line: lineNum}

	trimmed := strings.TrimSpace(line)
	action := ""
	if m := matchActionRegex.FindStringSubmatch(trimmed); m != nil {
		r.Match = m[1]
		action = m[2]
	} else {
		r.Match = trimmed
	}

	if m := actionLineOpRegex.FindStringSubmatch(action); m != nil {
		r.LineOp, r.RecordOp, r.NewState = m[1], m[2], m[3]
	} else if m := actionRecordOpRegex.FindStringSubmatch(action); m != nil {
		r.RecordOp, r.NewState = m[1], m[2]
	} else if m := actionNewStateRegex.FindStringSubmatch(action); m != nil {
		r.NewState = m[1]
	} else {
		return nil, compileErrorf(lineNum, "badly formatted rule %q", trimmed)
	}

	// Only Next (explicit or implicit) may carry a destination. Error
	// instead reuses the slot for its message.
	if r.LineOp == opContinue && r.NewState != "" {
		return nil, compileErrorf(lineNum, "action Continue cannot change state (got %q)", r.NewState)
	}
	if r.LineOp == opError {
		r.NewState = strings.Trim(r.NewState, `"`)
	} else if r.NewState != "" && !nameRegex.MatchString(r.NewState) {
		return nil, compileErrorf(lineNum, "invalid state name %q", r.NewState)
	}

	pattern, err := substitute(r.Match, values)
	if err != nil {
		return nil, compileErrorf(lineNum, "%s in pattern %q", err, r.Match)
	}
	// Anchor at line start no matter how the pattern branches, so matching
	// behaves like an anchored match against the whole line.
	r.re, err = regexp.Compile(`\A(?:` + pattern + `)`)
	if err != nil {
		return nil, compileErrorf(lineNum, "invalid regular expression %q: %v", pattern, err)
	}

	return r, nil
}
