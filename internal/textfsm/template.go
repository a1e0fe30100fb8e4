package textfsm

import (
	"strings"
)

// State is a named ordered sequence of rules.
type State struct {
	Name  string
	Rules []*Rule
}

// Template is an immutable compiled template. It is safe for concurrent
// use: Run never mutates it.
type Template struct {
	Values []*Value

	states    map[string]*State
	stateList []string // declaration order
	start     *State
	valueMap  map[string]*Value
}

// States returns the declared state names in declaration order.
func (t *Template) States() []string {
	names := make([]string, len(t.stateList))
	copy(names, t.stateList)
	return names
}

// Compile parses template source into a Template, validating everything up
// front: value declarations, placeholder references, rule syntax, regular
// expressions, and transition targets. Errors carry the offending template
// line number.
func Compile(source string) (*Template, error) {
	c := &compiler{
		lines: splitLines(source),
		t: &Template{
			states:   make(map[string]*State),
			valueMap: make(map[string]*Value),
		},
	}
	if err := c.parseValues(); err != nil {
		return nil, err
	}
	if err := c.parseStates(); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c.t, nil
}

type compiler struct {
	lines []string
	pos   int // index of the next line to read
	t     *Template
}

// next returns the next template line, right-trimmed, and reports whether
// one was available. Line numbers reported in errors are c.pos after the
// call (1-based).
func (c *compiler) next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := strings.TrimRight(c.lines[c.pos], " \t\r")
	c.pos++
	return line, true
}

func isComment(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "#")
}

// parseValues reads the header block of Value declarations. A blank line
// ends the block.
func (c *compiler) parseValues() error {
	for {
		line, ok := c.next()
		if !ok {
			return nil
		}
		if line == "" {
			return nil
		}
		if isComment(line) {
			continue
		}
		if !strings.HasPrefix(line, "Value ") {
			if len(c.t.Values) == 0 {
				return compileErrorf(c.pos, "no value definitions found")
			}
			return compileErrorf(c.pos, "expected blank line after the last value definition")
		}
		v, err := parseValue(line, c.pos)
		if err != nil {
			return err
		}
		if _, dup := c.t.valueMap[v.Name]; dup {
			return compileErrorf(c.pos, "duplicate declaration of value %q", v.Name)
		}
		c.t.Values = append(c.t.Values, v)
		c.t.valueMap[v.Name] = v
	}
}

// parseStates reads the state blocks that follow the header. Each block is
// a bare state name followed by indented rule lines, terminated by a blank
// line.
func (c *compiler) parseStates() error {
	for {
		line, ok := c.next()
		if !ok {
			return nil
		}
		if line == "" || isComment(line) {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			return compileErrorf(c.pos, "missing state name before rule %q", strings.TrimSpace(line))
		}
		if len(line) > maxNameLen || !nameRegex.MatchString(line) {
			return compileErrorf(c.pos, "invalid state name %q", line)
		}
		if _, dup := c.t.states[line]; dup {
			return compileErrorf(c.pos, "duplicate state name %q", line)
		}
		state := &State{Name: line}
		c.t.states[line] = state
		c.t.stateList = append(c.t.stateList, line)

		for {
			rule, ok := c.next()
			if !ok || rule == "" {
				break
			}
			if isComment(rule) {
				continue
			}
			if !strings.HasPrefix(rule, " ^") && !strings.HasPrefix(rule, "  ^") && !strings.HasPrefix(rule, "\t^") {
				return compileErrorf(c.pos, "missing white space or caret before rule %q", strings.TrimSpace(rule))
			}
			r, err := parseRule(rule, c.pos, c.t.valueMap)
			if err != nil {
				return err
			}
			state.Rules = append(state.Rules, r)
		}
	}
}

// validate resolves the start state and checks every transition target.
func (c *compiler) validate() error {
	if len(c.t.Values) == 0 {
		return compileErrorf(c.pos, "no value definitions found")
	}
	if len(c.t.stateList) == 0 {
		return compileErrorf(c.pos, "template defines no states")
	}

	// A declared End state may only ever be the reserved halt target.
	if end, ok := c.t.states[stateEnd]; ok {
		if len(end.Rules) > 0 {
			return compileErrorf(end.Rules[0].Line, "state %q must be empty", stateEnd)
		}
		delete(c.t.states, stateEnd)
		c.t.stateList = deleteName(c.t.stateList, stateEnd)
		if len(c.t.stateList) == 0 {
			return compileErrorf(c.pos, "template defines no states")
		}
	}

	// The state named Start starts the machine when declared; otherwise
	// the first declared state does.
	start, ok := c.t.states["Start"]
	if !ok {
		start = c.t.states[c.t.stateList[0]]
	}
	if len(start.Rules) == 0 {
		return compileErrorf(c.pos, "start state %q has no rules", start.Name)
	}
	c.t.start = start

	for _, name := range c.t.stateList {
		for _, rule := range c.t.states[name].Rules {
			if rule.LineOp == opError || rule.NewState == "" {
				continue
			}
			if rule.NewState == stateEnd || rule.NewState == stateEOF {
				continue
			}
			if _, ok := c.t.states[rule.NewState]; !ok {
				return compileErrorf(rule.Line, "state %q not found, referenced in state %q", rule.NewState, name)
			}
		}
	}
	return nil
}

func deleteName(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// splitLines splits raw text on \n, \r\n, or bare \r line endings. A
// trailing terminator does not produce a final empty line.
func splitLines(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			lines = append(lines, text[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, text[start:i])
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}
