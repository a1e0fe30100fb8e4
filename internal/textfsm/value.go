package textfsm

import (
	"regexp"
	"strings"
)

// maxNameLen bounds value and state names, per the template format.
const maxNameLen = 48

var nameRegex = regexp.MustCompile(`^\w+$`)

// Value is one named capture field declared in a template header line of
// the form `Value [option[,option...]] NAME (regex)`.
type Value struct {
	Name  string
	Regex string // fragment as declared, including the wrapping parens

	Required bool
	List     bool
	Filldown bool
	Fillup   bool
	Key      bool
}

// capture rewrites the declared fragment's leading paren into a named
// capture group. The result is what `${NAME}` expands to in rule patterns.
func (v *Value) capture() string {
	return "(?P<" + v.Name + ">" + v.Regex[1:]
}

// parseValue parses a single header line. The caller has already checked
// the leading "Value " keyword.
func parseValue(line string, lineNum int) (*Value, error) {
	// Split and re-join on single spaces so interior spacing inside the
	// regex fragment survives intact.
	tokens := strings.Split(line, " ")
	if len(tokens) < 3 {
		return nil, compileErrorf(lineNum, "expected 'Value [options] NAME (regex)', got %q", line)
	}

	v := &Value{}
	rest := tokens[1:]
	if !strings.HasPrefix(rest[1], "(") {
		// First token is the comma-separated option list.
		for _, opt := range strings.Split(rest[0], ",") {
			if err := v.setOption(opt, lineNum); err != nil {
				return nil, err
			}
		}
		rest = rest[1:]
		if len(rest) < 2 {
			return nil, compileErrorf(lineNum, "value %q is missing a regex", rest[0])
		}
	}

	v.Name = rest[0]
	v.Regex = strings.Join(rest[1:], " ")

	if len(v.Name) > maxNameLen {
		return nil, compileErrorf(lineNum, "value name %q exceeds %d characters", v.Name, maxNameLen)
	}
	if !nameRegex.MatchString(v.Name) {
		return nil, compileErrorf(lineNum, "invalid value name %q", v.Name)
	}
	if !strings.HasPrefix(v.Regex, "(") || !strings.HasSuffix(v.Regex, ")") ||
		strings.Count(v.Regex, "(") != strings.Count(v.Regex, ")") {
		return nil, compileErrorf(lineNum, "value %q regex must be contained within a '()' pair", v.Name)
	}

	return v, nil
}

// setOption enables a single named option, rejecting unknown names and
// duplicates.
func (v *Value) setOption(name string, lineNum int) error {
	var field *bool
	switch name {
	case "Required":
		field = &v.Required
	case "List":
		field = &v.List
	case "Filldown":
		field = &v.Filldown
	case "Fillup":
		field = &v.Fillup
	case "Key":
		field = &v.Key
	default:
		return compileErrorf(lineNum, "unknown value option %q", name)
	}
	if *field {
		return compileErrorf(lineNum, "duplicate value option %q", name)
	}
	*field = true
	return nil
}
