package textfsm

import (
	"errors"
	"fmt"
	"strings"
)

var errBadPlaceholder = errors.New("invalid placeholder")

// substitute expands value placeholders in a rule pattern: `$$` becomes a
// literal dollar (how line-end anchors are written), `$Name` and `${Name}`
// insert the named capture fragment of a declared value, and any other use
// of `$` is malformed. Referencing an undeclared value is an error.
func substitute(pattern string, values map[string]*Value) (string, error) {
	var b strings.Builder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(pattern) {
			return "", errBadPlaceholder
		}
		switch next := pattern[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(pattern[i+2:], '}')
			if end < 0 {
				return "", errBadPlaceholder
			}
			name := pattern[i+2 : i+2+end]
			if !isIdentifier(name) {
				return "", errBadPlaceholder
			}
			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("undeclared value %q", name)
			}
			b.WriteString(v.capture())
			i += 2 + end + 1
		case isIdentStart(next):
			j := i + 1
			for j < len(pattern) && isIdentByte(pattern[j]) {
				j++
			}
			name := pattern[i+1 : j]
			v, ok := values[name]
			if !ok {
				return "", fmt.Errorf("undeclared value %q", name)
			}
			b.WriteString(v.capture())
			i = j
		default:
			return "", errBadPlaceholder
		}
	}
	return b.String(), nil
}

func isIdentStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || ('0' <= c && c <= '9')
}

func isIdentifier(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}
