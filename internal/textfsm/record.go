package textfsm

import (
	"bytes"
	"encoding/json"
)

type fieldState int

const (
	fieldUnset fieldState = iota
	fieldScalar
	fieldList
)

type recordField struct {
	name  string
	text  string
	list  []string
	state fieldState
}

// Record is one finalized row of captured fields. Field order follows the
// template's value-declaration order; unset fields are carried internally
// but absent from every external view. A Record handed out by Run is never
// mutated again.
type Record struct {
	fields []recordField
}

// field returns a pointer to the named field for in-run mutation by
// Fillup back-filling. Nil when the name is not declared.
func (r *Record) field(name string) *recordField {
	for i := range r.fields {
		if r.fields[i].name == name {
			return &r.fields[i]
		}
	}
	return nil
}

// Get returns the scalar content of a field and whether it is set.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r.fields {
		if f.name == name && f.state == fieldScalar {
			return f.text, true
		}
	}
	return "", false
}

// List returns the list content of a field and whether it is set.
func (r Record) List(name string) ([]string, bool) {
	for _, f := range r.fields {
		if f.name == name && f.state == fieldList {
			return f.list, true
		}
	}
	return nil, false
}

// Keys returns the names of the set fields, in declaration order.
func (r Record) Keys() []string {
	var keys []string
	for _, f := range r.fields {
		if f.state != fieldUnset {
			keys = append(keys, f.name)
		}
	}
	return keys
}

// Len reports the number of set fields.
func (r Record) Len() int {
	n := 0
	for _, f := range r.fields {
		if f.state != fieldUnset {
			n++
		}
	}
	return n
}

// Map returns the set fields as a plain map, scalar fields as string and
// list fields as []string. Field order is lost; use Keys for ordering.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.fields))
	for _, f := range r.fields {
		switch f.state {
		case fieldScalar:
			m[f.name] = f.text
		case fieldList:
			m[f.name] = f.list
		}
	}
	return m
}

// Rename returns a copy of the record with every field name rewritten
// through fn. Order and contents are preserved.
func (r Record) Rename(fn func(string) string) Record {
	out := Record{fields: make([]recordField, len(r.fields))}
	copy(out.fields, r.fields)
	for i := range out.fields {
		out.fields[i].name = fn(out.fields[i].name)
	}
	return out
}

// MarshalJSON renders the record as a JSON object whose keys appear in
// declaration order. Scalar fields marshal as strings, list fields as
// string arrays, unset fields are omitted.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, f := range r.fields {
		if f.state == fieldUnset {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(f.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		var val []byte
		if f.state == fieldScalar {
			val, err = json.Marshal(f.text)
		} else {
			val, err = json.Marshal(f.list)
		}
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
