package textfsm

// runValue tracks one value's accumulation state during a single Run.
type runValue struct {
	def     *Value
	text    string
	set     bool
	list    []string
	fill    string // remembered Filldown capture
	fillSet bool
}

// clear resets the value unless Filldown holds it: a remembered filldown
// capture is restored, and a Filldown list keeps accumulating.
func (rv *runValue) clear() {
	if rv.def.List {
		if !rv.def.Filldown {
			rv.list = nil
		}
		return
	}
	if rv.def.Filldown && rv.fillSet {
		rv.text = rv.fill
		rv.set = true
		return
	}
	rv.text = ""
	rv.set = false
}

// clearAll resets the value completely, remembered filldown state included.
func (rv *runValue) clearAll() {
	rv.text = ""
	rv.set = false
	rv.list = nil
	rv.fill = ""
	rv.fillSet = false
}

// execution is the private state of one Run.
type execution struct {
	tmpl    *Template
	values  []*runValue
	byName  map[string]*runValue
	cur     *State
	curName string
	results []Record
}

// Run executes the compiled template against raw text and returns the
// finalized records in emission order. The result is empty, never nil, when
// nothing was emitted. The only error condition is a rule with an Error
// action matching, surfaced as *ExecutionError.
func (t *Template) Run(text string) ([]Record, error) {
	e := &execution{
		tmpl:    t,
		byName:  make(map[string]*runValue, len(t.Values)),
		cur:     t.start,
		curName: t.start.Name,
		results: []Record{},
	}
	for _, v := range t.Values {
		rv := &runValue{def: v}
		e.values = append(e.values, rv)
		e.byName[v.Name] = rv
	}

	for _, line := range splitLines(text) {
		if err := e.checkLine(line); err != nil {
			return nil, err
		}
		if e.curName == stateEnd || e.curName == stateEOF {
			break
		}
	}

	// End halts without flushing. Otherwise a declared EOF state takes
	// over end-of-input handling: with rules it runs them once against a
	// synthetic empty line, empty it suppresses the implicit flush.
	if e.curName != stateEnd {
		if eof, declared := t.states[stateEOF]; declared {
			if len(eof.Rules) > 0 {
				e.cur = eof
				e.curName = stateEOF
				if err := e.checkLine(""); err != nil {
					return nil, err
				}
			}
		} else {
			e.appendRecord()
		}
	}

	return e.results, nil
}

// checkLine passes one input line through the current state's rules. The
// first matching rule wins; Continue keeps evaluating the remaining rules
// against the same line. A line no rule matches is skipped.
func (e *execution) checkLine(line string) error {
	for _, rule := range e.cur.Rules {
		m := rule.re.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		e.assign(rule, line, m)

		cont, err := e.operations(rule, line)
		if err != nil {
			return err
		}
		if cont {
			continue
		}
		if rule.NewState != "" {
			if rule.NewState != stateEnd && rule.NewState != stateEOF {
				e.cur = e.tmpl.states[rule.NewState]
			}
			e.curName = rule.NewState
		}
		return nil
	}
	return nil
}

// assign applies every named capture that participated in the match to its
// value, per the value's options.
func (e *execution) assign(rule *Rule, line string, m []int) {
	for gi, name := range rule.re.SubexpNames() {
		if gi == 0 || name == "" {
			continue
		}
		lo, hi := m[2*gi], m[2*gi+1]
		if lo < 0 {
			continue
		}
		rv, ok := e.byName[name]
		if !ok {
			// A raw named group in the pattern, not a declared value.
			continue
		}
		capture := line[lo:hi]
		if rv.def.List {
			rv.list = append(rv.list, capture)
		} else {
			rv.text = capture
			rv.set = true
		}
		if rv.def.Filldown {
			rv.fill = capture
			rv.fillSet = true
		}
		if rv.def.Fillup && capture != "" {
			e.backfill(rv.def, capture)
		}
	}
}

// operations applies the rule's record and line operators. It reports
// whether rule evaluation should continue on the same line.
func (e *execution) operations(rule *Rule, line string) (bool, error) {
	switch rule.RecordOp {
	case opRecord:
		e.appendRecord()
	case opClear:
		e.clearRecord()
	case opClearall:
		e.clearAllRecord()
	}

	if rule.LineOp == opError {
		return false, &ExecutionError{Message: rule.NewState, RuleLine: rule.Line, Input: line}
	}
	return rule.LineOp == opContinue, nil
}

// appendRecord finalizes the row in progress: dropped (and cleared) when a
// Required value is missing, skipped when every field is empty, otherwise
// snapshotted into the results in declaration order.
func (e *execution) appendRecord() {
	fields := make([]recordField, len(e.values))
	empty := true
	for i, rv := range e.values {
		fields[i].name = rv.def.Name
		if rv.def.List {
			if len(rv.list) == 0 {
				if rv.def.Required {
					e.clearRecord()
					return
				}
				continue
			}
			fields[i].state = fieldList
			fields[i].list = append([]string(nil), rv.list...)
			empty = false
			continue
		}
		if rv.def.Required && (!rv.set || rv.text == "") {
			e.clearRecord()
			return
		}
		if !rv.set {
			continue
		}
		fields[i].state = fieldScalar
		fields[i].text = rv.text
		empty = false
	}
	if empty {
		return
	}
	e.results = append(e.results, Record{fields: fields})
	e.clearRecord()
}

func (e *execution) clearRecord() {
	for _, rv := range e.values {
		rv.clear()
	}
}

func (e *execution) clearAllRecord() {
	for _, rv := range e.values {
		rv.clearAll()
	}
}

// backfill copies a Fillup capture into earlier finalized records whose
// field is still empty, newest first, stopping at the first record that
// already has it.
func (e *execution) backfill(def *Value, capture string) {
	for i := len(e.results) - 1; i >= 0; i-- {
		f := e.results[i].field(def.Name)
		if f == nil {
			return
		}
		switch f.state {
		case fieldScalar:
			if f.text != "" {
				return
			}
		case fieldList:
			if len(f.list) > 0 {
				return
			}
		}
		if def.List {
			f.state = fieldList
			f.list = []string{capture}
		} else {
			f.state = fieldScalar
			f.text = capture
		}
	}
}
