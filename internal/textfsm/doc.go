// Package textfsm compiles and executes line-oriented parsing templates.
//
// A template declares a set of named value captures followed by one or more
// named states, each holding an ordered list of rules:
//
//	Value Required INTERFACE (\S+)
//	Value STATUS (up|down)
//
//	Start
//	  ^${INTERFACE}\s+is\s+${STATUS} -> Record
//
// Compile turns template source into an immutable *Template: every `Value`
// header line becomes a named capture fragment, every `${Name}` placeholder
// in a rule pattern is substituted once at compile time, and all rule
// syntax, transition targets, and regular expressions are validated up
// front. Execution never reports a template defect.
//
// Run then feeds input text through the state machine one line at a time.
// Within a state, rules are tried strictly top to bottom and the first
// matching pattern wins; its captures update the row in progress, its record
// action fires (Record, NoRecord, Clear, Clearall) and its line action
// decides whether to consume the line (Next, the default), keep evaluating
// the remaining rules against it (Continue), or abort the run (Error). Lines
// no rule matches are skipped. After the last line the pending row is flushed,
// unless the template declares an EOF state to take over end-of-input
// handling or a rule transitioned to End.
//
// Value options shape how captures accumulate: List appends instead of
// overwriting, Filldown values survive Record and Clear, Fillup back-fills
// earlier records, Required discards records missing the field, and Key is
// documentation only.
//
// A *Template is safe for concurrent use; each Run owns its private row
// state and result slice, so the same compiled template may back any number
// of simultaneous parses.
package textfsm
