// Package parse is the facade over the parsing pipeline: it composes
// identifier normalization, registry resolution, template compilation and
// execution into single calls, and converts every failure into one typed
// error for the JSON envelope.
//
// Three entry point families mirror the public API: resolve-by-key (JSON,
// Records), resolve-by-raw-command (CommandJSON), and the registry-bypassing
// direct-template entry (TemplateJSON). The JSON entry points never return
// an error; any failure becomes a {"ok":false,...} envelope.
//
// Compiled templates are cached per (platform, key) in a sync.Map.
// Compilation is deterministic, so concurrent misses that race to store the
// same key are harmless.
package parse
