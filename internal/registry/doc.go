// Package registry indexes parse templates by platform and command key.
//
// Templates ship in packs: a directory holding a pack.hcl manifest plus the
// .textfsm files it references. The manifest names the pack's platform,
// optional alternate names for it, and one template block per command key.
// At startup the registry loads every pack found in the template filesystem
// (the embedded defaults, optionally layered with an on-disk directory),
// after which it is read-only and safe for concurrent lookups.
//
// Callers resolve canonical slugs only; pack-declared aliases are applied
// inside Resolve as a fallback when the exact pair has no entry.
package registry
