// Package templates carries the built-in template packs embedded into the
// netcli binary. Each platform directory holds a pack.hcl manifest and the
// template files it declares.
package templates

import "embed"

// FS holds every pack manifest and template file under this directory.
//
//go:embed */pack.hcl */*.textfsm
var FS embed.FS
