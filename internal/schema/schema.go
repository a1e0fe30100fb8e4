package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// TemplateDecl represents a `template` block inside a pack manifest. It
// binds one command key to the template file that parses that command's
// output on the pack's platform.
type TemplateDecl struct {
	Key         string     `hcl:"key,label"`
	File        string     `hcl:"file"`
	Command     string     `hcl:"command,optional"`
	Description string     `hcl:"description,optional"`
	Aliases     []string   `hcl:"aliases,optional"`
	Labels      *cty.Value `hcl:"labels,optional"`
}

// Pack represents a `pack` block from a pack.hcl manifest: the set of
// templates shipped for one platform, plus the alternate names that
// platform is known by.
type Pack struct {
	Platform    string          `hcl:"platform,label"`
	Description string          `hcl:"description,optional"`
	Aliases     []string        `hcl:"aliases,optional"`
	Templates   []*TemplateDecl `hcl:"template,block"`
}

// PackConfig represents the top-level structure of a pack.hcl manifest file.
type PackConfig struct {
	Pack *Pack    `hcl:"pack,block"`
	Body hcl.Body `hcl:",remain"`
}
