package registry

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/netcli/internal/command"
	"github.com/vk/netcli/internal/ctxlog"
	"github.com/vk/netcli/internal/fsutil"
	"github.com/vk/netcli/internal/platform"
	"github.com/vk/netcli/internal/schema"
	"github.com/zclconf/go-cty/cty"
)

// LoadFS walks fsys from root for pack.hcl manifests and registers every
// template they declare. Template files are read from each manifest's own
// directory. Loading is additive, so the embedded defaults and an on-disk
// pack directory can be layered into one registry.
func (reg *Registry) LoadFS(ctx context.Context, fsys fs.FS, root string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading template packs...", "root", root)

	manifestPaths, err := fsutil.FindFilesByExtension(fsys, root, "pack.hcl")
	if err != nil {
		logger.Error("Failed to walk template pack directory", "root", root, "error", err)
		return err
	}

	if len(manifestPaths) == 0 {
		logger.Warn("No pack.hcl manifests found in path", "root", root)
		return nil
	}

	logger.Debug("Found pack manifests to load", "files", manifestPaths)

	parser := hclparse.NewParser()
	loaded := 0

	for _, manifestPath := range manifestPaths {
		count, err := reg.loadPack(parser, fsys, manifestPath)
		if err != nil {
			return fmt.Errorf("pack %s: %w", manifestPath, err)
		}
		loaded += count
		logger.Debug("Successfully loaded pack manifest", "file", manifestPath, "templates", count)
	}

	logger.Info("Template registry loaded.", "packs", len(manifestPaths), "templates", loaded)
	return nil
}

func (reg *Registry) loadPack(parser *hclparse.Parser, fsys fs.FS, manifestPath string) (int, error) {
	src, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return 0, fmt.Errorf("read manifest: %w", err)
	}

	hclFile, diags := parser.ParseHCL(src, manifestPath)
	if diags.HasErrors() {
		return 0, fmt.Errorf("parse manifest: %w", diags)
	}

	var cfg schema.PackConfig
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
		return 0, fmt.Errorf("decode manifest: %w", diags)
	}
	if cfg.Pack == nil {
		return 0, fmt.Errorf("manifest has no pack block")
	}

	pack := cfg.Pack
	if normalized, err := platform.Normalize(pack.Platform); err != nil || normalized != pack.Platform {
		return 0, fmt.Errorf("pack label %q is not a canonical platform slug", pack.Platform)
	}
	reg.setDescription(pack.Platform, pack.Description)

	for _, alias := range pack.Aliases {
		slug, err := platform.Slugify(alias)
		if err != nil {
			return 0, fmt.Errorf("platform alias %q: %w", alias, err)
		}
		if err := reg.registerPlatformAlias(slug, pack.Platform); err != nil {
			return 0, err
		}
	}

	packDir := path.Dir(manifestPath)
	for _, decl := range pack.Templates {
		if err := reg.loadTemplate(fsys, packDir, pack.Platform, decl); err != nil {
			return 0, fmt.Errorf("template %q: %w", decl.Key, err)
		}
	}

	return len(pack.Templates), nil
}

func (reg *Registry) loadTemplate(fsys fs.FS, packDir, platformSlug string, decl *schema.TemplateDecl) error {
	if normalized, err := command.Normalize(decl.Key); err != nil || normalized != decl.Key {
		return fmt.Errorf("label %q is not a canonical command key", decl.Key)
	}

	source, err := fs.ReadFile(fsys, path.Join(packDir, decl.File))
	if err != nil {
		return fmt.Errorf("read template file: %w", err)
	}

	labels, err := labelsToMap(decl.Labels)
	if err != nil {
		return err
	}

	entry := &Entry{
		Platform:    platformSlug,
		Key:         decl.Key,
		Command:     decl.Command,
		Description: decl.Description,
		File:        decl.File,
		Source:      string(source),
		Labels:      labels,
		Aliases:     decl.Aliases,
	}
	if err := reg.register(entry); err != nil {
		return err
	}

	// The declared command resolves like an alias, so raw-command lookups
	// land on this entry even when the key abbreviates the command.
	if decl.Command != "" {
		slug, err := command.Slugify(decl.Command)
		if err != nil {
			return fmt.Errorf("command %q: %w", decl.Command, err)
		}
		if slug != decl.Key {
			if err := reg.registerKeyAlias(platformSlug, slug, decl.Key); err != nil {
				return err
			}
		}
	}

	for _, alias := range decl.Aliases {
		slug, err := command.Slugify(alias)
		if err != nil {
			return fmt.Errorf("command alias %q: %w", alias, err)
		}
		if err := reg.registerKeyAlias(platformSlug, slug, decl.Key); err != nil {
			return err
		}
	}
	return nil
}

// labelsToMap converts the optional labels attribute, an HCL object of
// strings, into a plain map.
func labelsToMap(v *cty.Value) (map[string]string, error) {
	if v == nil || v.IsNull() {
		return nil, nil
	}
	ty := v.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("labels must be an object of strings, got %s", ty.FriendlyName())
	}

	labels := make(map[string]string)
	for it := v.ElementIterator(); it.Next(); {
		key, val := it.Element()
		if val.Type() != cty.String || val.IsNull() {
			return nil, fmt.Errorf("label %q must be a string", key.AsString())
		}
		labels[key.AsString()] = val.AsString()
	}
	return labels, nil
}
