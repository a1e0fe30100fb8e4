// Package command turns raw CLI command strings into the stable keys the
// template registry is indexed by.
package command

import (
	"fmt"
	"regexp"
	"strings"
)

// Well-known command keys with bundled templates.
const (
	ShowVersion         = "show_version"
	ShowInterfacesBrief = "show_interfaces_brief"
	ShowInventory       = "show_inventory"
	ShowBGPSummary      = "show_bgp_summary"
	ShowIPRoute         = "show_ip_route"
	ShowLLDPNeighbors   = "show_lldp_neighbors"
)

var (
	keyRegex        = regexp.MustCompile(`^[a-z0-9_]+$`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// aliases maps common abbreviated keys onto canonical ones.
var aliases = map[string]string{
	"show_int_brief": ShowInterfacesBrief,
}

// Slugify turns a raw command string into key form: whitespace runs
// collapse to single underscores, everything is lower-cased, and hyphens
// fold to underscores. The alias table is not applied; registry packs use
// Slugify to store alias declarations in the same form Normalize produces.
func Slugify(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return "", fmt.Errorf("command is empty")
	}
	key = strings.ToLower(key)
	key = whitespaceRegex.ReplaceAllString(key, "_")
	key = strings.ReplaceAll(key, "-", "_")
	if !keyRegex.MatchString(key) {
		return "", fmt.Errorf("invalid command %q", raw)
	}
	return key, nil
}

// Normalize turns a raw command string into its registry key: whitespace
// runs collapse to single underscores, everything is lower-cased, hyphens
// fold to underscores, and known abbreviations resolve to their canonical
// key. Already-normalized keys come back unchanged, so normalization is
// idempotent: "show ip bgp summary" and "show_ip_bgp_summary" both yield
// show_ip_bgp_summary.
func Normalize(raw string) (string, error) {
	key, err := Slugify(raw)
	if err != nil {
		return "", err
	}
	if canonical, ok := aliases[key]; ok {
		return canonical, nil
	}
	return key, nil
}
