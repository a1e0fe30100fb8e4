// Package platform normalizes network-platform identifiers into the
// canonical slugs used for template resolution.
package platform

import (
	"fmt"
	"regexp"
	"strings"
)

// Well-known canonical slugs.
const (
	CiscoIOS      = "cisco_ios"
	CiscoNXOS     = "cisco_nxos"
	CiscoIOSXR    = "cisco_iosxr"
	JuniperJunos  = "juniper_junos"
	AristaEOS     = "arista_eos"
	DrivenetsDNOS = "drivenets_dnos"
)

var slugRegex = regexp.MustCompile(`^[a-z0-9_]+$`)

// aliases maps common shorthand names onto canonical slugs. Registry packs
// can extend the set at load time; these are always available.
var aliases = map[string]string{
	"ios":       CiscoIOS,
	"nxos":      CiscoNXOS,
	"nx_os":     CiscoNXOS,
	"iosxr":     CiscoIOSXR,
	"ios_xr":    CiscoIOSXR,
	"junos":     JuniperJunos,
	"eos":       AristaEOS,
	"dnos":      DrivenetsDNOS,
	"drivenets": DrivenetsDNOS,
}

// Slugify lower-cases a raw platform identifier, trims surrounding
// whitespace, and folds hyphens to underscores, without applying the alias
// table. Registry packs use it to store their own alias declarations in the
// same form Normalize produces for user input.
func Slugify(raw string) (string, error) {
	slug := strings.TrimSpace(raw)
	if slug == "" {
		return "", fmt.Errorf("platform is empty")
	}
	slug = strings.ToLower(slug)
	slug = strings.ReplaceAll(slug, "-", "_")
	if !slugRegex.MatchString(slug) {
		return "", fmt.Errorf("invalid platform %q", raw)
	}
	return slug, nil
}

// Normalize canonicalizes a raw platform identifier: trims surrounding
// whitespace, lower-cases, folds hyphens to underscores, and resolves
// well-known aliases. Unknown but well-formed slugs pass through untouched;
// whether a template exists for them is the registry's call.
func Normalize(raw string) (string, error) {
	slug, err := Slugify(raw)
	if err != nil {
		return "", err
	}
	if canonical, ok := aliases[slug]; ok {
		return canonical, nil
	}
	return slug, nil
}
