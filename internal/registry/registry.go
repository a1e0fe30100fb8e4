package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrNotFound reports that no template is registered for a platform and
// command key pair.
var ErrNotFound = errors.New("template not found")

// Entry is one registered template: the parse target for a single
// (platform, command key) pair. Entries are immutable once loaded.
type Entry struct {
	Platform    string
	Key         string
	Command     string
	Description string
	File        string
	Source      string
	Labels      map[string]string
	Aliases     []string
}

// Registry holds the template entries of all loaded packs, indexed by
// canonical platform slug and command key.
type Registry struct {
	mu              sync.RWMutex
	entries         map[string]map[string]*Entry
	platformAliases map[string]string
	keyAliases      map[string]map[string]string
	descriptions    map[string]string
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{
		entries:         make(map[string]map[string]*Entry),
		platformAliases: make(map[string]string),
		keyAliases:      make(map[string]map[string]string),
		descriptions:    make(map[string]string),
	}
}

// Resolve returns the entry for a canonical platform slug and command key.
// The exact pair wins; pack-declared aliases are consulted only on a miss.
// Anything else reports ErrNotFound wrapped with the pair that failed.
func (reg *Registry) Resolve(platform, key string) (*Entry, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	keys, ok := reg.entries[platform]
	if !ok {
		if canonical, aliased := reg.platformAliases[platform]; aliased {
			platform = canonical
			keys = reg.entries[platform]
		}
	}
	if keys == nil {
		return nil, fmt.Errorf("no templates for platform %q: %w", platform, ErrNotFound)
	}

	entry, ok := keys[key]
	if !ok {
		if canonical, aliased := reg.keyAliases[platform][key]; aliased {
			entry, ok = keys[canonical]
		}
	}
	if !ok {
		return nil, fmt.Errorf("no template for platform %q command %q: %w", platform, key, ErrNotFound)
	}
	return entry, nil
}

// Platforms returns the canonical slugs of all loaded packs, sorted.
func (reg *Registry) Platforms() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	platforms := make([]string, 0, len(reg.entries))
	for slug := range reg.entries {
		platforms = append(platforms, slug)
	}
	sort.Strings(platforms)
	return platforms
}

// Entries returns the entries registered for a platform, sorted by key.
// A platform with no pack yields nil.
func (reg *Registry) Entries(platform string) []*Entry {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	keys := reg.entries[platform]
	if keys == nil {
		return nil
	}
	entries := make([]*Entry, 0, len(keys))
	for _, entry := range keys {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

// Description returns the pack description recorded for a platform, or ""
// when the pack declared none.
func (reg *Registry) Description(platform string) string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.descriptions[platform]
}

// Len reports the total number of registered entries across all platforms.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	total := 0
	for _, keys := range reg.entries {
		total += len(keys)
	}
	return total
}

func (reg *Registry) register(entry *Entry) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	keys := reg.entries[entry.Platform]
	if keys == nil {
		keys = make(map[string]*Entry)
		reg.entries[entry.Platform] = keys
	}
	if _, exists := keys[entry.Key]; exists {
		return fmt.Errorf("duplicate template %s/%s", entry.Platform, entry.Key)
	}
	keys[entry.Key] = entry
	return nil
}

func (reg *Registry) registerPlatformAlias(alias, platform string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if existing, ok := reg.platformAliases[alias]; ok && existing != platform {
		return fmt.Errorf("platform alias %q already bound to %q", alias, existing)
	}
	reg.platformAliases[alias] = platform
	return nil
}

func (reg *Registry) registerKeyAlias(platform, alias, key string) error {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	byAlias := reg.keyAliases[platform]
	if byAlias == nil {
		byAlias = make(map[string]string)
		reg.keyAliases[platform] = byAlias
	}
	if existing, ok := byAlias[alias]; ok && existing != key {
		return fmt.Errorf("command alias %q already bound to %q", alias, existing)
	}
	byAlias[alias] = key
	return nil
}

func (reg *Registry) setDescription(platform, description string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if description != "" {
		reg.descriptions[platform] = description
	}
}
