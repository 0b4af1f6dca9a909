package templates

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-composer/sections"
)

var ErrTemplateExists = errors.New("templates: template already registered for section type")

// Catalog is the static registry of section templates, keyed by section type.
// It is read-only for the process lifetime once assembled; there is no
// runtime mutation path beyond Register and no persistence.
type Catalog struct {
	mu      sync.RWMutex
	entries map[sections.Type][]Template
}

// NewCatalog constructs an empty template catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		entries: make(map[sections.Type][]Template),
	}
}

// Register validates the template, normalizes its ID, and appends it to the
// section type's list in registration order.
func (c *Catalog) Register(t Template) error {
	t.ID = normalizeKey(t.ID)
	if err := t.Validate(); err != nil {
		return fmt.Errorf("templates: register %q: %w", t.ID, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, existing := range c.entries[t.SectionType] {
		if existing.ID == t.ID {
			return fmt.Errorf("%w: %s/%s", ErrTemplateExists, t.SectionType, t.ID)
		}
	}

	t.Defaults = t.Defaults.Clone()
	c.entries[t.SectionType] = append(c.entries[t.SectionType], t)
	return nil
}

// List returns the templates registered for a section type, in registration
// order. Unknown types yield an empty list, never an error, so callers can
// probe safely.
func (c *Catalog) List(sectionType sections.Type) []Template {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := c.entries[sectionType]
	out := make([]Template, len(entries))
	for i, entry := range entries {
		out[i] = entry
		out[i].Defaults = entry.Defaults.Clone()
	}
	return out
}

// Get looks up one template by section type and ID.
func (c *Catalog) Get(sectionType sections.Type, id string) (Template, bool) {
	key := normalizeKey(id)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, entry := range c.entries[sectionType] {
		if entry.ID == key {
			entry.Defaults = entry.Defaults.Clone()
			return entry, true
		}
	}
	return Template{}, false
}

func normalizeKey(id string) string {
	candidate := strings.TrimSpace(id)
	if candidate == "" {
		return ""
	}
	normalizer := slug.Default()
	normalized, err := normalizer.Normalize(candidate)
	if err != nil || normalized == "" {
		return candidate
	}
	return normalized
}
