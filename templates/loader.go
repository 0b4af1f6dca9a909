package templates

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-composer/sections"
)

// LoadDir reads template definition files from a directory and registers them
// into the catalog. Definitions are markdown files with YAML frontmatter: the
// frontmatter carries id, name, type, and the defaults bag; the body becomes
// the template description. Files that fail to parse abort the load so a
// broken catalog never reaches operators.
func LoadDir(catalog *Catalog, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("templates: read catalog dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("templates: read %s: %w", path, err)
		}
		template, err := ParseDefinition(source)
		if err != nil {
			return fmt.Errorf("templates: parse %s: %w", path, err)
		}
		if err := catalog.Register(template); err != nil {
			return err
		}
	}
	return nil
}

// ParseDefinition extracts a Template from a markdown definition source.
func ParseDefinition(source []byte) (Template, error) {
	var meta definitionEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return Template{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	template := Template{
		ID:          meta.ID,
		SectionType: sections.Type(strings.ToLower(strings.TrimSpace(meta.Type))),
		Name:        meta.Name,
		Description: strings.TrimSpace(string(body)),
		Defaults:    normalizeBag(meta.Defaults),
	}
	if template.ID == "" {
		template.ID = template.Name
	}
	return template, nil
}

type definitionEnvelope struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type"`
	Defaults map[string]any `yaml:"defaults"`
}

// normalizeBag rewrites the YAML decoder's map[interface{}]interface{} values
// into the JSON-compatible shapes the rest of the engine expects.
func normalizeBag(raw map[string]any) sections.PropertyBag {
	if raw == nil {
		return nil
	}
	bag := make(sections.PropertyBag, len(raw))
	for key, value := range raw {
		bag[key] = normalizeValue(value)
	}
	return bag
}

func normalizeValue(value any) any {
	switch typed := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[fmt.Sprint(k)] = normalizeValue(v)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(typed))
		for k, v := range typed {
			out[k] = normalizeValue(v)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for i, v := range typed {
			out[i] = normalizeValue(v)
		}
		return out
	default:
		return value
	}
}
