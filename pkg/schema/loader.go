package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Template is a serialised form definition: an id, an optional title, and the
// ordered field list. Templates round-trip losslessly through JSON so form
// definitions can be persisted and reloaded.
type Template struct {
	ID     string            `json:"id" yaml:"id"`
	Title  string            `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
}

// Store holds templates loaded from a filesystem, keyed by template id.
type Store struct {
	templates map[string]Template
}

// Template returns the template registered under id.
func (s *Store) Template(id string) (Template, bool) {
	if s == nil {
		return Template{}, false
	}
	tpl, ok := s.templates[id]
	return tpl, ok
}

// Empty reports whether the store holds any templates.
func (s *Store) Empty() bool {
	return s == nil || len(s.templates) == 0
}

// LoadFS walks the provided filesystem and parses JSON/YAML form templates.
// Display text is sanitised and every template is schema-validated; a
// malformed template aborts the whole load since it indicates a defective
// deployment, not bad user input.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := &Store{templates: make(map[string]Template)}
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isTemplateFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("schema: read %s: %w", path, err)
		}

		tpl, err := ParseTemplate(data)
		if err != nil {
			return fmt.Errorf("schema: parse %s: %w", path, err)
		}
		if _, exists := store.templates[tpl.ID]; exists {
			return fmt.Errorf("schema: duplicate template id %q (file %s)", tpl.ID, path)
		}
		store.templates[tpl.ID] = tpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// ParseTemplate decodes a single template document from JSON or YAML,
// sanitises its display text, and validates the field list.
func ParseTemplate(data []byte) (Template, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Template{}, fmt.Errorf("schema: template document is empty")
	}

	var tpl Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		if yamlErr := yaml.Unmarshal(data, &tpl); yamlErr != nil {
			return Template{}, fmt.Errorf("schema: template is not valid JSON or YAML")
		}
	}

	if strings.TrimSpace(tpl.ID) == "" {
		return Template{}, fmt.Errorf("schema: template id is required")
	}
	tpl.Title = sanitizeText(tpl.Title)
	for i := range tpl.Fields {
		sanitizeField(&tpl.Fields[i])
	}
	if err := Validate(tpl.Fields); err != nil {
		return Template{}, err
	}
	return tpl, nil
}

func isTemplateFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
