// Package template holds the style template catalog and the merge engine that
// overlays template defaults onto element settings.
package template

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"postcraft/internal/domain"
)

//go:embed templates.yaml
var builtinTemplates []byte

// Catalog is an immutable, ordered set of style templates.
type Catalog struct {
	templates []domain.StyleTemplate
	byID      map[string]int
}

// Parse decodes and validates a YAML list of templates.
func Parse(data []byte) (*Catalog, error) {
	var list []domain.StyleTemplate
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("template: decode catalog: %w", err)
	}
	c := &Catalog{templates: list, byID: make(map[string]int, len(list))}
	for i, t := range list {
		if t.ID == "" {
			return nil, fmt.Errorf("template: entry %d has no id", i)
		}
		if _, dup := c.byID[t.ID]; dup {
			return nil, fmt.Errorf("template: duplicate id %q", t.ID)
		}
		if err := validate(t); err != nil {
			return nil, fmt.Errorf("template %q: %w", t.ID, err)
		}
		c.byID[t.ID] = i
	}
	return c, nil
}

func validate(t domain.StyleTemplate) error {
	if err := t.Defaults.GlobalSetting.Validate(); err != nil {
		return err
	}
	for typ, def := range t.Defaults.ElementDefaults {
		if !typ.Valid() {
			return fmt.Errorf("element default for unknown type %q: %w", typ, domain.ErrSchemaViolation)
		}
		if def.Decoration != nil {
			if err := def.Decoration.Validate(); err != nil {
				return fmt.Errorf("%s: %w", typ, err)
			}
		}
	}
	return nil
}

var (
	builtinOnce    sync.Once
	builtinCatalog *Catalog
)

// Builtin returns the catalog compiled into the binary. It is parsed once.
func Builtin() *Catalog {
	builtinOnce.Do(func() {
		c, err := Parse(builtinTemplates)
		if err != nil {
			panic(err)
		}
		builtinCatalog = c
	})
	return builtinCatalog
}

// List returns the templates in catalog order.
func (c *Catalog) List() []domain.StyleTemplate {
	return append([]domain.StyleTemplate(nil), c.templates...)
}

// Get looks a template up by id.
func (c *Catalog) Get(id string) (domain.StyleTemplate, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.StyleTemplate{}, fmt.Errorf("template %q: %w", id, domain.ErrTemplateNotFound)
	}
	return c.templates[i], nil
}
