package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/widgetspec/pkg/util"
)

// ErrNotFound is returned by surfaces (HTTP, MCP) when a widget lookup misses.
// The query methods themselves report misses with a bool or an empty slice.
var ErrNotFound = errors.New("widget not found")

// Catalog holds every widget record in display order.
type Catalog struct {
	Name    string   `json:"name" yaml:"name"`
	Version string   `json:"version" yaml:"version"`
	Widgets []Widget `json:"widgets" yaml:"widgets"`
}

// CatalogIndex provides O(1) lookups into the catalog.
// Slices preserve catalog order.
type CatalogIndex struct {
	WidgetByID   map[string]*Widget
	WidgetByPath map[string]*Widget

	WidgetsByCategory   map[Category][]*Widget
	WidgetsByDifficulty map[Difficulty][]*Widget
	WidgetsByTag        map[string][]*Widget
}

// Validate checks the catalog for internal consistency.
// Returns a slice of validation errors (empty slice if valid).
func (c *Catalog) Validate() []error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, fmt.Errorf("catalog name is required"))
	}
	if c.Version == "" {
		errs = append(errs, fmt.Errorf("catalog version is required"))
	}

	ids := make(map[string]bool, len(c.Widgets))
	paths := make(map[string]string, len(c.Widgets))

	for i := range c.Widgets {
		w := &c.Widgets[i]
		errs = append(errs, checkFields(w, i)...)
		if w.ID == "" {
			continue
		}

		if ids[w.ID] {
			errs = append(errs, fmt.Errorf("widget %q: duplicate id", w.ID))
			continue
		}
		ids[w.ID] = true

		if w.Path != "" {
			if owner, taken := paths[w.Path]; taken {
				errs = append(errs, fmt.Errorf("widget %q: path %q already used by %q", w.ID, w.Path, owner))
			} else {
				paths[w.Path] = w.ID
			}
		}

		if w.Category != "" && !w.Category.Valid() {
			errs = append(errs, fmt.Errorf("widget %q: unknown category %q", w.ID, w.Category))
		}
		if w.Difficulty != "" && !w.Difficulty.Valid() {
			errs = append(errs, fmt.Errorf("widget %q: unknown difficulty %q", w.ID, w.Difficulty))
		}

		for locale, entries := range w.FAQs {
			if !locale.Valid() {
				errs = append(errs, fmt.Errorf("widget %q: unknown FAQ locale %q", w.ID, locale))
				continue
			}
			for j, faq := range entries {
				if strings.TrimSpace(faq.Question) == "" || strings.TrimSpace(faq.Answer) == "" {
					errs = append(errs, fmt.Errorf("widget %q faqs[%s][%d]: question and answer are required", w.ID, locale, j))
				}
			}
		}

		for j, tag := range w.Tags {
			if strings.TrimSpace(tag) == "" {
				errs = append(errs, fmt.Errorf("widget %q tags[%d]: empty tag", w.ID, j))
			}
		}
	}

	// Recommendations must point at other widgets that exist, once each.
	for _, w := range c.Widgets {
		if w.ID == "" {
			continue
		}
		seen := make(map[string]bool, len(w.RecommendedTools))
		for _, ref := range w.RecommendedTools {
			switch {
			case ref == w.ID:
				errs = append(errs, fmt.Errorf("widget %q: recommends itself", w.ID))
			case !ids[ref]:
				errs = append(errs, fmt.Errorf("widget %q: recommends non-existent widget %q", w.ID, ref))
			case seen[ref]:
				errs = append(errs, fmt.Errorf("widget %q: recommends %q more than once", w.ID, ref))
			}
			seen[ref] = true
		}
	}

	return errs
}

// BuildIndex creates lookup maps for fast access.
// Should be called after Validate() passes.
func (c *Catalog) BuildIndex() *CatalogIndex {
	idx := &CatalogIndex{
		WidgetByID:          make(map[string]*Widget, len(c.Widgets)),
		WidgetByPath:        make(map[string]*Widget, len(c.Widgets)),
		WidgetsByCategory:   make(map[Category][]*Widget, len(Categories)),
		WidgetsByDifficulty: make(map[Difficulty][]*Widget, len(Difficulties)),
		WidgetsByTag:        make(map[string][]*Widget),
	}

	for i := range c.Widgets {
		w := &c.Widgets[i]
		if _, dup := idx.WidgetByID[w.ID]; !dup {
			idx.WidgetByID[w.ID] = w
		}
		if _, dup := idx.WidgetByPath[w.Path]; !dup {
			idx.WidgetByPath[w.Path] = w
		}
		idx.WidgetsByCategory[w.Category] = append(idx.WidgetsByCategory[w.Category], w)
		idx.WidgetsByDifficulty[w.Difficulty] = append(idx.WidgetsByDifficulty[w.Difficulty], w)

		seen := make(map[string]bool, len(w.Tags))
		for _, tag := range w.Tags {
			key := strings.ToLower(tag)
			if seen[key] {
				continue
			}
			seen[key] = true
			idx.WidgetsByTag[key] = append(idx.WidgetsByTag[key], w)
		}
	}

	return idx
}

// LoadFromFile loads a catalog from a JSON or YAML file (chosen by extension),
// validates it, and builds the index.
func LoadFromFile(path string) (*Catalog, *CatalogIndex, error) {
	data, err := util.ReadMapped(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadFromYAML(data)
	default:
		return LoadFromBytes(data)
	}
}

// LoadFromBytes parses a catalog from raw JSON bytes, validates it, and builds the index.
func LoadFromBytes(data []byte) (*Catalog, *CatalogIndex, error) {
	var catalog Catalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return finish(&catalog)
}

// LoadFromYAML parses a catalog from raw YAML bytes, validates it, and builds the index.
func LoadFromYAML(data []byte) (*Catalog, *CatalogIndex, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	return finish(&catalog)
}

func finish(catalog *Catalog) (*Catalog, *CatalogIndex, error) {
	if errs := catalog.Validate(); len(errs) > 0 {
		return nil, nil, fmt.Errorf("catalog validation failed: %w", errors.Join(errs...))
	}
	return catalog, catalog.BuildIndex(), nil
}
