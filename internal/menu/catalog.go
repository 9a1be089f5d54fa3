// Package menu contains the HTTP server for the menu/order service: a
// read-only catalog and a stub order intake.
package menu

import (
	_ "embed"
	"fmt"
	"os"

	"tastetrip/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yml
var defaultCatalog []byte

// Catalog is the fixed, read-only list of orderable menu items. It is loaded
// once at process start and never mutated afterwards, so concurrent reads
// need no synchronization.
type Catalog struct {
	items []models.MenuItem
}

type catalogFile struct {
	Items []models.MenuItem `yaml:"items"`
}

// LoadCatalog reads the catalog from the given YAML file, or from the
// embedded default when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
		data = b
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(file.Items) == 0 {
		return nil, fmt.Errorf("catalog contains no items")
	}

	for i, item := range file.Items {
		if item.ID == "" || item.Name == "" {
			return nil, fmt.Errorf("catalog item %d is missing an id or name", i)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("catalog item %q has a negative price", item.ID)
		}
		if item.Rating < 0 || item.Rating > 5 {
			return nil, fmt.Errorf("catalog item %q has a rating outside 0-5", item.ID)
		}
	}

	return &Catalog{items: file.Items}, nil
}

// Items returns all catalog entries in insertion order. The returned slice is
// a copy so callers cannot mutate the catalog.
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.items)
}
