package menu

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed default_menu.json
var defaultMenuJSON []byte

// Catalog maps category name to item name to item definition. It is loaded
// once at startup and read-only afterwards.
type Catalog map[string]map[string]MenuItem

// Load reads the catalog from path, or falls back to the embedded default
// menu when path is empty.
func Load(path string) (Catalog, error) {
	data := defaultMenuJSON
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read menu file: %w", err)
		}
		data = b
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}
	return c, nil
}

// Find looks up an item by exact name across all categories.
func (c Catalog) Find(name string) (MenuItem, bool) {
	for _, items := range c {
		if item, ok := items[name]; ok {
			return item, true
		}
	}
	return MenuItem{}, false
}
