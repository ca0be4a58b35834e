package drivers

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
)

type Driver struct {
	Name string `json:"name"`
}

// Store persists the courier roster as a JSON file. Entries may have been
// hand-edited, so reads go through Sanitize before being served.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// LoadRaw returns the roster as stored, tolerating a missing or malformed
// file as an empty list.
func (s *Store) LoadRaw() []any {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return []any{}
	}
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return []any{}
	}
	return raw
}

func (s *Store) Save(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Sanitize trims names, drops empty or non-record entries and removes
// duplicates, keeping first appearance order. The second result reports
// whether the cleaned roster differs from the raw one.
func Sanitize(raw []any) ([]Driver, bool) {
	cleaned := make([]Driver, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	changed := false

	for _, entry := range raw {
		record, ok := entry.(map[string]any)
		if !ok {
			changed = true
			continue
		}
		name, _ := record["name"].(string)
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || seen[trimmed] {
			changed = true
			continue
		}
		if trimmed != name || len(record) != 1 {
			changed = true
		}
		cleaned = append(cleaned, Driver{Name: trimmed})
		seen[trimmed] = true
	}
	return cleaned, changed
}
