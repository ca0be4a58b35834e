package costs

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/Goblincake/delicatessenV8/internal/numeric"
)

// Store persists the per-item unit-cost overrides used by analytics.
// Overrides take precedence over the catalog's built-in costs.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the override mapping, treating a missing or malformed file
// as empty.
func (s *Store) Load() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]any{}
	}
	var overrides map[string]any
	if err := json.Unmarshal(data, &overrides); err != nil {
		return map[string]any{}
	}
	return overrides
}

func (s *Store) Save(overrides map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if overrides == nil {
		overrides = map[string]any{}
	}
	data, err := json.MarshalIndent(overrides, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

// Normalize coerces override values to numbers where possible (accepting
// comma decimal separators) and keeps the raw value when coercion fails.
func Normalize(overrides map[string]any) map[string]any {
	norm := make(map[string]any, len(overrides))
	for name, v := range overrides {
		if f, ok := numeric.FloatOK(v); ok {
			norm[name] = f
		} else {
			norm[name] = v
		}
	}
	return norm
}
