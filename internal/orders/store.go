package orders

import (
	"encoding/json"
	"os"
	"sync"
)

// Store persists the order log as one JSON file. A missing or malformed
// file reads as an empty log. Load and save are serialized with a mutex;
// callers doing read-modify-write cycles hold their own lock on top.
type Store struct {
	mu   sync.Mutex
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) LoadAll() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return []Order{}
	}
	var orders []Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return []Order{}
	}
	return orders
}

func (s *Store) SaveAll(orders []Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(orders, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
