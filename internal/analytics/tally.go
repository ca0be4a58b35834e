package analytics

// tally is a counter map that remembers first-appearance order of its
// keys, so ranking ties stay stable across runs regardless of map
// iteration order.
type tally[T int | float64] struct {
	keys   []string
	values map[string]T
}

func newTally[T int | float64]() *tally[T] {
	return &tally[T]{values: make(map[string]T)}
}

func (t *tally[T]) add(key string, delta T) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.values[key] += delta
}

func (t *tally[T]) touch(key string) {
	if _, ok := t.values[key]; !ok {
		t.keys = append(t.keys, key)
		t.values[key] = 0
	}
}

func (t *tally[T]) set(key string, v T) {
	t.touch(key)
	t.values[key] = v
}

func (t *tally[T]) get(key string) T {
	return t.values[key]
}
