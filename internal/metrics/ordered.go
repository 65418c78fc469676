package metrics

// orderedMap is a map that iterates in first-insertion order, so stable sorts
// over its values break ties by first appearance.
type orderedMap[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{index: make(map[K]int)}
}

// upsert returns a pointer to the value for k, inserting init() on first use.
// The pointer is valid until the next insertion.
func (m *orderedMap[K, V]) upsert(k K, init func() V) *V {
	if i, ok := m.index[k]; ok {
		return &m.vals[i]
	}
	m.index[k] = len(m.keys)
	m.keys = append(m.keys, k)
	m.vals = append(m.vals, init())
	return &m.vals[len(m.vals)-1]
}

func (m *orderedMap[K, V]) len() int { return len(m.keys) }

func (m *orderedMap[K, V]) values() []V {
	out := make([]V, len(m.vals))
	copy(out, m.vals)
	return out
}

func (m *orderedMap[K, V]) each(fn func(K, V)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}
