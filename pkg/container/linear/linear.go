// Package linear provides a container.Mapper implementation
// backed by a slice and linear search.
// Visit follows insertion order, which makes it the container
// of choice when output must be reproducible.
package linear

import "slices"

type entry[K comparable, V any] struct {
	Key   K
	Value V
}

type Linear[K comparable, V any] struct {
	d []entry[K, V]
}

func New[K comparable, V any](capacity int) *Linear[K, V] {
	return &Linear[K, V]{d: make([]entry[K, V], 0, capacity)}
}

// index returns the position of key or -1.
func (m *Linear[K, V]) index(key K) int {
	for i := range m.d {
		if m.d[i].Key == key {
			return i
		}
	}
	return -1
}

func (m *Linear[K, V]) Has(key K) bool { return m.index(key) != -1 }

func (m *Linear[K, V]) Get(key K) (v V, ok bool) {
	if i := m.index(key); i != -1 {
		return m.d[i].Value, true
	}
	return v, false
}

// Set overwrites the value of an existing key in place,
// new keys are appended.
func (m *Linear[K, V]) Set(key K, value V) {
	if i := m.index(key); i != -1 {
		m.d[i].Value = value
		return
	}
	m.d = append(m.d, entry[K, V]{Key: key, Value: value})
}

// Delete preserves the order of the remaining entries.
func (m *Linear[K, V]) Delete(key K) {
	if i := m.index(key); i != -1 {
		m.d = slices.Delete(m.d, i, i+1)
	}
}

func (m *Linear[K, V]) Reset() {
	clear(m.d)
	m.d = m.d[:0]
}

func (m *Linear[K, V]) Len() int { return len(m.d) }

func (m *Linear[K, V]) Visit(fn func(K, V) (stop bool)) {
	for i := range m.d {
		if fn(m.d[i].Key, m.d[i].Value) {
			return
		}
	}
}
