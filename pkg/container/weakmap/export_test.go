package weakmap

// Len is only exported to tests: outside of them the number
// of entries depends on the collector and is meaningless.
func (m *Map[K, V]) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.m)
}
