// Package weakmap provides a map keyed by pointers which doesn't keep
// its keys alive. Once a key becomes unreachable and is reclaimed by the
// garbage collector its entry is removed from the map.
//
// There is no way to enumerate the entries or to tell how many there are,
// since the answer would depend on when the collector last ran.
//
// Values must not reference their own keys, directly or indirectly,
// otherwise the key remains reachable through the map and is never
// reclaimed.
package weakmap

import (
	"runtime"
	"sync"
	"weak"
)

// Map associates values with pointers without keeping the pointers alive.
// Map is not meant for concurrent use, the internal lock only synchronizes
// with evictions running on the runtime's cleanup goroutine.
// Neither the keys nor the cleanups they carry keep the map alive.
type Map[K, V any] struct {
	lock sync.Mutex
	m    map[weak.Pointer[K]]entry[V]
}

type entry[V any] struct {
	value   V
	cleanup runtime.Cleanup
}

// eviction is the argument of evict. The map is referenced weakly
// since the key's cleanup lives as long as the key does.
type eviction[K, V any] struct {
	m   weak.Pointer[Map[K, V]]
	key weak.Pointer[K]
}

func New[K, V any]() *Map[K, V] {
	return &Map[K, V]{m: make(map[weak.Pointer[K]]entry[V])}
}

// Has returns true if key is associated with a value.
func (m *Map[K, V]) Has(key *K) bool {
	if key == nil {
		return false
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	_, ok := m.m[weak.Make(key)]
	return ok
}

// Get returns (value, true) if key exists,
// otherwise returns (zeroValue, false).
func (m *Map[K, V]) Get(key *K) (value V, ok bool) {
	if key == nil {
		return value, false
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	e, ok := m.m[weak.Make(key)]
	return e.value, ok
}

// Set associates key with value overwriting any existing association.
// Panics if key is nil.
func (m *Map[K, V]) Set(key *K, value V) {
	if key == nil {
		panic("weakmap: nil key")
	}
	wp := weak.Make(key)

	m.lock.Lock()
	defer m.lock.Unlock()
	if e, ok := m.m[wp]; ok {
		e.value = value
		m.m[wp] = e
		return
	}
	m.m[wp] = entry[V]{
		value: value,
		cleanup: runtime.AddCleanup(key, evict[K, V], eviction[K, V]{
			m:   weak.Make(m),
			key: wp,
		}),
	}
}

// Delete removes key and returns true if it existed.
func (m *Map[K, V]) Delete(key *K) bool {
	if key == nil {
		return false
	}
	wp := weak.Make(key)

	m.lock.Lock()
	defer m.lock.Unlock()
	e, ok := m.m[wp]
	if !ok {
		return false
	}
	e.cleanup.Stop()
	delete(m.m, wp)
	return true
}

// evict is called by the runtime after the key was reclaimed.
// Noop if the map was reclaimed first.
func evict[K, V any](e eviction[K, V]) {
	m := e.m.Value()
	if m == nil {
		return
	}
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.m, e.key)
}
