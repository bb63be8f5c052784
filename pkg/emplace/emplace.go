// Package emplace implements a conditional upsert for externally owned
// containers: a value is inserted if the key is absent or updated in place
// if the key is present, and the resulting value is returned in both cases.
//
// Two entry points are provided. Map operates on enumerable containers
// such as the ones found in package container. WeakMap operates on
// containers with pointer keys that do not keep their keys alive,
// see package weakmap.
//
// Neither entry point provides synchronization. Callers sharing a container
// between goroutines must serialize access to it.
package emplace

// Container is the capability set required by Emplace.
// Get is only called after Has reported the key as present.
type Container[K, V any] interface {
	Has(key K) bool
	Get(key K) (value V, ok bool)
	Set(key K, value V)
}

// Enumerable is a Container that can also report its size
// and visit its entries.
type Enumerable[K, V any] interface {
	Container[K, V]
	Len() int
	Visit(fn func(key K, value V) (stop bool))
}

// Handler is a set of optional callbacks for a single Emplace call.
// A nil field is an absent handler. The zero Handler has neither.
type Handler[K, V, M any] struct {
	// Insert produces the value to store when key is absent.
	Insert func(key K, m M) V

	// Update produces the replacement of value when key is present.
	Update func(value V, key K, m M) V
}

// Emplace inserts the value produced by h.Insert if key doesn't exist in m.
// Otherwise it replaces the existing value by the one produced by h.Update.
// If key exists and h.Update is nil then the existing value is returned
// and m isn't written to.
// Returns *ErrorInsertHandlerMissing if key doesn't exist and h.Insert
// is nil, in which case m remains untouched.
//
// Handlers are passed m and may freely read and write other keys,
// including calling Emplace recursively. Panics raised by handlers
// propagate unchanged and the value is not stored.
func Emplace[K, V any, M Container[K, V]](
	m M, key K, h Handler[K, V, M],
) (value V, err error) {
	if m.Has(key) {
		value, _ = m.Get(key)
		if h.Update == nil {
			return value, nil
		}
		value = h.Update(value, key, m)
		m.Set(key, value)
		return value, nil
	}

	if h.Insert == nil {
		return value, &ErrorInsertHandlerMissing[K]{Key: key}
	}
	value = h.Insert(key, m)
	m.Set(key, value)
	return value, nil
}

// Map is Emplace for enumerable containers.
func Map[K, V any, M Enumerable[K, V]](
	m M, key K, h Handler[K, V, M],
) (V, error) {
	return Emplace[K, V, M](m, key, h)
}

// WeakMap is Emplace for containers keyed by pointers
// which must not keep their keys alive.
func WeakMap[K, V any, M Container[*K, V]](
	m M, key *K, h Handler[*K, V, M],
) (V, error) {
	return Emplace[*K, V, M](m, key, h)
}
