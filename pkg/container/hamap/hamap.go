// Package hamap provides a collision-safe hash map implementing
// container.Mapper for string and []byte keys.
// Buckets are kept in a slice ordered by key hash and are looked up
// by binary search, which for small maps is cheaper than Go's native map
// and allows resetting without releasing memory.
// Colliding keys are chained and only those chains allocate.
// By default keys are hashed with XXH3 from github.com/zeebo/xxh3.
package hamap

import (
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/pierrec/xxHash/xxHash64"
	"github.com/zeebo/xxh3"
)

type KeyInterface interface{ string | []byte }

// expSearchThreshold is the bucket count starting from which
// exponential search replaces plain binary search.
const expSearchThreshold = 256

type bucket[K KeyInterface, V any] struct {
	hash uint64
	head pair[K, V]
}

type pair[K KeyInterface, V any] struct {
	key   K
	value V
	next  *pair[K, V]
}

type Hasher[K KeyInterface] interface{ Hash(K) uint64 }

// HasherXXH3 hashes keys with XXH3 using Seed.
type HasherXXH3[K KeyInterface] struct {
	Seed uint64
}

// Hash hashes k to a 64-bit hash value.
func (h *HasherXXH3[K]) Hash(k K) uint64 {
	return xxh3.HashSeed([]byte(k), h.Seed)
}

// HasherXXH64 hashes keys with XXH64 using Seed.
type HasherXXH64[K KeyInterface] struct {
	Seed uint64
}

// Hash hashes k to a 64-bit hash value.
func (h *HasherXXH64[K]) Hash(k K) uint64 {
	d := xxHash64.New(h.Seed)
	_, _ = d.Write([]byte(k))
	return d.Sum64()
}

// Map is a hash map ordered by key hash.
//
// WARNING: []byte keys are aliased and must remain immutable
// until they're deleted or the map is reset!
type Map[K KeyInterface, V any] struct {
	len     int
	buckets []bucket[K, V]
	hasher  Hasher[K]
}

// New creates a new map with room for capacity buckets.
// XXH3 with seed 0 is used if hasher is nil.
func New[K KeyInterface, V any](capacity int, hasher Hasher[K]) *Map[K, V] {
	if hasher == nil {
		hasher = &HasherXXH3[K]{}
	}
	return &Map[K, V]{
		buckets: make([]bucket[K, V], 0, capacity),
		hasher:  hasher,
	}
}

// Equal returns true if m and mm contain the same keys
// associated with equal values. Hashers are not compared.
func (m *Map[K, V]) Equal(mm *Map[K, V]) bool {
	if m.len != mm.len {
		return false
	}
	equal := true
	m.Visit(func(key K, value V) bool {
		v, ok := mm.Get(key)
		equal = ok && cmp.Equal(value, v)
		return !equal
	})
	return equal
}

// Has returns true if key exists.
func (m *Map[K, V]) Has(key K) bool {
	return m.lookup(key) != nil
}

// Get returns (value, true) if key exists,
// otherwise returns (zeroValue, false).
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	if p := m.lookup(key); p != nil {
		return p.value, true
	}
	return value, false
}

// Set associates key with value overwriting any existing association.
func (m *Map[K, V]) Set(key K, value V) {
	hash := m.hasher.Hash(key)
	i, found := m.search(hash)
	if !found {
		m.buckets = slices.Insert(m.buckets, i, bucket[K, V]{
			hash: hash,
			head: pair[K, V]{key: key, value: value},
		})
		m.len++
		return
	}

	p := &m.buckets[i].head
	for {
		if string(p.key) == string(key) {
			p.value = value
			return
		}
		if p.next == nil {
			break
		}
		p = p.next
	}
	// Hash collision
	p.next = &pair[K, V]{key: key, value: value}
	m.len++
}

// Delete deletes key if it exists.
func (m *Map[K, V]) Delete(key K) {
	i, found := m.search(m.hasher.Hash(key))
	if !found {
		return
	}
	b := &m.buckets[i]
	if string(b.head.key) == string(key) {
		if b.head.next == nil {
			m.buckets = slices.Delete(m.buckets, i, i+1)
		} else {
			b.head = *b.head.next
		}
		m.len--
		return
	}
	for p := &b.head; p.next != nil; p = p.next {
		if string(p.next.key) == string(key) {
			p.next = p.next.next
			m.len--
			return
		}
	}
}

// Reset removes all pairs keeping the allocated buckets.
func (m *Map[K, V]) Reset() {
	clear(m.buckets)
	m.buckets, m.len = m.buckets[:0], 0
}

// Len returns the number of stored key-value pairs.
func (m *Map[K, V]) Len() int { return m.len }

// Visit calls fn for every stored key-value pair in hash order.
// Returns immediately if fn returns true.
func (m *Map[K, V]) Visit(fn func(key K, value V) (stop bool)) {
	for i := range m.buckets {
		for p := &m.buckets[i].head; p != nil; p = p.next {
			if fn(p.key, p.value) {
				return
			}
		}
	}
}

// lookup returns the pair holding key or nil if there's none.
// The returned pointer is invalidated by the next Set or Delete.
func (m *Map[K, V]) lookup(key K) *pair[K, V] {
	i, found := m.search(m.hasher.Hash(key))
	if !found {
		return nil
	}
	for p := &m.buckets[i].head; p != nil; p = p.next {
		if string(p.key) == string(key) {
			return p
		}
	}
	return nil
}

func (m *Map[K, V]) search(hash uint64) (i int, found bool) {
	if len(m.buckets) >= expSearchThreshold {
		return searchExp(m.buckets, hash)
	}
	return searchBin(m.buckets, hash, 0, len(m.buckets)-1)
}

// searchExp narrows the range exponentially before falling back
// to binary search. Returns the index and true if hash was found,
// otherwise returns the insertion index and false.
func searchExp[K KeyInterface, V any](b []bucket[K, V], hash uint64) (int, bool) {
	l, r := 0, 1
	for r < len(b) && b[r].hash < hash {
		l, r = r, r<<1
	}
	return searchBin(b, hash, l, min(r, len(b)-1))
}

// searchBin returns the index and true if hash was found in b[l:r+1],
// otherwise returns the insertion index and false.
func searchBin[K KeyInterface, V any](b []bucket[K, V], hash uint64, l, r int) (int, bool) {
	for l <= r {
		m := l + (r-l)>>1
		switch h := b[m].hash; {
		case h == hash:
			return m, true
		case h > hash:
			r = m - 1
		default:
			l = m + 1
		}
	}
	return l, false
}
