// Package container defines the Mapper interface implemented by the
// enumerable maps in its subpackages. Every Mapper can be passed
// to emplace.Map.
package container

// Mapper is a resetable, enumerable key-value container.
type Mapper[K, V any] interface {
	Has(K) bool
	Get(K) (v V, ok bool)
	Set(K, V)
	Delete(K)
	Reset()
	Len() int

	// Visit calls fn for every stored key-value pair
	// and returns immediately if fn returns true.
	Visit(fn func(K, V) (stop bool))
}
