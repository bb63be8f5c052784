// Package testeq provides test helpers reporting every difference
// between expected and actual contents instead of stopping at the first.
package testeq

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/exp/constraints"
)

// Writer is implemented by *testing.T and *testing.B.
type Writer interface {
	Helper()
	Errorf(fmt string, v ...any)
}

// Visitor is any container that can be enumerated.
type Visitor[K, V any] interface {
	Len() int
	Visit(fn func(K, V) (stop bool))
}

// Container compares the entries visited in actual against expected.
// Besides mismatching, missing and unexpected entries it reports keys
// visited more than once and a Len inconsistent with the visited entries.
func Container[K constraints.Ordered, V any](
	w Writer,
	title string,
	expected map[K]V,
	actual Visitor[K, V],
) (ok bool) {
	w.Helper()
	ok = true

	visited := make(map[K]V, actual.Len())
	actual.Visit(func(k K, v V) bool {
		if _, dup := visited[k]; dup {
			w.Errorf("duplicate %s %v", title, k)
			ok = false
		}
		visited[k] = v
		return false
	})
	if l := actual.Len(); l != len(visited) {
		w.Errorf("length %d doesn't match %d visited", l, len(visited))
		ok = false
	}

	return Maps(w, title, expected, visited) && ok
}

// Maps reports mismatching, missing and unexpected keys
// in ascending key order. Values are compared with go-cmp.
func Maps[K constraints.Ordered, V any](
	w Writer,
	title string,
	expected, actual map[K]V,
) (ok bool) {
	w.Helper()
	ok = true

	for _, k := range slices.Sorted(maps.Keys(expected)) {
		ev := expected[k]
		av, found := actual[k]
		if !found {
			w.Errorf("missing %s %v (%s)", title, k, stringify(ev))
			ok = false
			continue
		}
		if diff := cmp.Diff(ev, av); diff != "" {
			w.Errorf("mismatching %s %v (-expected +actual):\n%s", title, k, diff)
			ok = false
		}
	}

	for _, k := range slices.Sorted(maps.Keys(actual)) {
		if _, found := expected[k]; !found {
			w.Errorf("unexpected %s %v (%s)", title, k, stringify(actual[k]))
			ok = false
		}
	}

	return ok
}

func stringify(v any) string { return fmt.Sprintf("%#v", v) }
