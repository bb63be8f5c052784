package emplace

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInsertHandlerMissing matches any *ErrorInsertHandlerMissing
// when used with errors.Is.
var ErrInsertHandlerMissing = errors.New("insert handler missing")

// ErrorInsertHandlerMissing is returned by Emplace when the key
// doesn't exist in the container and no insert handler is provided.
type ErrorInsertHandlerMissing[K any] struct {
	Key K
}

func (e ErrorInsertHandlerMissing[K]) Error() string {
	k := fmt.Sprintf("%v", e.Key)
	var b strings.Builder
	b.Grow(len(`key "`) + len(k) +
		len(`" does not exist in map but no insert handler is provided`))
	b.WriteString(`key "`)
	b.WriteString(k)
	b.WriteString(`" does not exist in map but no insert handler is provided`)
	return b.String()
}

func (e ErrorInsertHandlerMissing[K]) Is(target error) bool {
	return target == ErrInsertHandlerMissing
}
