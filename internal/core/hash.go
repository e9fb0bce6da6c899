package core

import (
	"fmt"
	"hash/fnv"
)

// HashContent returns a stable fnv-64a digest of parts. Parts are
// separated by a NUL byte so that ("ab", "c") and ("a", "bc") differ.
func HashContent(parts ...string) string {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum64())
}
