package chmgen

import (
	"fmt"

	chmerrors "github.com/tamirms/chmgen/errors"
)

const (
	// maxKeys bounds the key count so that the growth ceiling 100*(keys+1)
	// and therefore every vertex value and integer salt fit in int32.
	maxKeys = 1 << 24

	// maxKeyLength bounds the salt length a single key can force. Salts
	// cover one position per key byte, and the emitted code inlines them.
	maxKeyLength = 65535
)

// checkKeys validates the key set before any search work starts.
//
// An empty key is rejected outright: both hash functions map it to bucket 0
// regardless of salt, which self-loops the graph and makes every trial fail
// until the size ceiling aborts the search.
func checkKeys(keys []string) error {
	if len(keys) == 0 {
		return chmerrors.ErrEmptyKeys
	}
	if len(keys) > maxKeys {
		return fmt.Errorf("%w: got %d", chmerrors.ErrTooManyKeys, len(keys))
	}
	seen := make(map[string]int, len(keys))
	for i, k := range keys {
		if k == "" {
			return fmt.Errorf("%w: index %d", chmerrors.ErrEmptyKey, i)
		}
		if len(k) > maxKeyLength {
			return fmt.Errorf("%w: key %d is %d bytes", chmerrors.ErrKeyTooLong, i, len(k))
		}
		if j, ok := seen[k]; ok {
			return fmt.Errorf("%w: %q at indexes %d and %d", chmerrors.ErrDuplicateKey, k, j, i)
		}
		seen[k] = i
	}
	return nil
}
