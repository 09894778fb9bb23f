package chmgen

import (
	"fmt"

	chmerrors "github.com/tamirms/chmgen/errors"
)

// Verify recomputes the lookup for every key and confirms it returns the
// key's position in the input list. Generate runs this before returning, so
// any Result it hands out has already passed; the method is exported for
// callers that want to re-check a Result they reconstructed or transported.
//
// Verification is deterministic: the salts already cover every key, so no
// new salt values are drawn and repeated calls always agree.
func (r *Result) Verify() error {
	for i, key := range r.Keys {
		got := (int(r.G[r.F1.Hash(key)]) + int(r.G[r.F2.Hash(key)])) % r.TableSize
		if got != i {
			return fmt.Errorf("%w: key %q maps to %d, want %d",
				chmerrors.ErrVerificationFailed, key, got, i)
		}
	}
	return nil
}
