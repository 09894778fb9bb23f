package chmgen

import (
	"fmt"
	"math/rand/v2"

	chmerrors "github.com/tamirms/chmgen/errors"
)

// HashKind identifies the salted hash family used for the two functions of a
// generated pair. It selects the builtin template and is recorded in the
// build manifest.
type HashKind uint8

const (
	// HashStrSalt salts with alphanumeric characters. The salt embeds into
	// emitted source as a plain string literal, which keeps the generated
	// code readable, but the 62-symbol alphabet limits how much the search
	// can vary between trials on large key sets.
	HashStrSalt HashKind = 1

	// HashIntSalt salts with integers drawn from [1, N). The salt scales
	// with the table size, so acyclic graphs stay findable for key sets far
	// beyond what HashStrSalt handles.
	HashIntSalt HashKind = 2
)

// String returns the hash kind name.
func (k HashKind) String() string {
	switch k {
	case HashStrSalt:
		return "strsalt"
	case HashIntSalt:
		return "intsalt"
	default:
		return "unknown"
	}
}

// MaxRecommendedStrSaltKeys is the key count beyond which HashStrSalt
// searches tend to stall: the alphanumeric salt alphabet offers too little
// variation per trial. The library itself never enforces this; the chmgen
// command warns and suggests HashIntSalt.
const MaxRecommendedStrSaltKeys = 10000

// anumChars is the salt alphabet for HashStrSalt: ASCII letters and digits,
// all safe inside a quoted string literal in the emitted code.
const anumChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SaltedHash is one randomized hash function of a candidate pair, mapping
// keys to [0, N).
//
// # Salt growth
//
// The salt covers one position per key byte and extends lazily: hashing a
// key longer than any seen before draws new salt values from the instance's
// RNG. A position's value is drawn once and never changes, so hashing the
// same key twice always returns the same result.
//
// # Thread safety
//
// A SaltedHash is NOT safe for concurrent use; lazy salt growth mutates the
// instance. Parallel searches give every trial its own pair.
//
// Implementations are provided by this package: StrSaltHash and IntSaltHash.
type SaltedHash interface {
	// Hash maps key to a bucket in [0, N), extending the salt to cover
	// len(key) positions first.
	Hash(key string) int

	// SaltLen returns the number of salt positions drawn so far. After a
	// successful search this equals the longest key's byte length.
	SaltLen() int

	// renderSalt formats the salt for template substitution.
	renderSalt(f Format) string
}

// StrSaltHash hashes with a salt of alphanumeric characters.
type StrSaltHash struct {
	n    int
	salt []byte
	rng  *rand.Rand
}

// NewStrSaltHash returns a string-salted hash onto [0, n). The RNG must be
// dedicated to this instance.
func NewStrSaltHash(n int, rng *rand.Rand) *StrSaltHash {
	return &StrSaltHash{n: n, rng: rng}
}

// Hash implements SaltedHash.
func (h *StrSaltHash) Hash(key string) int {
	h.extend(len(key))
	sum := uint64(0)
	for i := 0; i < len(key); i++ {
		sum = (sum + uint64(h.salt[i])*uint64(key[i])) % uint64(h.n)
	}
	return int(sum)
}

// SaltLen implements SaltedHash.
func (h *StrSaltHash) SaltLen() int {
	return len(h.salt)
}

// Salt returns the salt characters drawn so far. The slice aliases hash
// state and must not be modified.
func (h *StrSaltHash) Salt() []byte {
	return h.salt
}

func (h *StrSaltHash) renderSalt(Format) string {
	return string(h.salt)
}

func (h *StrSaltHash) extend(n int) {
	for len(h.salt) < n {
		h.salt = append(h.salt, anumChars[h.rng.IntN(len(anumChars))])
	}
}

// IntSaltHash hashes with a salt of integers from [1, N).
type IntSaltHash struct {
	n    int
	salt []int32
	rng  *rand.Rand
}

// NewIntSaltHash returns an integer-salted hash onto [0, n). The RNG must be
// dedicated to this instance. n must be at least 2 so the salt domain [1, n)
// is non-empty.
func NewIntSaltHash(n int, rng *rand.Rand) *IntSaltHash {
	return &IntSaltHash{n: n, rng: rng}
}

// Hash implements SaltedHash.
func (h *IntSaltHash) Hash(key string) int {
	h.extend(len(key))
	// Salt values scale with n, so reduce per term: term < n*255 and the
	// running sum stays below n, keeping the accumulator within uint64 for
	// any table size the search ceiling permits.
	sum := uint64(0)
	for i := 0; i < len(key); i++ {
		sum = (sum + uint64(h.salt[i])*uint64(key[i])) % uint64(h.n)
	}
	return int(sum)
}

// SaltLen implements SaltedHash.
func (h *IntSaltHash) SaltLen() int {
	return len(h.salt)
}

// Salt returns the salt values drawn so far. The slice aliases hash state
// and must not be modified.
func (h *IntSaltHash) Salt() []int32 {
	return h.salt
}

func (h *IntSaltHash) renderSalt(f Format) string {
	return f.Ints(h.salt)
}

func (h *IntSaltHash) extend(n int) {
	for len(h.salt) < n {
		h.salt = append(h.salt, int32(1+h.rng.IntN(h.n-1)))
	}
}

// newSaltedHash creates one hash function of a candidate pair.
func newSaltedHash(kind HashKind, n int, rng *rand.Rand) (SaltedHash, error) {
	switch kind {
	case HashStrSalt:
		return NewStrSaltHash(n, rng), nil
	case HashIntSalt:
		return NewIntSaltHash(n, rng), nil
	}
	return nil, fmt.Errorf("%w: %d", chmerrors.ErrInvalidHashKind, kind)
}
