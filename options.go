package chmgen

import (
	"fmt"

	chmerrors "github.com/tamirms/chmgen/errors"
)

// defaultTrials is how many failed trials the search tolerates at one table
// size before growing it.
const defaultTrials = 50

// Option is a functional option for configuring Generate.
type Option func(*config)

type config struct {
	kind    HashKind
	pow2    bool
	trials  int
	seed    uint64
	workers int
}

func defaultConfig() *config {
	return &config{
		kind:    HashStrSalt,
		trials:  defaultTrials,
		seed:    0x9e3779b97f4a7c15, // Arbitrary default; overridden via WithSeed
		workers: 1,                  // Single-threaded; use WithWorkers(n) to parallelize
	}
}

func (c *config) validate() error {
	if c.trials <= 0 {
		return fmt.Errorf("%w: got %d", chmerrors.ErrInvalidTrials, c.trials)
	}
	if c.workers <= 0 {
		return fmt.Errorf("%w: got %d", chmerrors.ErrInvalidWorkers, c.workers)
	}
	switch c.kind {
	case HashStrSalt, HashIntSalt:
	default:
		return fmt.Errorf("%w: %d", chmerrors.ErrInvalidHashKind, c.kind)
	}
	return nil
}

// WithHashKind selects the salted hash family. Default is HashStrSalt.
func WithHashKind(kind HashKind) Option {
	return func(c *config) {
		c.kind = kind
	}
}

// WithPow2 forces the table size to a power of two. The builtin templates
// then emit a bitwise AND with the table mask instead of a modulus, which
// is what you want when the generated lookup sits on a hot path.
func WithPow2() Option {
	return func(c *config) {
		c.pow2 = true
	}
}

// WithTrials sets how many trials run at each table size before the size
// grows. More trials per size keeps tables smaller at the cost of search
// time. Must be larger than zero.
func WithTrials(n int) Option {
	return func(c *config) {
		c.trials = n
	}
}

// WithSeed sets the search seed. Every trial derives its hash functions
// from (seed, trial number), so the same keys, options and seed always
// reproduce the same generated function.
func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.seed = seed
	}
}

// WithWorkers sets the number of goroutines running trials concurrently.
// Trials are independent, so with n > 1 the first acyclic candidate found
// wins; which trial that is may vary between runs.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = n
	}
}
