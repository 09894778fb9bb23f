package chmgen

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/spaolacci/murmur3"

	chmerrors "github.com/tamirms/chmgen/errors"
	"github.com/tamirms/chmgen/internal/graph"
)

// ceilingFactor bounds the table size the search may grow to, as a multiple
// of keys+1. Random graph theory puts the acyclicity threshold near twice
// the key count; a search that has grown a hundredfold past the initial
// size is not going to be rescued by growing further, the key set is simply
// hostile to the chosen hash kind.
const ceilingFactor = 100

// Result is a generated minimal perfect hash function: two salted hash
// functions and a vertex value table G such that for every key at position
// i in the input,
//
//	(G[F1(key)] + G[F2(key)]) mod TableSize == i
//
// A Result returned by Generate has already passed Verify.
type Result struct {
	// F1 and F2 are the two salted hash functions of the winning trial.
	F1, F2 SaltedHash

	// G is the vertex value table; len(G) == TableSize.
	G []int32

	// TableSize is the modulus N of the generated function.
	TableSize int

	// NumKeys is the number of input keys; the function maps them onto
	// [0, NumKeys) with no gaps and no collisions.
	NumKeys int

	// Kind and Pow2 echo the configuration the search ran with.
	Kind HashKind
	Pow2 bool

	// Trials is the 1-based number of the winning trial. With a single
	// worker this equals the total number of trials run.
	Trials int

	// Seed is the search seed the trial RNGs were derived from.
	Seed uint64

	// Keys is a copy of the input key list, in hash value order: key i
	// maps to i. Render emits it for the self-check block.
	Keys []string
}

// Generate searches for a minimal perfect hash function over keys.
//
// Each trial draws two fresh salted hash functions, builds the constraint
// graph with one edge per key, and keeps the candidate if the graph is
// acyclic. Failed trials grow the table size on the cadence set by
// WithTrials until the size ceiling is hit, at which point the search stops
// with ErrSearchExhausted.
//
// The key order is significant: key i maps to hash value i in the result.
func Generate(keys []string, opts ...Option) (*Result, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := checkKeys(keys); err != nil {
		return nil, err
	}

	ceiling := ceilingFactor * (len(keys) + 1)

	var (
		res *Result
		err error
	)
	if cfg.workers > 1 {
		res, err = searchParallel(keys, cfg, ceiling)
	} else {
		res, err = search(keys, cfg, ceiling)
	}
	if err != nil {
		return nil, err
	}
	if err := res.Verify(); err != nil {
		return nil, err
	}
	return res, nil
}

// GenerateCode runs Generate and renders the result through template in one
// step. An empty template selects the builtin template for the configured
// hash kind.
func GenerateCode(keys []string, template string, f Format, opts ...Option) (string, error) {
	res, err := Generate(keys, opts...)
	if err != nil {
		return "", err
	}
	return res.Render(template, f)
}

// errTrialFailed signals a cyclic candidate graph. The driver retries with
// the next trial; it never escapes to callers.
var errTrialFailed = errors.New("chmgen: candidate graph is cyclic")

// search runs trials sequentially until one succeeds or the table size
// ceiling is reached.
func search(keys []string, cfg *config, ceiling int) (*Result, error) {
	for trial := 0; ; trial++ {
		n := sizeForTrial(trial, len(keys), cfg.trials, cfg.pow2)
		if n > ceiling {
			return nil, fmt.Errorf("%w: %d keys", chmerrors.ErrSearchExhausted, len(keys))
		}
		res, err := attempt(keys, cfg, n, trial)
		if errors.Is(err, errTrialFailed) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

// attempt runs a single trial at table size n: fresh hash functions, fresh
// graph, one assignment pass.
func attempt(keys []string, cfg *config, n, trial int) (*Result, error) {
	f1rng, f2rng := trialRNGs(cfg.seed, trial)
	f1, err := newSaltedHash(cfg.kind, n, f1rng)
	if err != nil {
		return nil, err
	}
	f2, err := newSaltedHash(cfg.kind, n, f2rng)
	if err != nil {
		return nil, err
	}

	g := graph.New(n)
	for i, key := range keys {
		g.Connect(f1.Hash(key), f2.Hash(key), i)
	}
	if !g.AssignVertexValues() {
		return nil, errTrialFailed
	}

	return &Result{
		F1:        f1,
		F2:        f2,
		G:         slices.Clone(g.Values()),
		TableSize: n,
		NumKeys:   len(keys),
		Kind:      cfg.kind,
		Pow2:      cfg.pow2,
		Trials:    trial + 1,
		Seed:      cfg.seed,
		Keys:      slices.Clone(keys),
	}, nil
}

// trialRNGs derives two independent PCG streams for a trial. Both are a
// pure function of (seed, trial): a trial's outcome does not depend on
// which worker runs it or on any earlier trial, and the two functions of a
// pair never share generator state.
func trialRNGs(seed uint64, trial int) (*rand.Rand, *rand.Rand) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], seed)
	a, b := murmur3.Sum128WithSeed(buf[:], uint32(2*trial))
	c, d := murmur3.Sum128WithSeed(buf[:], uint32(2*trial+1))
	return rand.New(rand.NewPCG(a, b)), rand.New(rand.NewPCG(c, d))
}

// sizeForTrial returns the table size trial t (0-based) runs at: the
// initial size grown once per trialsPerSize failed trials before it.
func sizeForTrial(t, numKeys, trialsPerSize int, pow2 bool) int {
	n := initialTableSize(numKeys, pow2)
	for range t / trialsPerSize {
		n = growTableSize(n, pow2)
	}
	return n
}

// initialTableSize returns the starting table size: one more than the key
// count, or the next power of two at or above that in pow2 mode. Always at
// least 2, so the integer salt domain [1, n) is never empty.
func initialTableSize(numKeys int, pow2 bool) int {
	if !pow2 {
		return numKeys + 1
	}
	n := 1
	for n < numKeys+1 {
		n *= 2
	}
	return n
}

// growTableSize returns the next table size to try. Power-of-two tables
// double; otherwise the size grows by 5%, but by at least one vertex so
// small tables still make progress.
func growTableSize(n int, pow2 bool) int {
	if pow2 {
		return n * 2
	}
	return max(n+1, n*105/100)
}
