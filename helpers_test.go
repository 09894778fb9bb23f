// helpers_test.go holds the shared test infrastructure of the chmgen
// package: deterministic RNG construction and key-set generators.
package chmgen

import (
	"encoding/binary"
	"hash/fnv"
	"math/rand/v2"
	"testing"
)

// Named seeds for deterministic reproduction.
const (
	testSeed1 = 0x1234567890ABCDEF
	testSeed2 = 0xFEDCBA9876543210
)

func newTestRNG(t testing.TB) *rand.Rand {
	t.Helper()
	h := fnv.New128a()
	h.Write([]byte(t.Name()))
	sum := h.Sum(nil)
	s1 := binary.LittleEndian.Uint64(sum[:8])
	s2 := binary.LittleEndian.Uint64(sum[8:])
	return rand.New(rand.NewPCG(testSeed1^s1, testSeed2^s2))
}

// genKeys returns n distinct identifier-like keys.
func genKeys(rng *rand.Rand, n int) []string {
	seen := make(map[string]struct{}, n)
	keys := make([]string, 0, n)
	for len(keys) < n {
		b := make([]byte, 3+rng.IntN(10))
		for i := range b {
			b[i] = anumChars[rng.IntN(len(anumChars))]
		}
		k := string(b)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	return keys
}

// checkPerfect asserts that every key maps to its own position through the
// generated function, recomputed from scratch.
func checkPerfect(t *testing.T, res *Result) {
	t.Helper()
	if len(res.G) != res.TableSize {
		t.Fatalf("len(G) = %d, want table size %d", len(res.G), res.TableSize)
	}
	if res.NumKeys != len(res.Keys) {
		t.Fatalf("NumKeys = %d, want %d", res.NumKeys, len(res.Keys))
	}
	for i, key := range res.Keys {
		v1 := res.F1.Hash(key)
		v2 := res.F2.Hash(key)
		if v1 < 0 || v1 >= res.TableSize || v2 < 0 || v2 >= res.TableSize {
			t.Fatalf("key %q: hash values %d, %d out of range [0, %d)", key, v1, v2, res.TableSize)
		}
		got := (int(res.G[v1]) + int(res.G[v2])) % res.TableSize
		if got != i {
			t.Errorf("key %q: maps to %d, want %d", key, got, i)
		}
	}
}
