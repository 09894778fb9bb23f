package chmgen

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func benchmarkGenerateN(b *testing.B, n int, opts ...Option) {
	rng := newTestRNG(b)
	keys := genKeys(rng, n)
	opts = append([]Option{WithSeed(rng.Uint64())}, opts...)

	b.ResetTimer()
	b.ReportAllocs()
	for range b.N {
		if _, err := Generate(keys, opts...); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGenerate1K(b *testing.B)   { benchmarkGenerateN(b, 1000) }
func BenchmarkGenerate10K(b *testing.B)  { benchmarkGenerateN(b, 10000) }
func BenchmarkGenerate100K(b *testing.B) { benchmarkGenerateN(b, 100000) }

func BenchmarkGenerateIntSalt10K(b *testing.B) {
	benchmarkGenerateN(b, 10000, WithHashKind(HashIntSalt))
}

func BenchmarkGeneratePow210K(b *testing.B) {
	benchmarkGenerateN(b, 10000, WithPow2())
}

func BenchmarkGenerateParallel10K(b *testing.B) {
	benchmarkGenerateN(b, 10000, WithWorkers(runtime.GOMAXPROCS(0)))
}

func benchmarkHashN(b *testing.B, kind HashKind, n int) {
	rng := newTestRNG(b)
	keys := genKeys(rng, n)
	res, err := Generate(keys, WithHashKind(kind), WithSeed(rng.Uint64()))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := range b.N {
		_ = res.F1.Hash(keys[i%n])
	}
}

func BenchmarkHashStrSalt(b *testing.B) { benchmarkHashN(b, HashStrSalt, 10000) }
func BenchmarkHashIntSalt(b *testing.B) { benchmarkHashN(b, HashIntSalt, 10000) }

func benchmarkRenderN(b *testing.B, n int) {
	rng := newTestRNG(b)
	keys := genKeys(rng, n)
	res, err := Generate(keys, WithSeed(rng.Uint64()))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for range b.N {
		if _, err := res.Render("", Format{}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRender1K(b *testing.B)  { benchmarkRenderN(b, 1000) }
func BenchmarkRender10K(b *testing.B) { benchmarkRenderN(b, 10000) }

func benchmarkReadTableN(b *testing.B, n int) {
	rng := newTestRNG(b)
	keys := genKeys(rng, n)

	var sb strings.Builder
	for i, k := range keys {
		fmt.Fprintf(&sb, "%s,%d\n", k, i)
	}
	path := filepath.Join(b.TempDir(), "bench.csv")
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for range b.N {
		if _, err := ReadTable(path, DefaultReaderOptions()); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReadTable10K(b *testing.B)  { benchmarkReadTableN(b, 10000) }
func BenchmarkReadTable100K(b *testing.B) { benchmarkReadTableN(b, 100000) }
