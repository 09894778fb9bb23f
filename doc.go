// Package chmgen generates minimal perfect hash functions as source code.
//
// Given a fixed list of n distinct keys, chmgen searches for a pair of
// salted hash functions (f1, f2) and a value table G such that
//
//	(G[f1(key)] + G[f2(key)]) mod N == i
//
// for the key at position i, with no gaps and no collisions over the key
// set (the CHM construction: each trial builds a random graph and keeps it
// if acyclic). The winning parameters are substituted into a code template
// and written out, so the lookup ships as plain source with no runtime
// dependency on this package.
//
// # Basic Usage
//
// Generating and emitting a hash function:
//
//	res, err := chmgen.Generate(keys, chmgen.WithSeed(42))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	code, err := res.Render("", chmgen.DefaultFormat())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("lookup.go", []byte(code), 0o644)
//
// The empty template selects a builtin Go template; custom templates use
// the placeholders documented on Render. The chmgen command wraps this
// pipeline with key-file reading, manifests and a compile-and-run check.
//
// # Package Structure
//
//   - Search: generate.go (Generate, Result), generate_parallel.go (worker pool)
//   - Hash functions: hash.go (HashKind, StrSaltHash, IntSaltHash)
//   - Graph solving: internal/graph/ (acyclicity test and vertex assignment)
//   - Emission: template.go (placeholders, builtin templates), format.go (wrapping)
//   - Checking: verify.go (Result.Verify), exec.go (RunCode)
//   - Input: table.go (ReadTable, ReadTemplate), fadvise_*.go (read hints)
//   - Records: manifest.go (build manifest)
//   - Configuration: options.go (Option, With* functions)
package chmgen
