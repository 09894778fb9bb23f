package chmgen

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/sugawarayuuta/sonnet"
	"github.com/zeebo/xxh3"
)

// Version is the chmgen release recorded in build manifests.
const Version = "0.1.0"

// Manifest is the machine-readable record of one generation run, written
// next to the emitted code so later runs (and code review) can tell whether
// the code is stale. It carries no timestamps: identical inputs produce
// byte-identical manifests.
type Manifest struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	HashKind  string `json:"hash_kind"`
	NumKeys   int    `json:"num_keys"`
	TableSize int    `json:"table_size"`
	Pow2      bool   `json:"pow2"`
	SaltLen   int    `json:"salt_len"`

	// Seed is the search seed in hex. A string rather than a JSON number:
	// seeds use all 64 bits and would not survive a float64 round-trip.
	Seed string `json:"seed"`

	// Trials is the 1-based number of the winning trial.
	Trials int `json:"trials"`

	// KeysetDigest is an xxh3-128 digest of the length-prefixed key list.
	// It changes whenever a key is added, removed or reordered.
	KeysetDigest string `json:"keyset_digest"`

	// CodeChecksum is the xxhash64 of the emitted code.
	CodeChecksum string `json:"code_checksum"`
}

// NewManifest builds the manifest for a generation result and the code
// rendered from it.
func NewManifest(r *Result, code []byte) Manifest {
	return Manifest{
		Tool:         "chmgen",
		Version:      Version,
		HashKind:     r.Kind.String(),
		NumKeys:      r.NumKeys,
		TableSize:    r.TableSize,
		Pow2:         r.Pow2,
		SaltLen:      r.F1.SaltLen(),
		Seed:         fmt.Sprintf("%#x", r.Seed),
		Trials:       r.Trials,
		KeysetDigest: keysetDigest(r.Keys),
		CodeChecksum: fmt.Sprintf("%016x", xxhash.Sum64(code)),
	}
}

// keysetDigest folds the key list into one 128-bit digest. Keys are length
// prefixed so that ["ab", "c"] and ["a", "bc"] cannot collide.
func keysetDigest(keys []string) string {
	h := xxh3.New()
	var lenBuf [8]byte
	for _, k := range keys {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(k)))
		h.Write(lenBuf[:])
		h.WriteString(k)
	}
	sum := h.Sum128()
	return fmt.Sprintf("%016x%016x", sum.Hi, sum.Lo)
}

// Encode serializes the manifest as indented JSON with a trailing newline.
func (m Manifest) Encode() ([]byte, error) {
	out, err := sonnet.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// DecodeManifest parses a manifest previously produced by Encode.
func DecodeManifest(data []byte) (Manifest, error) {
	var m Manifest
	if err := sonnet.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("chmgen: invalid manifest: %w", err)
	}
	return m, nil
}
