package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest is a SHA-256 sum; source.File.Hash has the same layout.
type Digest [32]byte

// Combine hashes content followed by deps in the given order, so the
// result changes when any input or their order changes. The check cache
// keys files by Combine(file, manifest, tool version).
func Combine(content Digest, deps ...Digest) Digest {
	h := sha256.New()
	for _, d := range append([]Digest{content}, deps...) {
		h.Write(d[:])
	}
	return Digest(h.Sum(nil))
}

// HashString хеширует манифест или строку версии.
func HashString(s string) Digest {
	return sha256.Sum256([]byte(s))
}

// Short is the first 12 hex digits, enough to tell cache entries apart in
// traces.
func (d Digest) Short() string {
	return hex.EncodeToString(d[:6])
}
