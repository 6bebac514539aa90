// Package shorthash derives the short content hash carried by binary
// identifiers: the first eight bytes of a digest, hex encoded.
package shorthash

import (
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"

	"golang.org/x/crypto/sha3"

	"github.com/zero-day-ai/authid/enum"
)

// Length is the number of digest bytes kept.
const Length = 8

var hashers = map[string]func() hash.Hash{
	"sha1":     sha1.New,
	"sha2-256": sha256.New,
	"sha2-512": sha512.New,
	"sha3-512": sha3.New512,
	"sha3-384": sha3.New384,
	"sha3-256": sha3.New256,
}

// Sum hashes content with the named algorithm and returns the short hash.
func Sum(algorithm string, content []byte) (string, error) {
	digest, err := Digest(algorithm, content)
	if err != nil {
		return "", err
	}
	return FromDigest(digest)
}

// Digest returns the full digest of content under the named algorithm.
func Digest(algorithm string, content []byte) ([]byte, error) {
	if _, ok := enum.HashAlgorithms.Code(algorithm); !ok {
		return nil, fmt.Errorf("shorthash: unrecognized hash function %q", algorithm)
	}
	newHash, ok := hashers[algorithm]
	if !ok {
		return nil, fmt.Errorf("shorthash: no implementation for %q", algorithm)
	}
	h := newHash()
	h.Write(content)
	return h.Sum(nil), nil
}

// FromDigest truncates an already computed digest.
func FromDigest(digest []byte) (string, error) {
	if len(digest) < Length {
		return "", fmt.Errorf("shorthash: digest of %d bytes is shorter than %d", len(digest), Length)
	}
	return hex.EncodeToString(digest[:Length]), nil
}
