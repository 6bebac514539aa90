// Package mac computes and verifies truncated HMAC-SHA256 tags.
package mac

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
)

// TagLength is the number of HMAC-SHA256 bytes kept in a tag.
const TagLength = 16

var (
	// ErrMissingKey is returned by Policy.Check for an empty key.
	ErrMissingKey = errors.New("missing key")

	// ErrInvalidKeyLength is returned by Policy.Check for a key outside the
	// policy's bounds.
	ErrInvalidKeyLength = errors.New("invalid key length")
)

// Policy bounds the accepted key length, inclusive.
type Policy struct {
	Min int
	Max int
}

var (
	// Binary accepts exactly one SHA-256 block of key material.
	Binary = Policy{Min: sha256.BlockSize, Max: sha256.BlockSize}

	// Text accepts 32 to 64 bytes.
	Text = Policy{Min: 32, Max: sha256.BlockSize}
)

// Check reports whether key satisfies the policy.
func (p Policy) Check(key []byte) error {
	switch {
	case len(key) == 0:
		return ErrMissingKey
	case len(key) < p.Min || len(key) > p.Max:
		if p.Min == p.Max {
			return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidKeyLength, len(key), p.Min)
		}
		return fmt.Errorf("%w: got %d bytes, want %d to %d", ErrInvalidKeyLength, len(key), p.Min, p.Max)
	}
	return nil
}

// Sum returns the first TagLength bytes of HMAC-SHA256(key, msg).
func Sum(key, msg []byte) []byte {
	h := hmac.New(sha256.New, key)
	h.Write(msg)
	return h.Sum(nil)[:TagLength]
}

// Verify reports whether tag is the tag of msg under key. The comparison is
// constant time.
func Verify(key, msg, tag []byte) bool {
	if len(tag) != TagLength {
		return false
	}
	return hmac.Equal(Sum(key, msg), tag)
}
