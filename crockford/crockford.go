// Package crockford renders bytes in Crockford's base-32 alphabet.
//
// Output is uppercase and unpadded. Input is accepted in either case but
// must otherwise be the exact encoding of some byte string: spare bits in the
// final character must be zero.
package crockford

import (
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
)

// Alphabet excludes I, L, O and U.
const Alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// Encoding is the unpadded Crockford base-32 encoding.
var Encoding = base32.NewEncoding(Alphabet).WithPadding(base32.NoPadding)

// ErrInvalid is returned for text that is not a canonical encoding.
var ErrInvalid = errors.New("crockford: invalid encoding")

// Encode returns the uppercase encoding of b.
func Encode(b []byte) string {
	return Encoding.EncodeToString(b)
}

// Decode uppercases s and decodes it.
func Decode(s string) ([]byte, error) {
	upper := strings.ToUpper(s)
	b, err := Encoding.DecodeString(upper)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if Encoding.EncodeToString(b) != upper {
		return nil, fmt.Errorf("%w: non-zero trailing bits", ErrInvalid)
	}
	return b, nil
}
