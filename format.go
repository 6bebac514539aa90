package authid

import (
	"strings"

	"github.com/zero-day-ai/authid/crockford"
)

// Format names an identifier variant.
type Format int

const (
	FormatUnknown Format = iota
	FormatBinary
	FormatText
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatText:
		return "text"
	default:
		return "unknown"
	}
}

// minBinaryLength is the encoded length of a tag plus one payload byte.
var minBinaryLength = crockford.Encoding.EncodedLen(TagLength + 1)

// Detect guesses the variant of id from its shape alone. It does no
// decoding and no cryptography, so a detected format is not a valid Id.
func Detect(id string) Format {
	if textPattern.MatchString(id) {
		return FormatText
	}

	body := strings.ToUpper(stripPrefix(id))
	if len(body) < minBinaryLength {
		return FormatUnknown
	}
	for _, r := range body {
		if !strings.ContainsRune(crockford.Alphabet, r) {
			return FormatUnknown
		}
	}
	return FormatBinary
}
