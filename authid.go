package authid

import "github.com/zero-day-ai/authid/types"

var defaultCodec = NewCodec()

// EncodeID calls Codec.EncodeID on a Codec with default options.
func EncodeID(fields types.Fields, key []byte) (string, error) {
	return defaultCodec.EncodeID(fields, key)
}

// DecodeID calls Codec.DecodeID on a Codec with default options.
func DecodeID(id string, key []byte) (types.Fields, error) {
	return defaultCodec.DecodeID(id, key)
}

// DecodeIDUnsafely calls Codec.DecodeIDUnsafely on a Codec with default options.
func DecodeIDUnsafely(id string) (types.PartialFields, error) {
	return defaultCodec.DecodeIDUnsafely(id)
}

// IsValidID calls Codec.IsValidID on a Codec with default options.
func IsValidID(id string, key []byte) bool {
	return defaultCodec.IsValidID(id, key)
}

// IsValidIDUnsafely calls Codec.IsValidIDUnsafely on a Codec with default options.
func IsValidIDUnsafely(id string) bool {
	return defaultCodec.IsValidIDUnsafely(id)
}

// EncodeText calls Codec.EncodeText on a Codec with default options.
func EncodeText(fields types.TextFields, key []byte) (string, error) {
	return defaultCodec.EncodeText(fields, key)
}

// DecodeText calls Codec.DecodeText on a Codec with default options.
func DecodeText(id, envelopeHash string, key []byte) (types.TextFields, error) {
	return defaultCodec.DecodeText(id, envelopeHash, key)
}

// DecodeTextUnsafely calls Codec.DecodeTextUnsafely on a Codec with default options.
func DecodeTextUnsafely(id string) (types.PartialTextFields, error) {
	return defaultCodec.DecodeTextUnsafely(id)
}

// IsValidText calls Codec.IsValidText on a Codec with default options.
func IsValidText(id, envelopeHash string, key []byte) bool {
	return defaultCodec.IsValidText(id, envelopeHash, key)
}

// IsValidTextUnsafely calls Codec.IsValidTextUnsafely on a Codec with default options.
func IsValidTextUnsafely(id string) bool {
	return defaultCodec.IsValidTextUnsafely(id)
}
