package authid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zero-day-ai/authid/canonical"
	"github.com/zero-day-ai/authid/crockford"
	"github.com/zero-day-ai/authid/deflate"
	"github.com/zero-day-ai/authid/mac"
	"github.com/zero-day-ai/authid/types"
)

// Prefix is the optional literal that starts binary Ids. It contains a U,
// which is outside the base-32 alphabet, so it can always be told apart from
// the encoded body.
const Prefix = "truestamp"

// BinaryKeyLength is the only key length accepted by the binary variant.
const BinaryKeyLength = 64

var errShortID = errors.New("ID too short")

// binaryLayout renders Crockford(tag || zlib(protobuf(fields))).
type binaryLayout struct{}

func (binaryLayout) format() Format   { return FormatBinary }
func (binaryLayout) keys() mac.Policy { return mac.Binary }

func (binaryLayout) normalize(f types.Fields) types.Fields { return f }
func (binaryLayout) binding(types.Fields) string           { return "" }
func (binaryLayout) checkBinding(string) error             { return nil }

func (binaryLayout) canonicalize(f types.Fields) ([]byte, error) {
	raw, err := canonical.Encode(f)
	if err != nil {
		return nil, err
	}
	return deflate.Compress(raw)
}

func (binaryLayout) message(payload []byte, _ string) []byte { return payload }

func (binaryLayout) render(payload, tag []byte, prefix bool) string {
	raw := make([]byte, 0, len(tag)+len(payload))
	raw = append(raw, tag...)
	raw = append(raw, payload...)

	body := crockford.Encode(raw)
	if prefix {
		return Prefix + body
	}
	return body
}

func (binaryLayout) parse(id string) ([]byte, []byte, error) {
	raw, err := crockford.Decode(stripPrefix(id))
	if err != nil {
		return nil, nil, err
	}
	if len(raw) <= TagLength {
		return nil, nil, fmt.Errorf("%w: %d bytes", errShortID, len(raw))
	}
	return raw[TagLength:], raw[:TagLength], nil
}

func (binaryLayout) decanonicalize(payload []byte, _ string) (types.Fields, error) {
	raw, err := deflate.Decompress(payload)
	if err != nil {
		return types.Fields{}, err
	}
	return canonical.Decode(raw)
}

func (binaryLayout) partial(f types.Fields) types.PartialFields { return f.Partial() }

// stripPrefix removes Prefix, in any case, from the start of id.
func stripPrefix(id string) string {
	if len(id) >= len(Prefix) && strings.EqualFold(id[:len(Prefix)], Prefix) {
		return id[len(Prefix):]
	}
	return id
}
