package authid

import (
	"log/slog"

	"github.com/zero-day-ai/authid/mac"
	"github.com/zero-day-ai/authid/types"
	"github.com/zero-day-ai/authid/validation"
)

// TagLength is the number of HMAC-SHA256 bytes carried by every Id.
const TagLength = mac.TagLength

// Codec encodes and decodes both identifier variants. A Codec is immutable
// and safe for concurrent use. It never stores keys.
type Codec struct {
	binary *pipeline[types.Fields, types.PartialFields]
	text   *pipeline[types.TextFields, types.PartialTextFields]
}

// NewCodec returns a Codec configured by opts.
func NewCodec(opts ...Option) *Codec {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := func() *slog.Logger {
		if cfg.logger != nil {
			return cfg.logger
		}
		return slog.Default()
	}

	metrics, err := newCodecMetrics(cfg.meter)
	if err != nil {
		logger().Warn("authid metrics disabled", "error", err)
	}

	validators := append([]validation.Validator{validation.Builtin()}, cfg.validators...)
	v := validation.Chain(validators...)

	return &Codec{
		binary: &pipeline[types.Fields, types.PartialFields]{
			layout:    binaryLayout{},
			validator: v,
			prefix:    cfg.prefix,
			logger:    logger,
			metrics:   metrics,
		},
		text: &pipeline[types.TextFields, types.PartialTextFields]{
			layout:    textLayout{},
			validator: v,
			logger:    logger,
			metrics:   metrics,
		},
	}
}

// EncodeID validates fields and renders them as an authenticated binary Id.
// key must be BinaryKeyLength bytes.
func (c *Codec) EncodeID(fields types.Fields, key []byte) (string, error) {
	return c.binary.encode("EncodeID", fields, key)
}

// DecodeID authenticates a binary Id and returns its fields. The tag is
// checked before any payload is interpreted.
func (c *Codec) DecodeID(id string, key []byte) (types.Fields, error) {
	return c.binary.decode("DecodeID", id, "", key)
}

// DecodeIDUnsafely returns the unprotected fields of a binary Id without
// checking its tag. The result must not be used for trust decisions.
func (c *Codec) DecodeIDUnsafely(id string) (types.PartialFields, error) {
	return c.binary.decodeUnsafely("DecodeIDUnsafely", id)
}

// IsValidID reports whether DecodeID succeeds.
func (c *Codec) IsValidID(id string, key []byte) bool {
	_, err := c.DecodeID(id, key)
	return err == nil
}

// IsValidIDUnsafely reports whether DecodeIDUnsafely succeeds.
func (c *Codec) IsValidIDUnsafely(id string) bool {
	_, err := c.DecodeIDUnsafely(id)
	return err == nil
}

// EncodeText validates fields and renders them as an authenticated text Id
// bound to fields.EnvelopeHash. The sortable id is uppercased first. key must
// be TextKeyMinLength to TextKeyMaxLength bytes.
func (c *Codec) EncodeText(fields types.TextFields, key []byte) (string, error) {
	return c.text.encode("EncodeText", fields, key)
}

// DecodeText authenticates a text Id against envelopeHash and returns its
// fields.
//
// The codec only checks the shape of envelopeHash. Callers must obtain it
// from a source they already trust; the Id vouches for the pairing, not for
// the hash.
func (c *Codec) DecodeText(id, envelopeHash string, key []byte) (types.TextFields, error) {
	return c.text.decode("DecodeText", id, envelopeHash, key)
}

// DecodeTextUnsafely parses a text Id without checking its tag.
func (c *Codec) DecodeTextUnsafely(id string) (types.PartialTextFields, error) {
	return c.text.decodeUnsafely("DecodeTextUnsafely", id)
}

// IsValidText reports whether DecodeText succeeds.
func (c *Codec) IsValidText(id, envelopeHash string, key []byte) bool {
	_, err := c.DecodeText(id, envelopeHash, key)
	return err == nil
}

// IsValidTextUnsafely reports whether DecodeTextUnsafely succeeds.
func (c *Codec) IsValidTextUnsafely(id string) bool {
	_, err := c.DecodeTextUnsafely(id)
	return err == nil
}
