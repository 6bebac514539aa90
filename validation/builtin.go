package validation

import (
	"encoding/json"
	"fmt"

	"github.com/oklog/ulid/v2"

	"github.com/zero-day-ai/authid/enum"
	"github.com/zero-day-ai/authid/schema"
	"github.com/zero-day-ai/authid/types"
)

// Domain bounds of the identifier fields.
const (
	// MinTimestamp and MaxTimestamp bound binary identifiers, in seconds.
	MinTimestamp int64 = 1
	MaxTimestamp int64 = 2147483647

	// MinTextTimestamp (inclusive) and MaxTextTimestamp (exclusive) bound
	// text identifiers, in microseconds: [2022-01-01, 2122-01-01) UTC.
	MinTextTimestamp int64 = 1640995200000000
	MaxTextTimestamp int64 = 4796668800000000

	MaxRecordVersion int64 = 999999999

	ShortHashLength    = 16
	RecordIDLength     = 22
	SortableIDLength   = 26
	MinEnvelopeHashLen = 40
	MaxEnvelopeHashLen = 128

	TextVersion = 1
)

// Patterns of the fixed-format string fields.
const (
	ShortHashPattern    = "^[a-f0-9]+$"
	RecordIDPattern     = "^[A-Za-z0-9]+$"
	SortableIDPattern   = "^[0123456789ABCDEFGHJKMNPQRSTVWXYZ]+$"
	EnvelopeHashPattern = "^(?:[a-fA-F0-9]{2})+$"
)

// ConstraintFormat is reported when a sortable id matches its pattern but is
// not a valid ULID (its timestamp overflows 48 bits).
const ConstraintFormat = "format"

// FieldsSchema describes types.Fields.
func FieldsSchema() schema.JSON {
	return schema.Object(map[string]schema.JSON{
		"timestamp":     schema.IntRange(MinTimestamp, MaxTimestamp).WithDescription("seconds since epoch"),
		"region":        schema.EnumStrings(enum.Regions.Names()...),
		"environment":   schema.EnumStrings(enum.Environments.Names()...),
		"shortHash":     schema.FixedString(ShortHashLength, ShortHashPattern),
		"hashAlgorithm": schema.EnumStrings(enum.HashAlgorithms.Names()...),
		"recordId":      schema.FixedString(RecordIDLength, RecordIDPattern),
		"recordVersion": schema.IntRange(0, MaxRecordVersion),
	},
		"timestamp", "region", "environment", "shortHash",
		"hashAlgorithm", "recordId", "recordVersion",
	).Closed()
}

// PartialFieldsSchema describes types.PartialFields.
func PartialFieldsSchema() schema.JSON {
	full := FieldsSchema()
	return schema.Object(map[string]schema.JSON{
		"timestamp":   full.Properties["timestamp"],
		"region":      full.Properties["region"],
		"environment": full.Properties["environment"],
	}, "timestamp", "region", "environment").Closed()
}

// TextFieldsSchema describes types.TextFields.
func TextFieldsSchema() schema.JSON {
	partial := PartialTextFieldsSchema()
	minLen, maxLen := MinEnvelopeHashLen, MaxEnvelopeHashLen
	partial.Properties["envelopeHash"] = schema.JSON{
		Type:      "string",
		MinLength: &minLen,
		MaxLength: &maxLen,
		Pattern:   EnvelopeHashPattern,
	}
	partial.Required = append(partial.Required, "envelopeHash")
	return partial
}

// PartialTextFieldsSchema describes types.PartialTextFields.
func PartialTextFieldsSchema() schema.JSON {
	tsMin, tsMax := float64(MinTextTimestamp), float64(MaxTextTimestamp)
	return schema.Object(map[string]schema.JSON{
		"version":    schema.IntRange(TextVersion, TextVersion),
		"test":       schema.Bool(),
		"sortableId": schema.FixedString(SortableIDLength, SortableIDPattern),
		"timestamp": {
			Type:             "integer",
			Minimum:          &tsMin,
			ExclusiveMaximum: &tsMax,
			Description:      "microseconds since epoch",
		},
	}, "version", "test", "sortableId", "timestamp").Closed()
}

// SchemaDocument renders s as a standalone Draft 2020-12 JSON Schema document.
func SchemaDocument(s schema.JSON) ([]byte, error) {
	s.Schema = "https://json-schema.org/draft/2020-12/schema"
	return json.Marshal(s)
}

type builtin struct{}

// Builtin returns the validator for the identifier record types. It accepts
// types.Fields, types.PartialFields, types.TextFields and
// types.PartialTextFields (values or pointers).
func Builtin() Validator { return builtin{} }

func (builtin) Validate(v any) error {
	switch f := v.(type) {
	case *types.Fields:
		return validateFields(*f)
	case types.Fields:
		return validateFields(f)
	case *types.PartialFields:
		return fromViolations(PartialFieldsSchema().Check(*f))
	case types.PartialFields:
		return fromViolations(PartialFieldsSchema().Check(f))
	case *types.TextFields:
		return validateText(TextFieldsSchema(), *f, f.SortableID)
	case types.TextFields:
		return validateText(TextFieldsSchema(), f, f.SortableID)
	case *types.PartialTextFields:
		return validateText(PartialTextFieldsSchema(), *f, f.SortableID)
	case types.PartialTextFields:
		return validateText(PartialTextFieldsSchema(), f, f.SortableID)
	default:
		return fmt.Errorf("validation: unsupported record type %T", v)
	}
}

func validateFields(f types.Fields) error {
	vs := FieldsSchema().Check(f)
	for i := range vs {
		if vs[i].Field == "hashAlgorithm" && vs[i].Constraint == schema.KeywordEnum {
			vs[i].Message = fmt.Sprintf("unrecognized hash function %q", f.HashAlgorithm)
		}
	}
	return fromViolations(vs)
}

func validateText(s schema.JSON, record any, sortableID string) error {
	vs := s.Check(record)
	if !vs.Has("sortableId", schema.KeywordPattern) && len(sortableID) == SortableIDLength {
		if _, err := ulid.ParseStrict(sortableID); err != nil {
			vs = append(vs, schema.Violation{
				Field:      "sortableId",
				Constraint: ConstraintFormat,
				Message:    err.Error(),
			})
		}
	}
	return fromViolations(vs)
}

// CheckEnvelopeHash checks the shape of an envelope hash supplied on its own,
// as when decoding a text identifier.
func CheckEnvelopeHash(hash string) error {
	s := schema.Object(map[string]schema.JSON{
		"envelopeHash": TextFieldsSchema().Properties["envelopeHash"],
	}, "envelopeHash")
	return fromViolations(s.Check(map[string]any{"envelopeHash": hash}))
}
