package authid

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zero-day-ai/authid/crockford"
	"github.com/zero-day-ai/authid/mac"
	"github.com/zero-day-ai/authid/types"
	"github.com/zero-day-ai/authid/validation"
)

// Text variant constants.
const (
	TextPrefix       = 'T'
	TextSeparator    = '_'
	TextVersion      = validation.TextVersion
	TextKeyMinLength = 32
	TextKeyMaxLength = 64
)

// textPattern is the only accepted shape of a text Id:
// T{version}{test}_{sortable id}_{microseconds}_{tag}.
var textPattern = regexp.MustCompile(
	`^T(1)(0|1)_[` + crockford.Alphabet + `]{26}_([0-9]{16})_[0-9A-F]{32}$`,
)

// textLayout renders T1{test}_{sortable id}_{timestamp}_{HEX tag}, with the
// tag computed over the Id base and the envelope hash.
type textLayout struct{}

func (textLayout) format() Format   { return FormatText }
func (textLayout) keys() mac.Policy { return mac.Text }

func (textLayout) normalize(f types.TextFields) types.TextFields {
	f.SortableID = strings.ToUpper(f.SortableID)
	return f
}

func (textLayout) binding(f types.TextFields) string { return f.EnvelopeHash }

func (textLayout) checkBinding(hash string) error {
	return validation.CheckEnvelopeHash(hash)
}

func (textLayout) canonicalize(f types.TextFields) ([]byte, error) {
	test := 0
	if f.Test {
		test = 1
	}
	base := fmt.Sprintf("%c%d%d%c%s%c%d",
		TextPrefix, f.Version, test,
		TextSeparator, f.SortableID,
		TextSeparator, f.Timestamp,
	)
	return []byte(base), nil
}

func (textLayout) message(payload []byte, binding string) []byte {
	msg := make([]byte, 0, len(payload)+1+len(binding))
	msg = append(msg, payload...)
	msg = append(msg, TextSeparator)
	return append(msg, binding...)
}

func (textLayout) render(payload, tag []byte, _ bool) string {
	return string(payload) + string(TextSeparator) + strings.ToUpper(hex.EncodeToString(tag))
}

func (textLayout) parse(id string) ([]byte, []byte, error) {
	if !textPattern.MatchString(id) {
		return nil, nil, fmt.Errorf("%q does not match %s", id, textPattern)
	}
	i := strings.LastIndexByte(id, TextSeparator)
	tag, err := hex.DecodeString(id[i+1:])
	if err != nil {
		return nil, nil, err
	}
	return []byte(id[:i]), tag, nil
}

func (textLayout) decanonicalize(payload []byte, binding string) (types.TextFields, error) {
	parts := strings.Split(string(payload), string(TextSeparator))
	if len(parts) != 3 || len(parts[0]) != 3 {
		return types.TextFields{}, fmt.Errorf("unexpected segments in %q", payload)
	}
	head, sortableID, micros := parts[0], parts[1], parts[2]

	version, err := strconv.Atoi(head[1:2])
	if err != nil {
		return types.TextFields{}, fmt.Errorf("version: %w", err)
	}
	ts, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return types.TextFields{}, fmt.Errorf("timestamp: %w", err)
	}

	return types.TextFields{
		Version:      version,
		Test:         head[2] == '1',
		SortableID:   sortableID,
		Timestamp:    ts,
		EnvelopeHash: binding,
	}, nil
}

func (textLayout) partial(f types.TextFields) types.PartialTextFields { return f.Partial() }
