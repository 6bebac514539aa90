package canonical

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/zero-day-ai/authid/enum"
	"github.com/zero-day-ai/authid/types"
)

// Field numbers of the wire layout.
const (
	FieldTimestamp     protowire.Number = 1
	FieldRegion        protowire.Number = 2
	FieldEnvironment   protowire.Number = 3
	FieldShortHash     protowire.Number = 4
	FieldHashAlgorithm protowire.Number = 5
	FieldRecordID      protowire.Number = 6
	FieldRecordVersion protowire.Number = 7
)

// Fixed lengths of the bytes fields.
const (
	ShortHashBytes = 8
	RecordIDBytes  = 22
)

// ErrMalformed is returned for payloads that are not in canonical form.
var ErrMalformed = errors.New("canonical: malformed payload")

// ErrUnencodable is returned by Encode for values that have no wire
// representation (unknown enum names, negative numbers, bad short hash).
var ErrUnencodable = errors.New("canonical: value cannot be encoded")

// Encode returns the canonical bytes of f. Callers are expected to have
// validated f already; Encode only rejects values it cannot represent.
func Encode(f types.Fields) ([]byte, error) {
	if f.Timestamp < 0 || f.RecordVersion < 0 {
		return nil, fmt.Errorf("%w: negative number", ErrUnencodable)
	}

	var (
		region, env, algo uint64
		err               error
	)
	if region, err = lookup(enum.Regions, f.Region); err != nil {
		return nil, err
	}
	if env, err = lookup(enum.Environments, f.Environment); err != nil {
		return nil, err
	}
	if algo, err = lookup(enum.HashAlgorithms, f.HashAlgorithm); err != nil {
		return nil, err
	}

	var shortHash []byte
	if f.ShortHash != "" {
		shortHash, err = hex.DecodeString(f.ShortHash)
		if err != nil || len(shortHash) != ShortHashBytes {
			return nil, fmt.Errorf("%w: short hash must be %d hex-encoded bytes", ErrUnencodable, ShortHashBytes)
		}
	}

	b := make([]byte, 0, 64)
	b = appendVarint(b, FieldTimestamp, uint64(f.Timestamp))
	b = appendVarint(b, FieldRegion, region)
	b = appendVarint(b, FieldEnvironment, env)
	if len(shortHash) > 0 {
		b = protowire.AppendTag(b, FieldShortHash, protowire.BytesType)
		b = protowire.AppendBytes(b, shortHash)
	}
	b = appendVarint(b, FieldHashAlgorithm, algo)
	if f.RecordID != "" {
		b = protowire.AppendTag(b, FieldRecordID, protowire.BytesType)
		b = protowire.AppendString(b, f.RecordID)
	}
	b = appendVarint(b, FieldRecordVersion, uint64(f.RecordVersion))
	return b, nil
}

// Decode parses canonical bytes. Absent fields decode to their zero value.
func Decode(b []byte) (types.Fields, error) {
	var (
		f    types.Fields
		last protowire.Number
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return types.Fields{}, malformed("field tag: %v", protowire.ParseError(n))
		}
		if num <= last {
			return types.Fields{}, malformed("field %d out of order", num)
		}
		if num > FieldRecordVersion {
			return types.Fields{}, malformed("unknown field %d", num)
		}
		last = num
		b = b[n:]

		if want := wireType(num); typ != want {
			return types.Fields{}, malformed("field %d has wire type %d, want %d", num, typ, want)
		}

		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return types.Fields{}, malformed("field %d: %v", num, protowire.ParseError(n))
			}
			b = b[n:]
			if err := setVarint(&f, num, v); err != nil {
				return types.Fields{}, err
			}
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return types.Fields{}, malformed("field %d: %v", num, protowire.ParseError(n))
			}
			b = b[n:]
			if err := setBytes(&f, num, v); err != nil {
				return types.Fields{}, err
			}
		}
	}
	return f, nil
}

func wireType(num protowire.Number) protowire.Type {
	if num == FieldShortHash || num == FieldRecordID {
		return protowire.BytesType
	}
	return protowire.VarintType
}

func setVarint(f *types.Fields, num protowire.Number, v uint64) error {
	switch num {
	case FieldTimestamp:
		if v > math.MaxInt64 {
			return malformed("timestamp overflows int64")
		}
		f.Timestamp = int64(v)
	case FieldRegion:
		name, err := nameOf(enum.Regions, v)
		if err != nil {
			return err
		}
		f.Region = name
	case FieldEnvironment:
		name, err := nameOf(enum.Environments, v)
		if err != nil {
			return err
		}
		f.Environment = name
	case FieldHashAlgorithm:
		name, err := nameOf(enum.HashAlgorithms, v)
		if err != nil {
			return err
		}
		f.HashAlgorithm = name
	case FieldRecordVersion:
		if v > math.MaxInt64 {
			return malformed("record version overflows int64")
		}
		f.RecordVersion = int64(v)
	}
	return nil
}

func setBytes(f *types.Fields, num protowire.Number, v []byte) error {
	switch num {
	case FieldShortHash:
		if len(v) != ShortHashBytes {
			return malformed("short hash is %d bytes, want %d", len(v), ShortHashBytes)
		}
		f.ShortHash = hex.EncodeToString(v)
	case FieldRecordID:
		if len(v) != RecordIDBytes {
			return malformed("record id is %d bytes, want %d", len(v), RecordIDBytes)
		}
		f.RecordID = string(v)
	}
	return nil
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// lookup maps an enum name to its code. The empty name encodes as absent.
func lookup(t *enum.Table, n string) (uint64, error) {
	if n == "" {
		return 0, nil
	}
	code, ok := t.Code(n)
	if !ok {
		return 0, fmt.Errorf("%w: unknown %s %q", ErrUnencodable, t.Label(), n)
	}
	return code, nil
}

func nameOf(t *enum.Table, code uint64) (string, error) {
	n, ok := t.Name(code)
	if !ok {
		return "", malformed("unknown %s code %d", t.Label(), code)
	}
	return n, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
