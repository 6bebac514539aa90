package types

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// TextFields is the record carried by a delimited text identifier.
type TextFields struct {
	// Version is the layout version. Only 1 is defined.
	Version int `json:"version"`

	// Test marks identifiers that refer to test data.
	Test bool `json:"test"`

	// SortableID is a 26-character ULID supplied by the caller.
	SortableID string `json:"sortableId,omitempty"`

	// Timestamp is microseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`

	// EnvelopeHash is the hex-encoded hash of the content this identifier
	// is bound to. It is not embedded in the identifier; callers supply it
	// again when decoding.
	EnvelopeHash string `json:"envelopeHash,omitempty"`
}

// Partial returns the fields that are safe to expose without authentication.
func (f TextFields) Partial() PartialTextFields {
	return PartialTextFields{
		Version:    f.Version,
		Test:       f.Test,
		SortableID: f.SortableID,
		Timestamp:  f.Timestamp,
	}
}

// Time returns Timestamp as a time.Time in UTC.
func (f TextFields) Time() time.Time {
	return time.UnixMicro(f.Timestamp).UTC()
}

// PartialTextFields is what an unauthenticated read of a text identifier
// returns. It never carries the envelope hash.
type PartialTextFields struct {
	Version    int    `json:"version"`
	Test       bool   `json:"test"`
	SortableID string `json:"sortableId"`
	Timestamp  int64  `json:"timestamp"`
}

// SortableTime returns the millisecond creation time embedded in SortableID.
func (p PartialTextFields) SortableTime() (time.Time, error) {
	id, err := ulid.ParseStrict(p.SortableID)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()).UTC(), nil
}
