package types

import "fmt"

// Fields is the record carried by a binary identifier.
//
// String fields use omitempty so that an empty value is reported as a
// missing required field by the validators rather than as a bad value.
type Fields struct {
	// Timestamp is seconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`

	// Region is a name from enum.Regions.
	Region string `json:"region,omitempty"`

	// Environment is a name from enum.Environments.
	Environment string `json:"environment,omitempty"`

	// ShortHash is the first 8 bytes of the record's content digest as
	// 16 lowercase hex characters.
	ShortHash string `json:"shortHash,omitempty"`

	// HashAlgorithm names the digest ShortHash was taken from; a name
	// from enum.HashAlgorithms.
	HashAlgorithm string `json:"hashAlgorithm,omitempty"`

	// RecordID is the 22-character alphanumeric id of the external record.
	RecordID string `json:"recordId,omitempty"`

	// RecordVersion is the version of the external record.
	RecordVersion int64 `json:"recordVersion"`
}

// Partial returns the fields that are safe to expose without authentication.
func (f Fields) Partial() PartialFields {
	return PartialFields{
		Timestamp:   f.Timestamp,
		Region:      f.Region,
		Environment: f.Environment,
	}
}

// String implements fmt.Stringer.
func (f Fields) String() string {
	return fmt.Sprintf("%s/%s %s@%d (%s:%s) t=%d",
		f.Region, f.Environment, f.RecordID, f.RecordVersion, f.HashAlgorithm, f.ShortHash, f.Timestamp)
}

// PartialFields is what an unauthenticated read of a binary identifier
// returns. It carries no record or content pointer.
type PartialFields struct {
	Timestamp   int64  `json:"timestamp"`
	Region      string `json:"region"`
	Environment string `json:"environment"`
}
