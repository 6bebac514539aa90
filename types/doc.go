// Package types defines the field records carried inside authenticated identifiers.
//
// Two identifier variants exist and each has its own record type:
//
//   - Fields: the binary variant (protobuf + zlib + base-32). It points at an
//     external record (RecordID, RecordVersion) and at the content hash of
//     that record (ShortHash, HashAlgorithm).
//   - TextFields: the delimited text variant ("T10_..."). It carries a
//     sortable identifier and a microsecond timestamp, and is bound to an
//     externally supplied envelope hash.
//
// The Partial* types hold the subset of fields that may be read from an
// identifier without verifying its authentication tag. They intentionally
// omit every field that points at external data.
//
// # Health Types
//
// HealthStatus reports the outcome of the self-checks in package health:
//
//	status := types.NewHealthyStatus("key source", "key fetched")
//	if status.IsHealthy() {
//	    // ready to encode
//	}
package types
