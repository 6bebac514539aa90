// Package enum provides the append-only code tables embedded in identifiers.
//
// Identifiers carry enumerated values (region, environment, hash algorithm)
// as small integer codes rather than strings. Issued identifiers persist
// those raw codes, so a table may only ever grow at the end: an existing
// name keeps its code forever and codes are never reused.
//
// # Usage
//
// Look up a code by name, or a name by code:
//
//	code, ok := enum.Regions.Code("us-east-1") // 1, true
//	name, ok := enum.Environments.Name(1)      // "production", true
//
// # Append-only tables
//
// NewTable enforces the append-only rule at construction time: codes must be
// strictly increasing in declaration order and names must be unique. A table
// that violates the rule panics when the package is initialized, so a
// reordering or reuse is caught by any test run.
//
// # Thread Safety
//
// Tables are immutable after construction and safe for concurrent use.
package enum
