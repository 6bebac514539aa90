// Package validation checks identifier field records against their domains.
//
// Every validator implements the same contract:
//
//	Validate(v any) error
//
// It returns nil when v is acceptable, a *validation.Error listing every
// violated constraint when it is not, and any other error only when the
// validator itself is misconfigured.
//
// # Validators
//
//   - Builtin: the closed-schema rules of the identifier formats, including
//     enumerated code tables and sortable id parsing. The codec always runs it.
//   - JSONSchema: a compiled JSON Schema document (Draft 2020-12).
//   - CEL: caller-defined boolean rules written in the Common Expression
//     Language, evaluated against a "fields" map.
//   - Chain: runs several validators and merges their violations.
//
// # Reporting
//
// Violations are keyed "field/constraint", with JSON Schema keyword names
// for constraints (for example "shortHash/minLength" or
// "recordVersion/maximum"). CEL rules report the rule name as the field and
// "cel" as the constraint.
package validation
