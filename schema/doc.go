// Package schema provides a JSON-Schema-shaped constraint model for identifier fields.
//
// A schema.JSON value describes the domain of a record: types, enumerations,
// numeric bounds, string lengths, patterns, required properties, and whether
// extra properties are allowed. Validation walks the whole value and
// collects every violation instead of stopping at the first one.
//
// # Basic Usage
//
//	fieldsSchema := schema.Object(map[string]schema.JSON{
//		"recordId":      schema.FixedString(22, "^[A-Za-z0-9]+$"),
//		"recordVersion": schema.IntRange(0, 999999999),
//		"region":        schema.Enum("us-east-1"),
//	}, "recordId", "recordVersion", "region").Closed()
//
//	err := fieldsSchema.Validate(map[string]any{"recordVersion": 1000000000})
//	// err is schema.Violations:
//	//   recordId/required, region/required, recordVersion/maximum
//
// # Violations
//
// Each Violation names the field (a "."-separated path for nested values)
// and the JSON Schema keyword that failed, so errors read as
// "recordVersion/maximum". The keyword names match what standard JSON Schema
// validators report, which lets package validation merge results from this
// package and from compiled JSON Schema documents.
//
// # Serialization
//
// schema.JSON marshals to a standard JSON Schema document. Package validation
// uses this to hand the same constraints to an external schema compiler.
package schema
