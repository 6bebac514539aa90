package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/zero-day-ai/authid/schema"
)

const jsonSchemaURL = "https://authid.schemas.local/fields.schema.json"

// JSONSchema validates records against a compiled JSON Schema document.
type JSONSchema struct {
	compiled *jsonschema.Schema
}

// NewJSONSchema compiles a JSON Schema document. Documents without a
// "$schema" keyword are treated as Draft 2020-12.
func NewJSONSchema(document []byte) (*JSONSchema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(jsonSchemaURL, bytes.NewReader(document)); err != nil {
		return nil, fmt.Errorf("validation: schema load failed: %w", err)
	}
	compiled, err := c.Compile(jsonSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("validation: schema compile failed: %w", err)
	}
	return &JSONSchema{compiled: compiled}, nil
}

// Validate implements Validator. v is converted to its JSON form first, so
// struct records are checked by their json tag names.
func (j *JSONSchema) Validate(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("validation: marshal record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("validation: decode record: %w", err)
	}

	err = j.compiled.Validate(doc)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("validation: %w", err)
	}

	var vs schema.Violations
	collectLeaves(verr, &vs)
	return fromViolations(vs)
}

func collectLeaves(e *jsonschema.ValidationError, vs *schema.Violations) {
	if len(e.Causes) == 0 {
		*vs = append(*vs, schema.Violation{
			Field:      instanceField(e.InstanceLocation),
			Constraint: lastSegment(e.KeywordLocation),
			Message:    e.Message,
		})
		return
	}
	for _, c := range e.Causes {
		collectLeaves(c, vs)
	}
}

// instanceField turns a JSON pointer ("/a/b") into a field path ("a.b").
func instanceField(pointer string) string {
	return strings.ReplaceAll(strings.TrimPrefix(pointer, "/"), "/", ".")
}

func lastSegment(pointer string) string {
	if i := strings.LastIndex(pointer, "/"); i >= 0 {
		return pointer[i+1:]
	}
	return pointer
}
