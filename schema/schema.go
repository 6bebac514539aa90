package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// JSON represents a JSON Schema definition.
type JSON struct {
	Schema               string          `json:"$schema,omitempty"`
	Type                 string          `json:"type,omitempty"`
	Description          string          `json:"description,omitempty"`
	Properties           map[string]JSON `json:"properties,omitempty"`
	Required             []string        `json:"required,omitempty"`
	AdditionalProperties *bool           `json:"additionalProperties,omitempty"`
	Enum                 []any           `json:"enum,omitempty"`
	Minimum              *float64        `json:"minimum,omitempty"`
	Maximum              *float64        `json:"maximum,omitempty"`
	ExclusiveMaximum     *float64        `json:"exclusiveMaximum,omitempty"`
	MinLength            *int            `json:"minLength,omitempty"`
	MaxLength            *int            `json:"maxLength,omitempty"`
	Pattern              string          `json:"pattern,omitempty"`
}

// Constraint keywords reported in violations.
const (
	KeywordType                 = "type"
	KeywordEnum                 = "enum"
	KeywordMinimum              = "minimum"
	KeywordMaximum              = "maximum"
	KeywordExclusiveMaximum     = "exclusiveMaximum"
	KeywordMinLength            = "minLength"
	KeywordMaxLength            = "maxLength"
	KeywordPattern              = "pattern"
	KeywordRequired             = "required"
	KeywordAdditionalProperties = "additionalProperties"
)

// String creates a JSON schema for a string type.
func String() JSON {
	return JSON{Type: "string"}
}

// FixedString creates a string schema of exactly n characters matching pattern.
// An empty pattern disables the pattern check.
func FixedString(n int, pattern string) JSON {
	return JSON{Type: "string", MinLength: &n, MaxLength: &n, Pattern: pattern}
}

// Int creates a JSON schema for an integer type.
func Int() JSON {
	return JSON{Type: "integer"}
}

// IntRange creates an integer schema bounded by min and max, inclusive.
func IntRange(min, max int64) JSON {
	lo, hi := float64(min), float64(max)
	return JSON{Type: "integer", Minimum: &lo, Maximum: &hi}
}

// Bool creates a JSON schema for a boolean type.
func Bool() JSON {
	return JSON{Type: "boolean"}
}

// Object creates a JSON schema for an object type with the specified properties and required fields.
func Object(properties map[string]JSON, required ...string) JSON {
	return JSON{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// Enum creates a JSON schema with enumerated values.
func Enum(values ...any) JSON {
	return JSON{Enum: values}
}

// EnumStrings creates a string schema restricted to names.
func EnumStrings(names ...string) JSON {
	values := make([]any, len(names))
	for i, n := range names {
		values[i] = n
	}
	return JSON{Type: "string", Enum: values}
}

// Closed returns a copy of an object schema that rejects unknown properties.
func (s JSON) Closed() JSON {
	closed := false
	s.AdditionalProperties = &closed
	return s
}

// WithDescription returns a copy of the schema with a description.
func (s JSON) WithDescription(desc string) JSON {
	s.Description = desc
	return s
}

// Violation is a single failed constraint.
type Violation struct {
	// Field is the path of the offending value; empty for the root.
	Field string `json:"field"`

	// Constraint is the JSON Schema keyword that failed.
	Constraint string `json:"constraint"`

	// Message describes the failure.
	Message string `json:"message"`
}

// Key returns "field/constraint".
func (v Violation) Key() string {
	if v.Field == "" {
		return v.Constraint
	}
	return v.Field + "/" + v.Constraint
}

// String implements fmt.Stringer.
func (v Violation) String() string {
	return v.Key() + ": " + v.Message
}

// Violations is a non-empty list of failed constraints. It implements error.
type Violations []Violation

// Error implements the error interface.
func (vs Violations) Error() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, "; ")
}

// Has reports whether any violation matches field and constraint.
func (vs Violations) Has(field, constraint string) bool {
	for _, v := range vs {
		if v.Field == field && v.Constraint == constraint {
			return true
		}
	}
	return false
}

// Validate validates value against the schema and returns Violations, or
// nil when the value conforms.
func (s JSON) Validate(value any) error {
	vs := s.Check(value)
	if len(vs) == 0 {
		return nil
	}
	return vs
}

// Check returns every violation of the schema by value, in a stable order.
func (s JSON) Check(value any) Violations {
	var vs Violations
	s.check("", value, &vs)
	return vs
}

func (s JSON) check(path string, value any, vs *Violations) {
	add := func(keyword, format string, args ...any) {
		*vs = append(*vs, Violation{Field: path, Constraint: keyword, Message: fmt.Sprintf(format, args...)})
	}

	if value == nil {
		if s.Type != "" {
			add(KeywordType, "expected %s, got null", s.Type)
		}
		return
	}

	if s.Type != "" {
		if err := s.validateType(value); err != nil {
			add(KeywordType, "%v", err)
			return
		}
	}

	if len(s.Enum) > 0 && !s.inEnum(value) {
		add(KeywordEnum, "value %v is not one of the allowed values: %v", value, s.Enum)
	}

	switch s.Type {
	case "string":
		s.checkString(reflect.ValueOf(value).String(), add)
	case "integer", "number":
		if num, ok := toFloat(value); ok {
			s.checkNumeric(num, add)
		}
	case "object":
		s.checkObject(path, value, vs)
	}
}

// validateType checks if the value matches the expected type.
func (s JSON) validateType(value any) error {
	if n, ok := value.(json.Number); ok {
		switch s.Type {
		case "number":
			return nil
		case "integer":
			if _, err := n.Int64(); err != nil {
				return fmt.Errorf("expected integer, got %s", n)
			}
			return nil
		default:
			return fmt.Errorf("expected %s, got number", s.Type)
		}
	}

	v := reflect.ValueOf(value)

	switch s.Type {
	case "string":
		if v.Kind() != reflect.String {
			return fmt.Errorf("expected string, got %T", value)
		}
	case "integer":
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		case reflect.Float32, reflect.Float64:
			f := v.Float()
			if f != math.Trunc(f) {
				return fmt.Errorf("expected integer, got float with decimal: %v", value)
			}
		default:
			return fmt.Errorf("expected integer, got %T", value)
		}
	case "number":
		switch v.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
		default:
			return fmt.Errorf("expected number, got %T", value)
		}
	case "boolean":
		if v.Kind() != reflect.Bool {
			return fmt.Errorf("expected boolean, got %T", value)
		}
	case "object":
		if v.Kind() != reflect.Map && v.Kind() != reflect.Struct {
			return fmt.Errorf("expected object, got %T", value)
		}
	}

	return nil
}

func (s JSON) checkString(str string, add func(string, string, ...any)) {
	if s.MinLength != nil && len(str) < *s.MinLength {
		add(KeywordMinLength, "length %d is less than minimum %d", len(str), *s.MinLength)
	}
	if s.MaxLength != nil && len(str) > *s.MaxLength {
		add(KeywordMaxLength, "length %d is greater than maximum %d", len(str), *s.MaxLength)
	}
	if s.Pattern != "" {
		re, err := compilePattern(s.Pattern)
		if err != nil {
			add(KeywordPattern, "invalid pattern %s: %v", s.Pattern, err)
			return
		}
		if !re.MatchString(str) {
			add(KeywordPattern, "%q does not match pattern %s", str, s.Pattern)
		}
	}
}

func (s JSON) checkNumeric(num float64, add func(string, string, ...any)) {
	if s.Minimum != nil && num < *s.Minimum {
		add(KeywordMinimum, "%s is less than minimum %s", formatNum(num), formatNum(*s.Minimum))
	}
	if s.Maximum != nil && num > *s.Maximum {
		add(KeywordMaximum, "%s is greater than maximum %s", formatNum(num), formatNum(*s.Maximum))
	}
	if s.ExclusiveMaximum != nil && num >= *s.ExclusiveMaximum {
		add(KeywordExclusiveMaximum, "%s is not less than %s", formatNum(num), formatNum(*s.ExclusiveMaximum))
	}
}

func (s JSON) checkObject(path string, value any, vs *Violations) {
	objMap, err := toMap(value)
	if err != nil {
		*vs = append(*vs, Violation{Field: path, Constraint: KeywordType, Message: err.Error()})
		return
	}

	for _, req := range s.Required {
		if _, exists := objMap[req]; !exists {
			*vs = append(*vs, Violation{
				Field:      join(path, req),
				Constraint: KeywordRequired,
				Message:    "required field is missing",
			})
		}
	}

	keys := make([]string, 0, len(objMap))
	for k := range objMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		propSchema, exists := s.Properties[key]
		if !exists {
			if s.AdditionalProperties != nil && !*s.AdditionalProperties {
				*vs = append(*vs, Violation{
					Field:      join(path, key),
					Constraint: KeywordAdditionalProperties,
					Message:    "unknown field",
				})
			}
			continue
		}
		propSchema.check(join(path, key), objMap[key], vs)
	}
}

// inEnum reports whether value equals one of the allowed enum values.
// Numbers compare by value regardless of their Go type.
func (s JSON) inEnum(value any) bool {
	num, isNum := toFloat(value)
	for _, enumVal := range s.Enum {
		if reflect.DeepEqual(value, enumVal) {
			return true
		}
		if isNum {
			if e, ok := toFloat(enumVal); ok && e == num {
				return true
			}
		}
	}
	return false
}

func toMap(value any) (map[string]any, error) {
	if m, ok := value.(map[string]any); ok {
		return m, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal object: %w", err)
	}
	var m map[string]any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal object: %w", err)
	}
	return m, nil
}

func toFloat(value any) (float64, bool) {
	if n, ok := value.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	}
	return 0, false
}

func formatNum(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e18 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", f)
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

var patterns sync.Map // pattern -> *regexp.Regexp

func compilePattern(p string) (*regexp.Regexp, error) {
	if re, ok := patterns.Load(p); ok {
		return re.(*regexp.Regexp), nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, err
	}
	patterns.Store(p, re)
	return re, nil
}
