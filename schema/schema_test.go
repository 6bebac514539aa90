package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	s := String()
	assert.Equal(t, "string", s.Type)
	assert.NoError(t, s.Validate("hello"))

	err := s.Validate(123)
	require.Error(t, err)
	vs, ok := err.(Violations)
	require.True(t, ok)
	assert.True(t, vs.Has("", KeywordType))
}

func TestFixedString(t *testing.T) {
	s := FixedString(4, "^[a-f0-9]+$")

	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{name: "valid", value: "beef"},
		{name: "too short", value: "bee", want: []string{KeywordMinLength}},
		{name: "too long", value: "beefe", want: []string{KeywordMaxLength}},
		{name: "bad chars", value: "BEEF", want: []string{KeywordPattern}},
		{name: "short and bad", value: "XY", want: []string{KeywordMinLength, KeywordPattern}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vs := s.Check(tt.value)
			got := make([]string, len(vs))
			for i, v := range vs {
				got[i] = v.Constraint
			}
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntRange(t *testing.T) {
	s := IntRange(0, 999999999)

	assert.NoError(t, s.Validate(0))
	assert.NoError(t, s.Validate(int64(999999999)))
	assert.NoError(t, s.Validate(json.Number("42")))

	vs := s.Check(int64(1000000000))
	require.Len(t, vs, 1)
	assert.Equal(t, KeywordMaximum, vs[0].Constraint)
	assert.Contains(t, vs[0].Message, "1000000000")

	vs = s.Check(-1)
	require.Len(t, vs, 1)
	assert.Equal(t, KeywordMinimum, vs[0].Constraint)

	vs = s.Check(1.5)
	require.Len(t, vs, 1)
	assert.Equal(t, KeywordType, vs[0].Constraint)

	vs = s.Check("7")
	require.Len(t, vs, 1)
	assert.Equal(t, KeywordType, vs[0].Constraint)
}

func TestExclusiveMaximum(t *testing.T) {
	max := 10.0
	s := JSON{Type: "integer", ExclusiveMaximum: &max}

	assert.NoError(t, s.Validate(9))
	assert.True(t, s.Check(10).Has("", KeywordExclusiveMaximum))
}

func TestEnum(t *testing.T) {
	s := EnumStrings("production", "staging")

	assert.NoError(t, s.Validate("staging"))
	assert.True(t, s.Check("foo").Has("", KeywordEnum))

	numeric := Enum(1, 2, 3)
	assert.NoError(t, numeric.Validate(int64(2)))
	assert.NoError(t, numeric.Validate(json.Number("3")))
	assert.Error(t, numeric.Validate(4))
}

func TestObjectCollectsAllViolations(t *testing.T) {
	s := Object(map[string]JSON{
		"recordId":      FixedString(22, "^[A-Za-z0-9]+$"),
		"recordVersion": IntRange(0, 999999999),
		"region":        EnumStrings("us-east-1"),
	}, "recordId", "recordVersion", "region").Closed()

	err := s.Validate(map[string]any{
		"recordVersion": 1000000000,
		"extra":         true,
	})
	require.Error(t, err)

	vs := err.(Violations)
	assert.True(t, vs.Has("recordId", KeywordRequired))
	assert.True(t, vs.Has("region", KeywordRequired))
	assert.True(t, vs.Has("recordVersion", KeywordMaximum))
	assert.True(t, vs.Has("extra", KeywordAdditionalProperties))
	assert.Len(t, vs, 4)
	assert.Contains(t, err.Error(), "recordVersion/maximum")
}

func TestObjectFromStruct(t *testing.T) {
	type record struct {
		Name  string `json:"name,omitempty"`
		Count int    `json:"count"`
	}

	s := Object(map[string]JSON{
		"name":  String(),
		"count": IntRange(1, 5),
	}, "name", "count")

	assert.NoError(t, s.Validate(record{Name: "a", Count: 3}))

	vs := s.Check(record{Count: 9})
	assert.True(t, vs.Has("name", KeywordRequired))
	assert.True(t, vs.Has("count", KeywordMaximum))
}

func TestOpenObjectAllowsExtras(t *testing.T) {
	s := Object(map[string]JSON{"a": Int()})
	assert.NoError(t, s.Validate(map[string]any{"a": 1, "b": "x"}))
}

func TestNestedPath(t *testing.T) {
	s := Object(map[string]JSON{
		"inner": Object(map[string]JSON{"n": IntRange(0, 1)}, "n"),
	})

	vs := s.Check(map[string]any{"inner": map[string]any{"n": 2}})
	require.Len(t, vs, 1)
	assert.Equal(t, "inner.n/maximum", vs[0].Key())
}

func TestNullValue(t *testing.T) {
	assert.True(t, String().Check(nil).Has("", KeywordType))
	assert.Empty(t, JSON{}.Check(nil))
}

func TestInvalidPattern(t *testing.T) {
	s := JSON{Type: "string", Pattern: "("}
	assert.True(t, s.Check("x").Has("", KeywordPattern))
}

func TestMarshalProducesJSONSchema(t *testing.T) {
	s := Object(map[string]JSON{"v": IntRange(0, 9)}, "v").Closed()

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "object",
		"properties": {"v": {"type": "integer", "minimum": 0, "maximum": 9}},
		"required": ["v"],
		"additionalProperties": false
	}`, string(data))
}
