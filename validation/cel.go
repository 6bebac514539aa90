package validation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/cel-go/cel"

	"github.com/zero-day-ai/authid/schema"
)

// ConstraintCEL is the constraint name reported for failed CEL rules.
const ConstraintCEL = "cel"

// Rule is a named CEL expression that must evaluate to true for a record to
// be accepted. The record is bound to the variable "fields" as a map keyed by
// the record's json names, e.g. `fields.region == "us-east-1"`.
type Rule struct {
	Name string `yaml:"name" json:"name" validate:"required"`
	Expr string `yaml:"expr" json:"expr" validate:"required"`
}

type compiledRule struct {
	name string
	prg  cel.Program
}

// CEL validates records with caller-defined CEL rules.
type CEL struct {
	rules []compiledRule
}

// NewCEL compiles rules. Every rule must type-check to a boolean.
func NewCEL(rules ...Rule) (*CEL, error) {
	env, err := cel.NewEnv(
		cel.Variable("fields", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("validation: create CEL environment: %w", err)
	}

	out := &CEL{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("validation: CEL rule %q has no name", r.Expr)
		}
		ast, iss := env.Compile(r.Expr)
		if iss != nil && iss.Err() != nil {
			return nil, fmt.Errorf("validation: compile CEL rule %q: %w", r.Name, iss.Err())
		}
		if rt := ast.OutputType(); !rt.IsExactType(cel.BoolType) && !rt.IsExactType(cel.DynType) {
			return nil, fmt.Errorf("validation: CEL rule %q returns %s, want bool", r.Name, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("validation: build CEL rule %q: %w", r.Name, err)
		}
		out.rules = append(out.rules, compiledRule{name: r.Name, prg: prg})
	}
	return out, nil
}

// Validate implements Validator.
func (c *CEL) Validate(v any) error {
	fields, err := celFields(v)
	if err != nil {
		return err
	}

	var vs schema.Violations
	for _, r := range c.rules {
		out, _, err := r.prg.Eval(map[string]any{"fields": fields})
		if err != nil {
			vs = append(vs, schema.Violation{Field: r.name, Constraint: ConstraintCEL, Message: err.Error()})
			continue
		}
		if ok, isBool := out.Value().(bool); !isBool || !ok {
			vs = append(vs, schema.Violation{Field: r.name, Constraint: ConstraintCEL, Message: "rule not satisfied"})
		}
	}
	return fromViolations(vs)
}

// celFields converts a record to a map with integral numbers as int64 so
// that CEL integer literals compare without conversions.
func celFields(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("validation: marshal record: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("validation: decode record: %w", err)
	}
	for k, val := range raw {
		n, ok := val.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			raw[k] = i
		} else if f, err := n.Float64(); err == nil {
			raw[k] = f
		}
	}
	return raw, nil
}
