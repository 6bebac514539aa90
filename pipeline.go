package authid

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/zero-day-ai/authid/mac"
	"github.com/zero-day-ai/authid/validation"
)

// layout is one identifier variant. F is the full record and P the subset
// returned by unsafe decoding.
//
// The payload is the part of the Id that carries fields. The binding is data
// covered by the tag but not carried in the Id; it is empty for variants that
// bind nothing.
type layout[F comparable, P any] interface {
	format() Format
	keys() mac.Policy

	// normalize rewrites fields into their canonical spelling before
	// validation.
	normalize(f F) F
	binding(f F) string
	checkBinding(binding string) error

	canonicalize(f F) ([]byte, error)
	message(payload []byte, binding string) []byte
	render(payload, tag []byte, prefix bool) string

	// parse splits an Id into payload and tag without any cryptographic work.
	parse(id string) (payload, tag []byte, err error)
	decanonicalize(payload []byte, binding string) (F, error)
	partial(f F) P
}

// pipeline runs validate, canonicalize, authenticate and render for one
// layout, and the reverse.
type pipeline[F comparable, P any] struct {
	layout    layout[F, P]
	validator validation.Validator
	prefix    bool
	logger    func() *slog.Logger
	metrics   *codecMetrics
}

func (p *pipeline[F, P]) encode(op string, f F, key []byte) (string, error) {
	id, err := p.seal(op, f, key)
	p.observe(op, err)
	return id, err
}

func (p *pipeline[F, P]) decode(op, id, binding string, key []byte) (F, error) {
	f, err := p.open(op, id, binding, key)
	p.observe(op, err)
	return f, err
}

func (p *pipeline[F, P]) decodeUnsafely(op, id string) (P, error) {
	var zero P

	payload, _, err := p.layout.parse(id)
	if err != nil {
		err = structureError(op, err)
		p.observe(op, err)
		return zero, err
	}
	f, err := p.layout.decanonicalize(payload, "")
	if err != nil {
		err = structureError(op, err)
		p.observe(op, err)
		return zero, err
	}

	part := p.layout.partial(f)
	if err := validation.Builtin().Validate(part); err != nil {
		verr := structureError(op, err)
		p.observe(op, verr)
		return zero, verr
	}
	p.observe(op, nil)
	return part, nil
}

func (p *pipeline[F, P]) seal(op string, f F, key []byte) (string, error) {
	if err := p.layout.keys().Check(key); err != nil {
		return "", keyError(op, err)
	}

	f = p.layout.normalize(f)
	if err := p.validator.Validate(f); err != nil {
		return "", validationError(op, err)
	}

	payload, err := p.layout.canonicalize(f)
	if err != nil {
		return "", internalError(op, err)
	}
	binding := p.layout.binding(f)
	tag := mac.Sum(key, p.layout.message(payload, binding))
	id := p.layout.render(payload, tag, p.prefix)

	got, err := p.open(op, id, binding, key)
	if err != nil {
		return "", internalError(op, fmt.Errorf("self-check decode: %w", err))
	}
	if got != f {
		return "", internalError(op, errors.New("self-check decode returned different fields"))
	}
	return id, nil
}

func (p *pipeline[F, P]) open(op, id, binding string, key []byte) (F, error) {
	var zero F

	if err := p.layout.keys().Check(key); err != nil {
		return zero, keyError(op, err)
	}
	if err := p.layout.checkBinding(binding); err != nil {
		return zero, validationError(op, err)
	}

	payload, tag, err := p.layout.parse(id)
	if err != nil {
		return zero, structureError(op, err)
	}
	if !mac.Verify(key, p.layout.message(payload, binding), tag) {
		return zero, authenticationError(op)
	}

	f, err := p.layout.decanonicalize(payload, binding)
	if err != nil {
		return zero, structureError(op, err)
	}
	if err := p.validator.Validate(f); err != nil {
		return zero, validationError(op, err)
	}
	return f, nil
}

func (p *pipeline[F, P]) observe(op string, err error) {
	p.metrics.record(p.layout.format(), op, err)
	if err == nil {
		return
	}
	p.logger().Debug("authid operation failed",
		"format", p.layout.format().String(),
		"op", op,
		"kind", KindOf(err),
	)
}
