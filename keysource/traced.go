package keysource

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/zero-day-ai/authid/keysource"

// traced decorates a Source with a span and a debug log per fetch.
type traced struct {
	Source
	tracer trace.Tracer
	logger *slog.Logger
}

// Traced wraps src so each Fetch runs in a "keysource.Fetch" span. A nil
// tracer uses the global provider and a nil logger uses slog.Default().
func Traced(src Source, tracer trace.Tracer, logger *slog.Logger) Source {
	if tracer == nil {
		tracer = otel.Tracer(instrumentationName)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &traced{Source: src, tracer: tracer, logger: logger}
}

// Fetch implements Source.
func (t *traced) Fetch(ctx context.Context) ([]byte, error) {
	ctx, span := t.tracer.Start(ctx, "keysource.Fetch", trace.WithAttributes(
		attribute.String("keysource.kind", t.Kind()),
		attribute.String("keysource.key_name", t.KeyName()),
	))
	defer span.End()

	key, err := t.Source.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		t.logger.DebugContext(ctx, "key fetch failed",
			"source", t.Kind(),
			"key_name", t.KeyName(),
			"error", err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("keysource.key_length", len(key)))
	span.SetStatus(codes.Ok, "")
	t.logger.DebugContext(ctx, "key fetched",
		"source", t.Kind(),
		"key_name", t.KeyName(),
		"key_length", len(key))
	return key, nil
}

// Close closes the wrapped source if it holds a connection.
func (t *traced) Close() error {
	if c, ok := t.Source.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Ping forwards to the wrapped source when it supports it.
func (t *traced) Ping(ctx context.Context) error {
	if p, ok := t.Source.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Pinger is implemented by sources backed by a network service.
type Pinger interface {
	Ping(ctx context.Context) error
}
