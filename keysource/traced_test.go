package keysource

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupTracer(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func spanAttr(span sdktrace.ReadOnlySpan, key string) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracedFetch(t *testing.T) {
	sr, tp := setupTracer(t)
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Setenv("AUTHID_TRACED_KEY", hexKey)
	src := Traced(Env{Variable: "AUTHID_TRACED_KEY"}, tp.Tracer("test"), logger)
	assert.Equal(t, "env", src.Kind())

	key, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte(hexKey), key)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "keysource.Fetch", spans[0].Name())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)

	kind, ok := spanAttr(spans[0], "keysource.kind")
	require.True(t, ok)
	assert.Equal(t, "env", kind.AsString())
	length, ok := spanAttr(spans[0], "keysource.key_length")
	require.True(t, ok)
	assert.Equal(t, int64(len(hexKey)), length.AsInt64())

	out := logs.String()
	assert.Contains(t, out, `"source":"env"`)
	assert.Contains(t, out, `"key_name":"AUTHID_TRACED_KEY"`)
	assert.NotContains(t, out, hexKey)
}

func TestTracedFetchError(t *testing.T) {
	sr, tp := setupTracer(t)

	src := Traced(Env{Variable: "AUTHID_TRACED_UNSET"}, tp.Tracer("test"), nil)
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	require.NotEmpty(t, spans[0].Events())
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestTracedPing(t *testing.T) {
	pinger, ok := Traced(Env{Variable: "X"}, nil, nil).(Pinger)
	require.True(t, ok)
	assert.NoError(t, pinger.Ping(context.Background()))

	kv := &fakeKV{err: assert.AnError}
	pinger = Traced(NewEtcdFromKV(kv, "/k", EncodingRaw), nil, nil).(Pinger)
	assert.Error(t, pinger.Ping(context.Background()))
}
