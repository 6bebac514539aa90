package authid

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricOperations counts codec calls by format, operation and result.
const MetricOperations = "authid.operations"

// codecMetrics holds the instruments of a Codec. It is nil when no meter was
// configured.
type codecMetrics struct {
	operations metric.Int64Counter
}

func newCodecMetrics(meter metric.Meter) (*codecMetrics, error) {
	if meter == nil {
		return nil, nil
	}

	operations, err := meter.Int64Counter(
		MetricOperations,
		metric.WithDescription("Number of identifier codec operations"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create operations counter: %w", err)
	}
	return &codecMetrics{operations: operations}, nil
}

// record counts one call. result is "ok" or the error kind.
func (m *codecMetrics) record(format Format, op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = KindOf(err)
	}
	m.operations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("format", format.String()),
		attribute.String("op", op),
		attribute.String("result", result),
	))
}
