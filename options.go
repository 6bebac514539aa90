package authid

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"

	"github.com/zero-day-ai/authid/validation"
)

// Option configures a Codec.
type Option func(*codecConfig)

// codecConfig holds configuration for a Codec instance.
type codecConfig struct {
	prefix     bool
	validators []validation.Validator
	logger     *slog.Logger
	meter      metric.Meter
}

func defaultConfig() codecConfig {
	return codecConfig{prefix: true}
}

// WithPrefix controls whether binary Ids start with Prefix. It defaults to
// true. Decoding accepts Ids with or without the prefix either way.
func WithPrefix(include bool) Option {
	return func(c *codecConfig) {
		c.prefix = include
	}
}

// WithValidator adds validators that run after the built-in field checks.
// They see full records only (types.Fields or types.TextFields), on encode
// and again on authenticated decode.
func WithValidator(validators ...validation.Validator) Option {
	return func(c *codecConfig) {
		c.validators = append(c.validators, validators...)
	}
}

// WithLogger sets the logger used for failed operations.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *codecConfig) {
		c.logger = logger
	}
}

// WithMeter enables the authid.operations counter on the given meter.
func WithMeter(meter metric.Meter) Option {
	return func(c *codecConfig) {
		c.meter = meter
	}
}
