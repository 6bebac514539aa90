package authid

import (
	"log/slog"
	"os"
	"testing"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/zero-day-ai/authid/validation"
)

func TestCodecOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := defaultConfig()
		if !cfg.prefix {
			t.Error("expected prefix to be on by default")
		}
		if cfg.logger != nil || cfg.meter != nil || len(cfg.validators) != 0 {
			t.Error("expected empty optional settings")
		}
	})

	t.Run("WithPrefix", func(t *testing.T) {
		cfg := defaultConfig()
		WithPrefix(false)(&cfg)
		if cfg.prefix {
			t.Error("expected prefix to be disabled")
		}
	})

	t.Run("WithValidator", func(t *testing.T) {
		cfg := defaultConfig()
		v := validation.Func(func(any) error { return nil })
		WithValidator(v)(&cfg)
		WithValidator(v, v)(&cfg)
		if len(cfg.validators) != 3 {
			t.Errorf("expected 3 validators, got %d", len(cfg.validators))
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		cfg := defaultConfig()
		WithLogger(logger)(&cfg)
		if cfg.logger != logger {
			t.Error("expected logger to be set")
		}
	})

	t.Run("WithMeter", func(t *testing.T) {
		meter := noop.NewMeterProvider().Meter("test")
		cfg := defaultConfig()
		WithMeter(meter)(&cfg)
		if cfg.meter == nil {
			t.Error("expected meter to be set")
		}
	})
}
