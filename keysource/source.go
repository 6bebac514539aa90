package keysource

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ErrNotFound is returned when the source holds no key.
var ErrNotFound = errors.New("keysource: key not found")

// Source fetches one key.
type Source interface {
	// Kind names the backend, e.g. "env" or "redis".
	Kind() string

	// KeyName identifies the key within the backend. It is safe to log.
	KeyName() string

	// Fetch returns the key. Each call returns a new slice.
	Fetch(ctx context.Context) ([]byte, error)
}

// Encoding describes how a stored key is represented.
type Encoding string

const (
	// EncodingRaw uses the stored bytes as the key.
	EncodingRaw Encoding = "raw"

	// EncodingHex decodes the stored value as hexadecimal.
	EncodingHex Encoding = "hex"

	// EncodingBase64 decodes the stored value as standard base64.
	EncodingBase64 Encoding = "base64"
)

// Decode converts a stored value into key bytes. Surrounding whitespace is
// ignored for hex and base64. An empty Encoding means EncodingRaw.
func (e Encoding) Decode(value []byte) ([]byte, error) {
	switch e {
	case "", EncodingRaw:
		return bytes.Clone(value), nil
	case EncodingHex:
		trimmed := bytes.TrimSpace(value)
		out := make([]byte, hex.DecodedLen(len(trimmed)))
		if _, err := hex.Decode(out, trimmed); err != nil {
			return nil, fmt.Errorf("keysource: decode hex key: %w", err)
		}
		return out, nil
	case EncodingBase64:
		trimmed := bytes.TrimSpace(value)
		out := make([]byte, base64.StdEncoding.DecodedLen(len(trimmed)))
		n, err := base64.StdEncoding.Decode(out, trimmed)
		if err != nil {
			return nil, fmt.Errorf("keysource: decode base64 key: %w", err)
		}
		return out[:n], nil
	default:
		return nil, fmt.Errorf("keysource: unknown encoding %q", string(e))
	}
}

// Env reads a key from an environment variable.
type Env struct {
	Variable string
	Encoding Encoding
}

// Kind implements Source.
func (Env) Kind() string { return "env" }

// KeyName implements Source.
func (e Env) KeyName() string { return e.Variable }

// Fetch implements Source. An unset or empty variable is ErrNotFound.
func (e Env) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := os.LookupEnv(e.Variable)
	if !ok || v == "" {
		return nil, fmt.Errorf("%w: environment variable %s", ErrNotFound, e.Variable)
	}
	return e.Encoding.Decode([]byte(v))
}

// File reads a key from a file. A single trailing newline is removed from
// raw keys.
type File struct {
	Path     string
	Encoding Encoding
}

// Kind implements Source.
func (File) Kind() string { return "file" }

// KeyName implements Source.
func (f File) KeyName() string { return f.Path }

// Fetch implements Source.
func (f File) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: file %s", ErrNotFound, f.Path)
		}
		return nil, fmt.Errorf("keysource: read key file: %w", err)
	}
	data = bytes.TrimSuffix(data, []byte("\n"))
	data = bytes.TrimSuffix(data, []byte("\r"))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file %s is empty", ErrNotFound, f.Path)
	}
	return f.Encoding.Decode(data)
}

// CloseWithLog closes src if it holds a connection and logs any error at
// warning level. It is intended for defer statements. If logger is nil,
// slog.Default() is used.
//
//	src, err := keysource.NewRedis(opts)
//	...
//	defer keysource.CloseWithLog(src, logger)
func CloseWithLog(src Source, logger *slog.Logger) {
	closer, ok := src.(io.Closer)
	if !ok || closer == nil {
		return
	}

	if logger == nil {
		logger = slog.Default()
	}

	if err := closer.Close(); err != nil {
		logger.Warn("failed to close key source",
			"source", src.Kind(),
			"key_name", src.KeyName(),
			"error", err)
	}
}
