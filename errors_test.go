package authid

import (
	"errors"
	"strings"
	"testing"
)

// TestSentinelErrors verifies that all sentinel errors are defined correctly.
func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "ErrMissingKey", err: ErrMissingKey, want: "missing key"},
		{name: "ErrInvalidKeyLength", err: ErrInvalidKeyLength, want: "invalid key length"},
		{name: "ErrValidation", err: ErrValidation, want: "invalid fields"},
		{name: "ErrStructure", err: ErrStructure, want: "malformed ID"},
		{name: "ErrAuthentication", err: ErrAuthentication, want: "invalid ID [mac]"},
		{name: "ErrInternal", err: ErrInternal, want: "internal codec error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err == nil {
				t.Fatalf("sentinel error %s is nil", tt.name)
			}
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("error message = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIDError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *IDError
		want string
	}{
		{
			name: "without underlying error",
			err:  &IDError{Op: "DecodeID", Kind: KindStructure},
			want: "authid: DecodeID: structure",
		},
		{
			name: "with underlying error",
			err:  authenticationError("DecodeID"),
			want: "authid: DecodeID (authentication): invalid ID [mac]",
		},
		{
			name: "with context",
			err:  (&IDError{Op: "EncodeID", Kind: KindInternal, Err: ErrInternal}).WithContext(map[string]any{"format": "binary"}),
			want: "authid: EncodeID (internal): internal codec error [context: map[format:binary]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIDError_Is(t *testing.T) {
	err := structureError("DecodeText", errors.New("bad segment"))

	if !errors.Is(err, ErrStructure) {
		t.Error("expected errors.Is(err, ErrStructure)")
	}
	if !errors.Is(err, &IDError{Kind: KindStructure}) {
		t.Error("expected match by kind")
	}
	if !errors.Is(err, &IDError{Op: "DecodeText", Kind: KindStructure}) {
		t.Error("expected match by op and kind")
	}
	if errors.Is(err, &IDError{Op: "DecodeID", Kind: KindStructure}) {
		t.Error("unexpected match with different op")
	}
	if errors.Is(err, ErrAuthentication) {
		t.Error("structure error must not match ErrAuthentication")
	}
	if err.Is(nil) {
		t.Error("nil target must not match")
	}
}

func TestKeyError(t *testing.T) {
	missing := keyError("EncodeID", ErrMissingKey)
	if missing.Kind != KindMissingKey || !errors.Is(missing, ErrMissingKey) {
		t.Errorf("missing key mapped to %q", missing.Kind)
	}

	length := keyError("EncodeID", ErrInvalidKeyLength)
	if length.Kind != KindKeyLength || !errors.Is(length, ErrInvalidKeyLength) {
		t.Errorf("short key mapped to %q", length.Kind)
	}
}

func TestIDError_WithContext(t *testing.T) {
	base := &IDError{Op: "DecodeID", Kind: KindStructure, Err: ErrStructure, Context: map[string]any{"a": 1}}
	extended := base.WithContext(map[string]any{"b": 2})

	if len(base.Context) != 1 {
		t.Errorf("original context modified: %v", base.Context)
	}
	if extended.Context["a"] != 1 || extended.Context["b"] != 2 {
		t.Errorf("unexpected context: %v", extended.Context)
	}
	if !strings.Contains(extended.Error(), "b:2") {
		t.Errorf("context missing from %q", extended.Error())
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(validationError("EncodeID", errors.New("x"))); got != KindValidation {
		t.Errorf("KindOf = %q, want %q", got, KindValidation)
	}
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("KindOf(nil) = %q, want empty", got)
	}
}
