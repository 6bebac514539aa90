package health

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/zero-day-ai/authid"
	"github.com/zero-day-ai/authid/keysource"
	"github.com/zero-day-ai/authid/types"
)

var binaryKey = []byte(strings.Repeat("\xde\xad\xbe\xef", 16))

type staticSource struct {
	key []byte
	err error
}

func (staticSource) Kind() string    { return "static" }
func (staticSource) KeyName() string { return "test" }
func (s staticSource) Fetch(context.Context) ([]byte, error) {
	return s.key, s.err
}

type pingSource struct {
	staticSource
	pingErr error
}

func (p pingSource) Ping(context.Context) error { return p.pingErr }

func TestKeyCheck(t *testing.T) {
	tests := []struct {
		name   string
		src    keysource.Source
		status string
	}{
		{
			name:   "binary key",
			src:    staticSource{key: binaryKey},
			status: types.StatusHealthy,
		},
		{
			name:   "text only key",
			src:    staticSource{key: binaryKey[:40]},
			status: types.StatusDegraded,
		},
		{
			name:   "short key",
			src:    staticSource{key: binaryKey[:8]},
			status: types.StatusUnhealthy,
		},
		{
			name:   "long key",
			src:    staticSource{key: append(append([]byte{}, binaryKey...), 0)},
			status: types.StatusUnhealthy,
		},
		{
			name:   "not found",
			src:    staticSource{err: keysource.ErrNotFound},
			status: types.StatusUnhealthy,
		},
		{
			name:   "nil source",
			src:    nil,
			status: types.StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := KeyCheck(context.Background(), tt.src)

			if status.Status != tt.status {
				t.Errorf("expected %s, got %s: %s", tt.status, status.Status, status.Message)
			}
			if status.Check != CheckKey {
				t.Errorf("expected check %q, got %q", CheckKey, status.Check)
			}
			if status.Message == "" {
				t.Error("expected non-empty message")
			}
		})
	}
}

func TestKeyCheckNotFoundMessage(t *testing.T) {
	status := KeyCheck(nil, staticSource{err: keysource.ErrNotFound}) //nolint:staticcheck

	if !strings.Contains(status.Message, "not found") {
		t.Errorf("expected not found message, got %q", status.Message)
	}
	if status.Details["source"] != "static" {
		t.Errorf("expected source detail, got %v", status.Details)
	}
}

func TestKeyCheckDoesNotLeakKey(t *testing.T) {
	status := KeyCheck(context.Background(), staticSource{key: binaryKey[:40]})

	for k, v := range status.Details {
		if s, ok := v.(string); ok && strings.Contains(s, string(binaryKey[:8])) {
			t.Errorf("detail %q carries key material", k)
		}
	}
	if status.Details["key_length"] != 40 {
		t.Errorf("expected key_length 40, got %v", status.Details["key_length"])
	}
}

func TestPingCheck(t *testing.T) {
	tests := []struct {
		name          string
		src           keysource.Source
		expectHealthy bool
	}{
		{name: "no connection", src: staticSource{}, expectHealthy: true},
		{name: "reachable", src: pingSource{}, expectHealthy: true},
		{name: "unreachable", src: pingSource{pingErr: context.DeadlineExceeded}, expectHealthy: false},
		{name: "nil source", src: nil, expectHealthy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := PingCheck(context.Background(), tt.src)

			if tt.expectHealthy != status.IsHealthy() {
				t.Errorf("expected healthy=%v, got %s: %s", tt.expectHealthy, status.Status, status.Message)
			}
		})
	}
}

func TestPingCheckRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	src, err := keysource.NewRedis(keysource.RedisOptions{URL: "redis://" + mr.Addr(), Key: "authid:key"})
	if err != nil {
		t.Fatalf("failed to create redis source: %v", err)
	}
	defer src.Close()

	if status := PingCheck(context.Background(), src); !status.IsHealthy() {
		t.Errorf("expected healthy, got %s: %s", status.Status, status.Message)
	}

	mr.Close()
	if status := PingCheck(context.Background(), src); !status.IsUnhealthy() {
		t.Errorf("expected unhealthy after server shutdown, got %s", status.Status)
	}
}

func TestCodecCheck(t *testing.T) {
	tests := []struct {
		name   string
		codec  *authid.Codec
		key    []byte
		status string
	}{
		{name: "binary key", codec: authid.NewCodec(), key: binaryKey, status: types.StatusHealthy},
		{name: "without prefix", codec: authid.NewCodec(authid.WithPrefix(false)), key: binaryKey, status: types.StatusHealthy},
		{name: "text only key", codec: authid.NewCodec(), key: binaryKey[:32], status: types.StatusHealthy},
		{name: "unusable key", codec: authid.NewCodec(), key: binaryKey[:16], status: types.StatusUnhealthy},
		{name: "nil codec", codec: nil, key: binaryKey, status: types.StatusUnhealthy},
		{
			name:   "validator rejects probe",
			codec:  authid.NewCodec(authid.WithValidator(rejectAll{})),
			key:    binaryKey,
			status: types.StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := CodecCheck(tt.codec, tt.key)

			if status.Status != tt.status {
				t.Errorf("expected %s, got %s: %s %v", tt.status, status.Status, status.Message, status.Details)
			}
		})
	}
}

type rejectAll struct{}

func (rejectAll) Validate(any) error { return context.Canceled }

func TestEndpointCheck(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to start test server: %v", err)
	}
	defer listener.Close()

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	closed, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to reserve port: %v", err)
	}
	closedAddr := closed.Addr().String()
	closed.Close()

	tests := []struct {
		name          string
		address       string
		expectHealthy bool
	}{
		{name: "listening", address: listener.Addr().String(), expectHealthy: true},
		{name: "closed port", address: closedAddr, expectHealthy: false},
		{name: "missing port", address: "127.0.0.1", expectHealthy: false},
		{name: "empty", address: "", expectHealthy: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			status := EndpointCheck(ctx, tt.address)
			if tt.expectHealthy != status.IsHealthy() {
				t.Errorf("expected healthy=%v, got %s: %s", tt.expectHealthy, status.Status, status.Message)
			}
		})
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name   string
		src    keysource.Source
		status string
	}{
		{name: "healthy", src: pingSource{staticSource: staticSource{key: binaryKey}}, status: types.StatusHealthy},
		{name: "text only key", src: staticSource{key: binaryKey[:48]}, status: types.StatusDegraded},
		{name: "missing key", src: staticSource{err: keysource.ErrNotFound}, status: types.StatusUnhealthy},
		{
			name:   "unreachable store",
			src:    pingSource{staticSource: staticSource{key: binaryKey}, pingErr: context.DeadlineExceeded},
			status: types.StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Run(context.Background(), authid.NewCodec(), tt.src)

			if status.Status != tt.status {
				t.Errorf("expected %s, got %s: %s %v", tt.status, status.Status, status.Message, status.Details)
			}
			if status.Check != CheckOverall {
				t.Errorf("expected check %q, got %q", CheckOverall, status.Check)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name   string
		checks []types.HealthStatus
		status string
	}{
		{name: "no checks", checks: nil, status: types.StatusHealthy},
		{
			name: "all healthy",
			checks: []types.HealthStatus{
				types.NewHealthyStatus("a", "ok"),
				types.NewHealthyStatus("b", "ok"),
			},
			status: types.StatusHealthy,
		},
		{
			name: "one degraded",
			checks: []types.HealthStatus{
				types.NewHealthyStatus("a", "ok"),
				types.NewDegradedStatus("b", "slow", nil),
			},
			status: types.StatusDegraded,
		},
		{
			name: "unhealthy wins",
			checks: []types.HealthStatus{
				types.NewDegradedStatus("a", "slow", nil),
				types.NewUnhealthyStatus("b", "down", nil),
				types.NewHealthyStatus("c", "ok"),
			},
			status: types.StatusUnhealthy,
		},
		{
			name:   "unknown status counts as failed",
			checks: []types.HealthStatus{{Check: "a", Status: "weird"}},
			status: types.StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := Combine(tt.checks...)

			if status.Status != tt.status {
				t.Errorf("expected %s, got %s: %s", tt.status, status.Status, status.Message)
			}
		})
	}
}

func TestCombineDetails(t *testing.T) {
	status := Combine(
		types.NewUnhealthyStatus("key", "missing", nil),
		types.NewDegradedStatus("", "slow", nil),
		types.NewHealthyStatus("codec", "ok"),
	)

	failed, ok := status.Details["failed_checks"].([]string)
	if !ok || len(failed) != 1 || failed[0] != "key: missing" {
		t.Errorf("unexpected failed_checks: %v", status.Details["failed_checks"])
	}
	if status.Details["degraded"] != 1 || status.Details["healthy"] != 1 || status.Details["total"] != 3 {
		t.Errorf("unexpected counts: %v", status.Details)
	}
}
