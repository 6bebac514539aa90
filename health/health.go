package health

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/zero-day-ai/authid"
	"github.com/zero-day-ai/authid/keysource"
	"github.com/zero-day-ai/authid/mac"
	"github.com/zero-day-ai/authid/types"
)

// Check names.
const (
	CheckKey      = "key"
	CheckPing     = "key source"
	CheckCodec    = "codec"
	CheckEndpoint = "endpoint"
	CheckOverall  = "overall"
)

// defaultTimeout bounds checks that are given a nil context.
const defaultTimeout = 5 * time.Second

// Records round-tripped by CodecCheck.
var (
	probeFields = types.Fields{
		Timestamp:     1626751407,
		Region:        "us-east-1",
		Environment:   "production",
		ShortHash:     "032080886bf3f264",
		HashAlgorithm: "sha3-512",
		RecordID:      "epcseHP5bZfs07Ly29j72k",
		RecordVersion: 1,
	}
	probeText = types.TextFields{
		Version:      authid.TextVersion,
		Test:         true,
		SortableID:   "01FZ93KY67VYMFTVXTJ5BKWGT7",
		Timestamp:    1640995200000000,
		EnvelopeHash: "beefc44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
	}
)

func withDefaultTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), defaultTimeout)
	}
	return ctx, func() {}
}

func sourceDetails(src keysource.Source) map[string]any {
	return map[string]any{
		"source":   src.Kind(),
		"key_name": src.KeyName(),
	}
}

// KeyCheck fetches the key from src and reports whether its length suits
// binary and text identifiers.
//
// Example:
//
//	status := health.KeyCheck(ctx, keysource.Env{Variable: "AUTHID_KEY"})
//	if status.IsUnhealthy() {
//	    log.Fatal("no usable authid key")
//	}
func KeyCheck(ctx context.Context, src keysource.Source) types.HealthStatus {
	status, _ := fetch(ctx, src)
	return status
}

func fetch(ctx context.Context, src keysource.Source) (types.HealthStatus, []byte) {
	if src == nil {
		return types.NewUnhealthyStatus(CheckKey, "key source cannot be nil", nil), nil
	}

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	details := sourceDetails(src)
	key, err := src.Fetch(ctx)
	if err != nil {
		details["error"] = err.Error()
		msg := fmt.Sprintf("failed to fetch key from %s source", src.Kind())
		if errors.Is(err, keysource.ErrNotFound) {
			msg = fmt.Sprintf("key %q not found in %s source", src.KeyName(), src.Kind())
		}
		return types.NewUnhealthyStatus(CheckKey, msg, details), nil
	}

	details["key_length"] = len(key)
	switch {
	case mac.Binary.Check(key) == nil:
		return types.NewHealthyStatus(CheckKey,
			fmt.Sprintf("%d-byte key serves binary and text identifiers", len(key))), key
	case mac.Text.Check(key) == nil:
		return types.NewDegradedStatus(CheckKey,
			fmt.Sprintf("%d-byte key serves text identifiers only", len(key)), details), key
	default:
		return types.NewUnhealthyStatus(CheckKey,
			fmt.Sprintf("%d-byte key is unusable", len(key)), details), nil
	}
}

// PingCheck verifies the backing store of src is reachable. Sources without
// a connection, such as keysource.Env, are always healthy.
func PingCheck(ctx context.Context, src keysource.Source) types.HealthStatus {
	if src == nil {
		return types.NewUnhealthyStatus(CheckPing, "key source cannot be nil", nil)
	}

	pinger, ok := src.(keysource.Pinger)
	if !ok {
		return types.NewHealthyStatus(CheckPing,
			fmt.Sprintf("%s source has no connection to check", src.Kind()))
	}

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	if err := pinger.Ping(ctx); err != nil {
		details := sourceDetails(src)
		details["error"] = err.Error()
		return types.NewUnhealthyStatus(CheckPing,
			fmt.Sprintf("%s source is unreachable", src.Kind()), details)
	}
	return types.NewHealthyStatus(CheckPing, fmt.Sprintf("%s source is reachable", src.Kind()))
}

// CodecCheck encodes and decodes a fixed record with key in every format the
// key length allows. It is unhealthy if any round trip fails or if key fits
// neither format.
//
// Example:
//
//	status := health.CodecCheck(authid.NewCodec(authid.WithPrefix(false)), key)
func CodecCheck(codec *authid.Codec, key []byte) types.HealthStatus {
	if codec == nil {
		return types.NewUnhealthyStatus(CheckCodec, "codec cannot be nil", nil)
	}

	var checked []string
	if mac.Binary.Check(key) == nil {
		if err := roundTripBinary(codec, key); err != nil {
			return types.NewUnhealthyStatus(CheckCodec, "binary round trip failed",
				map[string]any{"format": authid.FormatBinary.String(), "error": err.Error()})
		}
		checked = append(checked, authid.FormatBinary.String())
	}
	if mac.Text.Check(key) == nil {
		if err := roundTripText(codec, key); err != nil {
			return types.NewUnhealthyStatus(CheckCodec, "text round trip failed",
				map[string]any{"format": authid.FormatText.String(), "error": err.Error()})
		}
		checked = append(checked, authid.FormatText.String())
	}

	if len(checked) == 0 {
		return types.NewUnhealthyStatus(CheckCodec, "key fits no identifier format",
			map[string]any{"key_length": len(key)})
	}
	return types.NewHealthyStatus(CheckCodec, fmt.Sprintf("round trip passed for %v", checked))
}

func roundTripBinary(codec *authid.Codec, key []byte) error {
	id, err := codec.EncodeID(probeFields, key)
	if err != nil {
		return err
	}
	got, err := codec.DecodeID(id, key)
	if err != nil {
		return err
	}
	if got != probeFields {
		return errors.New("decoded fields differ from encoded fields")
	}
	return nil
}

func roundTripText(codec *authid.Codec, key []byte) error {
	id, err := codec.EncodeText(probeText, key)
	if err != nil {
		return err
	}
	got, err := codec.DecodeText(id, probeText.EnvelopeHash, key)
	if err != nil {
		return err
	}
	if got != probeText {
		return errors.New("decoded fields differ from encoded fields")
	}
	return nil
}

// EndpointCheck verifies TCP connectivity to address, a "host:port" pair
// such as a Redis or etcd endpoint. A nil context uses a 5-second timeout.
func EndpointCheck(ctx context.Context, address string) types.HealthStatus {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" || port == "" {
		return types.NewUnhealthyStatus(CheckEndpoint,
			fmt.Sprintf("invalid endpoint address: %q", address),
			map[string]any{"address": address})
	}

	ctx, cancel := withDefaultTimeout(ctx)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return types.NewUnhealthyStatus(CheckEndpoint,
			fmt.Sprintf("failed to connect to %s", address),
			map[string]any{
				"address": address,
				"error":   err.Error(),
			},
		)
	}
	conn.Close()

	return types.NewHealthyStatus(CheckEndpoint, fmt.Sprintf("successfully connected to %s", address))
}

// Run pings src, fetches its key once, and round-trips the codec with it.
// The result is the combination of all three checks.
func Run(ctx context.Context, codec *authid.Codec, src keysource.Source) types.HealthStatus {
	ping := PingCheck(ctx, src)
	keyStatus, key := fetch(ctx, src)
	if key == nil {
		return Combine(ping, keyStatus)
	}
	return Combine(ping, keyStatus, CodecCheck(codec, key))
}

// Combine aggregates multiple health checks into a single status.
// The result follows this priority:
//   - If any check is unhealthy, the result is unhealthy
//   - If any check is degraded (and none unhealthy), the result is degraded
//   - If all checks are healthy, the result is healthy
//
// Example:
//
//	status := health.Combine(
//	    health.PingCheck(ctx, src),
//	    health.KeyCheck(ctx, src),
//	)
func Combine(checks ...types.HealthStatus) types.HealthStatus {
	if len(checks) == 0 {
		return types.NewHealthyStatus(CheckOverall, "no checks provided")
	}

	var unhealthyChecks []string
	var degradedChecks []string
	var healthyCount int

	for _, check := range checks {
		name := check.Check
		if name == "" {
			name = "unnamed check"
		}
		entry := name + ": " + check.Message
		switch check.Status {
		case types.StatusHealthy:
			healthyCount++
		case types.StatusDegraded:
			degradedChecks = append(degradedChecks, entry)
		default:
			unhealthyChecks = append(unhealthyChecks, entry)
		}
	}

	switch types.Worst(checks...).Status {
	case types.StatusUnhealthy:
		return types.NewUnhealthyStatus(CheckOverall,
			fmt.Sprintf("%d check(s) failed", len(unhealthyChecks)),
			map[string]any{
				"total":         len(checks),
				"unhealthy":     len(unhealthyChecks),
				"degraded":      len(degradedChecks),
				"healthy":       healthyCount,
				"failed_checks": unhealthyChecks,
			},
		)
	case types.StatusDegraded:
		return types.NewDegradedStatus(CheckOverall,
			fmt.Sprintf("%d check(s) degraded", len(degradedChecks)),
			map[string]any{
				"total":           len(checks),
				"degraded":        len(degradedChecks),
				"healthy":         healthyCount,
				"degraded_checks": degradedChecks,
			},
		)
	}

	return types.NewHealthyStatus(CheckOverall, fmt.Sprintf("all %d check(s) passed", len(checks)))
}
