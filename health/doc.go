// Package health provides self-checks for services that mint and verify
// authenticated identifiers.
//
// Each check returns a types.HealthStatus naming the check, its outcome,
// and diagnostics. Details never carry key material.
//
// # Health Check Functions
//
//   - KeyCheck: Fetch the key from a keysource.Source and check its length
//   - PingCheck: Verify the key source's backing store is reachable
//   - CodecCheck: Round-trip a known record through a codec with a key
//   - EndpointCheck: Verify TCP connectivity to a host:port
//   - Run: Fetch once and run all of the above for a codec and source
//   - Combine: Aggregate multiple health checks into a single status
//
// # Usage Example
//
//	cfg, err := config.Load("authid.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	src, err := cfg.KeySource()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer keysource.CloseWithLog(src, nil)
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	status := health.Run(ctx, authid.NewCodec(), src)
//	if status.IsUnhealthy() {
//	    log.Printf("authid unhealthy: %s %+v", status.Message, status.Details)
//	}
//
// # Health Status Priority
//
// When combining health checks with Combine(), the result follows this priority:
//
//   - Unhealthy: If any check is unhealthy, the combined result is unhealthy
//   - Degraded: If any check is degraded (and none unhealthy), the result is degraded
//   - Healthy: If all checks are healthy, the result is healthy
//
// # Key Lengths
//
// A 64-byte key serves both identifier formats and is healthy. A key of 32
// to 63 bytes only serves text identifiers and is reported as degraded.
// Anything else is unhealthy.
package health
