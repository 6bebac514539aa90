// Package keysource fetches the shared key used by an authid.Codec.
//
// Sources read a single key from one place: an environment variable, a file,
// a Redis string, or an etcd key. Every Fetch returns a fresh slice; nothing
// is cached and nothing rotates. Wrap a source with Traced to get a span and
// a debug log line per fetch:
//
//	src := keysource.Traced(keysource.Env{Variable: "AUTHID_KEY", Encoding: keysource.EncodingHex}, nil, logger)
//	key, err := src.Fetch(ctx)
//	if err != nil {
//		return err
//	}
//	id, err := authid.EncodeID(fields, key)
//
// Key material is never logged or attached to spans.
package keysource
