// Package authid encodes and decodes compact authenticated identifiers.
//
// An Id carries a small record of fields together with a truncated
// HMAC-SHA256 tag, so a holder of the shared key can trust the fields without
// looking anything up. Two variants share one pipeline:
//
//   - Binary Ids hold types.Fields as protobuf wire bytes, compressed with
//     zlib, prefixed by the 16-byte tag and rendered in Crockford base-32,
//     optionally preceded by the literal "truestamp".
//   - Text Ids hold types.TextFields as T1{test}_{ULID}_{microseconds},
//     followed by the tag in uppercase hex. The tag also covers an envelope
//     hash that is supplied again on decode but not stored in the Id.
//
// # Encoding
//
//	key := loadKey() // 64 bytes
//	id, err := authid.EncodeID(types.Fields{
//		Timestamp:     1626751407,
//		Region:        "us-east-1",
//		Environment:   "production",
//		ShortHash:     "032080886bf3f264",
//		HashAlgorithm: "sha3-512",
//		RecordID:      "epcseHP5bZfs07Ly29j72k",
//		RecordVersion: 418,
//	}, key)
//
// Encoding checks the key, validates every field, and decodes its own output
// before returning it.
//
// # Decoding
//
// DecodeID and DecodeText verify the tag before reading any field. A tag
// mismatch is always ErrAuthentication, whether the key or the Id was wrong.
// The Unsafely variants skip the tag and return only fields that are safe to
// show without it; never use them for trust decisions.
//
// # Errors
//
// Every failure is an *IDError whose Kind is one of KindMissingKey,
// KindKeyLength, KindValidation, KindStructure, KindAuthentication or
// KindInternal. errors.Is works against the matching sentinel, and validation
// failures also wrap a *validation.Error listing each field/constraint pair.
//
// # Configuration
//
// NewCodec accepts options for the prefix, extra validators (see the
// validation package for JSON Schema and CEL front-ends), a logger and an
// OpenTelemetry meter. The package-level functions use a default Codec.
package authid
