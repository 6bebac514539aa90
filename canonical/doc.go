// Package canonical serializes identifier fields to deterministic protobuf
// wire bytes and back.
//
// The layout is a fixed wire contract:
//
//	1 timestamp       varint
//	2 region          varint (enum.Regions code)
//	3 environment     varint (enum.Environments code)
//	4 short hash      bytes, 8
//	5 hash algorithm  varint (enum.HashAlgorithms multihash code)
//	6 record id       string, 22
//	7 record version  varint
//
// Fields are written in ascending order and zero values are omitted. Decode
// accepts only that form: unknown, repeated, or out-of-order fields, wrong
// wire types, truncated input and trailing bytes all fail with ErrMalformed.
package canonical
