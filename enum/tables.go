package enum

// The tables below are part of the identifier wire contract.
// Append new entries at the end only.

// Regions lists the deployment regions an identifier may name.
var Regions = Sequential("region",
	"us-east-1",
)

// Environments lists the deployment environments an identifier may name.
var Environments = Sequential("environment",
	"production",
	"staging",
	"development",
)

// HashAlgorithms maps hash function names to their multihash codes.
var HashAlgorithms = NewTable("hash algorithm",
	Entry{Name: "sha1", Code: 0x11},
	Entry{Name: "sha2-256", Code: 0x12},
	Entry{Name: "sha2-512", Code: 0x13},
	Entry{Name: "sha3-512", Code: 0x14},
	Entry{Name: "sha3-384", Code: 0x15},
	Entry{Name: "sha3-256", Code: 0x16},
)
