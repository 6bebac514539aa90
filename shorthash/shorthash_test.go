package shorthash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/authid/enum"
)

func TestSum(t *testing.T) {
	tests := []struct {
		algorithm string
		want      string
	}{
		{"sha1", "a9993e364706816a"},
		{"sha2-256", "ba7816bf8f01cfea"},
		{"sha2-512", "ddaf35a193617aba"},
		{"sha3-256", "3a985da74fe225b2"},
		{"sha3-384", "ec01498288516fc9"},
		{"sha3-512", "b751850b1a57168a"},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			got, err := Sum(tt.algorithm, []byte("abc"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, 2*Length)
		})
	}
}

func TestEveryAlgorithmImplemented(t *testing.T) {
	for _, name := range enum.HashAlgorithms.Names() {
		_, err := Sum(name, nil)
		assert.NoError(t, err, name)
	}
}

func TestSumRejectsUnknown(t *testing.T) {
	_, err := Sum("md5", []byte("abc"))
	assert.ErrorContains(t, err, `unrecognized hash function "md5"`)
}

func TestFromDigest(t *testing.T) {
	got, err := FromDigest([]byte{0x03, 0x20, 0x80, 0x88, 0x6b, 0xf3, 0xf2, 0x64, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "032080886bf3f264", got)

	_, err = FromDigest([]byte{1, 2, 3})
	assert.Error(t, err)
}
