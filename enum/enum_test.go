package enum

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable(t *testing.T) {
	tbl := NewTable("color",
		Entry{Name: "red", Code: 1},
		Entry{Name: "green", Code: 2},
		Entry{Name: "blue", Code: 7},
	)

	code, ok := tbl.Code("blue")
	require.True(t, ok)
	assert.Equal(t, uint64(7), code)

	name, ok := tbl.Name(2)
	require.True(t, ok)
	assert.Equal(t, "green", name)

	_, ok = tbl.Code("Red")
	assert.False(t, ok, "lookup is case-sensitive")

	_, ok = tbl.Name(3)
	assert.False(t, ok)

	assert.Equal(t, []string{"red", "green", "blue"}, tbl.Names())
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, "color", tbl.Label())
	assert.Equal(t, "color[red,green,blue]", tbl.String())
}

func TestNewTablePanics(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
	}{
		{
			name:    "zero code",
			entries: []Entry{{Name: "a", Code: 0}},
		},
		{
			name:    "reordered codes",
			entries: []Entry{{Name: "a", Code: 2}, {Name: "b", Code: 1}},
		},
		{
			name:    "reused code",
			entries: []Entry{{Name: "a", Code: 1}, {Name: "b", Code: 1}},
		},
		{
			name:    "duplicate name",
			entries: []Entry{{Name: "a", Code: 1}, {Name: "a", Code: 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { NewTable("bad", tt.entries...) })
		})
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	entries := Environments.Entries()
	entries[0].Name = "mutated"

	name, ok := Environments.Name(1)
	require.True(t, ok)
	assert.Equal(t, "production", name)
}

// TestWireCodesArePinned guards the codes persisted inside issued identifiers.
// A failure here means a table was reordered or an entry was removed.
func TestWireCodesArePinned(t *testing.T) {
	golden := map[*Table][]Entry{
		Regions: {
			{Name: "us-east-1", Code: 1},
		},
		Environments: {
			{Name: "production", Code: 1},
			{Name: "staging", Code: 2},
			{Name: "development", Code: 3},
		},
		HashAlgorithms: {
			{Name: "sha1", Code: 0x11},
			{Name: "sha2-256", Code: 0x12},
			{Name: "sha2-512", Code: 0x13},
			{Name: "sha3-512", Code: 0x14},
			{Name: "sha3-384", Code: 0x15},
			{Name: "sha3-256", Code: 0x16},
		},
	}

	for tbl, want := range golden {
		t.Run(tbl.Label(), func(t *testing.T) {
			got := tbl.Entries()
			require.GreaterOrEqual(t, len(got), len(want), "entries removed")
			assert.Equal(t, want, got[:len(want)], "existing codes changed")
		})
	}
}

func TestConcurrentLookup(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				code, _ := HashAlgorithms.Code("sha3-512")
				_, _ = HashAlgorithms.Name(code)
			}
		}()
	}
	wg.Wait()
}
