package enum

import (
	"fmt"
	"strings"
)

// Entry is one name/code pair of a Table.
type Entry struct {
	Name string
	Code uint64
}

// Table is an ordered, append-only mapping between names and integer codes.
type Table struct {
	label   string
	entries []Entry
	byName  map[string]uint64
	byCode  map[uint64]string
}

// NewTable builds a Table from entries in declaration order.
//
// It panics if a code is zero, if codes are not strictly increasing, or if a
// name appears twice. Zero is reserved for "unset" on the wire.
func NewTable(label string, entries ...Entry) *Table {
	t := &Table{
		label:   label,
		entries: make([]Entry, 0, len(entries)),
		byName:  make(map[string]uint64, len(entries)),
		byCode:  make(map[uint64]string, len(entries)),
	}

	var last uint64
	for _, e := range entries {
		if e.Code == 0 {
			panic(fmt.Sprintf("enum %s: code 0 is reserved (%q)", label, e.Name))
		}
		if e.Code <= last {
			panic(fmt.Sprintf("enum %s: code %d for %q is not greater than %d", label, e.Code, e.Name, last))
		}
		if _, dup := t.byName[e.Name]; dup {
			panic(fmt.Sprintf("enum %s: duplicate name %q", label, e.Name))
		}
		last = e.Code
		t.entries = append(t.entries, e)
		t.byName[e.Name] = e.Code
		t.byCode[e.Code] = e.Name
	}

	return t
}

// Sequential builds a Table whose codes are the 1-based declaration positions.
func Sequential(label string, names ...string) *Table {
	entries := make([]Entry, len(names))
	for i, name := range names {
		entries[i] = Entry{Name: name, Code: uint64(i + 1)}
	}
	return NewTable(label, entries...)
}

// Label returns the table's human-readable name (e.g. "region").
func (t *Table) Label() string { return t.label }

// Code returns the code registered for name. Lookup is exact; identifiers
// round-trip names bit-for-bit so no case folding is applied.
func (t *Table) Code(name string) (uint64, bool) {
	code, ok := t.byName[name]
	return code, ok
}

// Name returns the name registered for code.
func (t *Table) Name(code uint64) (string, bool) {
	name, ok := t.byCode[code]
	return name, ok
}

// Names returns the table's names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.entries))
	for i, e := range t.entries {
		names[i] = e.Name
	}
	return names
}

// Entries returns a copy of the table's entries in declaration order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int { return len(t.entries) }

// String implements fmt.Stringer.
func (t *Table) String() string {
	return fmt.Sprintf("%s[%s]", t.label, strings.Join(t.Names(), ","))
}
