// Package consolidate implements the merge core of the BSLMap
// pipeline: grouping candidate extraction records by publication,
// selecting the best candidate per group, and resolving the
// institution and its geography against a reference gazetteer.
//
// Everything in this package is pure: no I/O, no global state, fully
// deterministic for a given input order.
package consolidate

import (
	"strings"

	"github.com/bsldata/bslmap/pkg/schema"
)

// Gazetteer is the immutable, in-memory reference table of known
// institutions. It preserves load order for the evidence scan and
// keys a case-folded exact lookup.
//
// Duplicate institution names overwrite earlier rows (last-row-wins);
// the replacement keeps the original row's position in iteration
// order. The reference table is assumed curated upstream, so this is
// documented behavior rather than an error.
type Gazetteer struct {
	entries []schema.GazetteerEntry
	byName  map[string]int
}

// NewGazetteer builds a Gazetteer from rows in load order.
func NewGazetteer(rows []schema.GazetteerEntry) *Gazetteer {
	g := &Gazetteer{
		byName: make(map[string]int, len(rows)),
	}
	for _, row := range rows {
		key := strings.ToLower(row.Institution)
		if i, ok := g.byName[key]; ok {
			g.entries[i] = row
			continue
		}
		g.byName[key] = len(g.entries)
		g.entries = append(g.entries, row)
	}
	return g
}

// Len returns the number of distinct institutions.
func (g *Gazetteer) Len() int {
	return len(g.entries)
}

// Lookup finds an entry by case-folded exact institution name.
// No punctuation or diacritics normalization is performed.
func (g *Gazetteer) Lookup(name string) (schema.GazetteerEntry, bool) {
	if name == "" {
		return schema.GazetteerEntry{}, false
	}
	i, ok := g.byName[strings.ToLower(name)]
	if !ok {
		return schema.GazetteerEntry{}, false
	}
	return g.entries[i], true
}

// Entries returns the entries in load order. The slice is shared;
// callers must treat it as read-only.
func (g *Gazetteer) Entries() []schema.GazetteerEntry {
	return g.entries
}
