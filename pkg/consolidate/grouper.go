package consolidate

import (
	"regexp"

	"github.com/bsldata/bslmap/pkg/schema"
)

// pmidRe extracts the publication identifier from a document chunk
// id such as "pmid:12345#chunk0".
var pmidRe = regexp.MustCompile(`^pmid:(\d+)`)

// PublicationID extracts the publication identifier from a document
// chunk id. The second return value is false when the id does not
// start with "pmid:<digits>".
func PublicationID(docChunkID string) (string, bool) {
	m := pmidRe.FindStringSubmatch(docChunkID)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Groups partitions candidate records by publication identifier.
// Arrival order is preserved within each group, and group keys keep
// first-seen order so a run over the same input is deterministic.
type Groups struct {
	byID    map[string][]schema.CandidateRecord
	order   []string
	skipped int
}

// Group partitions records by the publication identifier of their
// chunk id. Records with a malformed id are skipped silently, only
// counted.
func Group(records []schema.CandidateRecord) *Groups {
	g := &Groups{
		byID: make(map[string][]schema.CandidateRecord),
	}
	for _, rec := range records {
		pmid, ok := PublicationID(rec.DocChunkID)
		if !ok {
			g.skipped++
			continue
		}
		if _, seen := g.byID[pmid]; !seen {
			g.order = append(g.order, pmid)
		}
		g.byID[pmid] = append(g.byID[pmid], rec)
	}
	return g
}

// IDs returns publication identifiers in first-seen order.
func (g *Groups) IDs() []string {
	return g.order
}

// Records returns the candidates for one publication in arrival
// order. The result is nil for unknown identifiers, but by
// construction every id from IDs() has at least one record.
func (g *Groups) Records(pmid string) []schema.CandidateRecord {
	return g.byID[pmid]
}

// Len returns the number of publication groups.
func (g *Groups) Len() int {
	return len(g.order)
}

// Skipped returns how many records were dropped for a malformed
// chunk id.
func (g *Groups) Skipped() int {
	return g.skipped
}
