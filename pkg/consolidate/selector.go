package consolidate

import (
	"github.com/bsldata/bslmap/pkg/schema"
)

// BestCandidate picks the record with the maximum confidence from a
// non-empty group. Ties break toward the earliest arrival, so the
// result is deterministic for a given input order.
func BestCandidate(records []schema.CandidateRecord) schema.CandidateRecord {
	best := records[0]
	for _, rec := range records[1:] {
		if rec.Confidence > best.Confidence {
			best = rec
		}
	}
	return best
}
