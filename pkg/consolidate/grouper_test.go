package consolidate_test

import (
	"testing"

	"github.com/bsldata/bslmap/pkg/consolidate"
	"github.com/bsldata/bslmap/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicationID(t *testing.T) {
	tests := []struct {
		msg   string
		docID string
		pmid  string
		ok    bool
	}{
		{"chunk id", "pmid:12345#chunk0", "12345", true},
		{"later chunk", "pmid:12345#chunk17", "12345", true},
		{"bare pmid", "pmid:42", "42", true},
		{"no digits", "pmid:#chunk0", "", false},
		{"wrong scheme", "doi:10.1000/xyz#chunk0", "", false},
		{"uppercase scheme", "PMID:12345#chunk0", "", false},
		{"leading space", " pmid:12345", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		pmid, ok := consolidate.PublicationID(tt.docID)
		assert.Equal(t, tt.ok, ok, tt.msg)
		assert.Equal(t, tt.pmid, pmid, tt.msg)
	}
}

func TestGroup(t *testing.T) {
	records := []schema.CandidateRecord{
		{DocChunkID: "pmid:100#chunk0", Confidence: 0.5},
		{DocChunkID: "pmid:200#chunk0", Confidence: 0.3},
		{DocChunkID: "pmid:100#chunk1", Confidence: 0.8},
		{DocChunkID: "garbled", Confidence: 0.9},
		{DocChunkID: "pmid:100#chunk2", Confidence: 0.1},
	}

	g := consolidate.Group(records)

	t.Run("keys keep first-seen order", func(t *testing.T) {
		assert.Equal(t, []string{"100", "200"}, g.IDs())
		assert.Equal(t, 2, g.Len())
	})

	t.Run("records keep arrival order within a group", func(t *testing.T) {
		recs := g.Records("100")
		require.Len(t, recs, 3)
		assert.Equal(t, "pmid:100#chunk0", recs[0].DocChunkID)
		assert.Equal(t, "pmid:100#chunk1", recs[1].DocChunkID)
		assert.Equal(t, "pmid:100#chunk2", recs[2].DocChunkID)
	})

	t.Run("malformed ids are counted, not grouped", func(t *testing.T) {
		assert.Equal(t, 1, g.Skipped())
		assert.Nil(t, g.Records("garbled"))
	})
}

func TestGroupEmpty(t *testing.T) {
	g := consolidate.Group(nil)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.Skipped())
	assert.Empty(t, g.IDs())
}
