package consolidate_test

import (
	"testing"

	"github.com/bsldata/bslmap/pkg/consolidate"
	"github.com/bsldata/bslmap/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGazetteerLookup(t *testing.T) {
	gaz := consolidate.NewGazetteer([]schema.GazetteerEntry{
		{Institution: "Pasteur Institute", Country: "FR"},
	})

	tests := []struct {
		msg  string
		name string
		ok   bool
	}{
		{"exact name", "Pasteur Institute", true},
		{"case folded", "pasteur institute", true},
		{"mixed case", "PASTEUR institute", true},
		{"unknown name", "Koch Institute", false},
		{"empty name", "", false},
		{"no punctuation normalization", "Pasteur Institute.", false},
	}

	for _, tt := range tests {
		entry, ok := gaz.Lookup(tt.name)
		assert.Equal(t, tt.ok, ok, tt.msg)
		if tt.ok {
			assert.Equal(t, "FR", entry.Country, tt.msg)
		}
	}
}

func TestGazetteerDuplicates(t *testing.T) {
	gaz := consolidate.NewGazetteer([]schema.GazetteerEntry{
		{Institution: "Pasteur Institute", Country: "FR", City: "Paris"},
		{Institution: "Robert Koch Institute", Country: "DE"},
		{Institution: "pasteur institute", Country: "FR", City: "Lille"},
	})

	t.Run("last row wins", func(t *testing.T) {
		entry, ok := gaz.Lookup("Pasteur Institute")
		require.True(t, ok)
		assert.Equal(t, "Lille", entry.City)
	})

	t.Run("replacement keeps original position", func(t *testing.T) {
		entries := gaz.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "pasteur institute", entries[0].Institution)
		assert.Equal(t, "Robert Koch Institute", entries[1].Institution)
	})

	assert.Equal(t, 2, gaz.Len())
}

func TestGazetteerEmpty(t *testing.T) {
	gaz := consolidate.NewGazetteer(nil)
	assert.Equal(t, 0, gaz.Len())

	_, ok := gaz.Lookup("anything")
	assert.False(t, ok)
}
