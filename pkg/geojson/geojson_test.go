package geojson_test

import (
	"testing"

	"github.com/bsldata/bslmap/pkg/geojson"
	"github.com/bsldata/bslmap/pkg/schema"
	"github.com/gnames/gnuuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLabs() []schema.GazetteerEntry {
	return []schema.GazetteerEntry{
		{
			Institution: "Pasteur Institute",
			Latitude:    "48.84",
			Longitude:   "2.31",
			Country:     "FR",
			City:        "Paris",
		},
		{
			Institution: "Ungeo Coded Institute",
			Latitude:    "",
			Longitude:   "",
			Country:     "US",
		},
	}
}

func testEvidence() []schema.ConsolidatedRecord {
	return []schema.ConsolidatedRecord{
		{
			PMID:          "100",
			Institution:   "Pasteur Institute",
			BSLLevel:      "BSL-3",
			Pathogens:     []string{"Yersinia pestis"},
			ResearchTypes: []string{"diagnostics"},
		},
		{
			PMID:          "200",
			Institution:   "Pasteur Institute",
			BSLLevel:      "BSL-4",
			Pathogens:     []string{"Ebola virus", "yersinia pestis"},
			ResearchTypes: []string{"Vaccine Development"},
		},
		{
			PMID:        "300",
			Institution: "Somewhere Else",
			BSLLevel:    "BSL-2",
		},
	}
}

func TestBuild(t *testing.T) {
	fc, skipped := geojson.Build(testLabs(), testEvidence())

	t.Run("labs without coordinates are skipped", func(t *testing.T) {
		assert.Equal(t, []string{"Ungeo Coded Institute"}, skipped)
		require.Len(t, fc.Features, 1)
	})

	feat := fc.Features[0]

	t.Run("geometry is lon, lat", func(t *testing.T) {
		assert.Equal(t, "Point", feat.Geometry.Type)
		assert.InDelta(t, 2.31, feat.Geometry.Coordinates[0], 1e-9)
		assert.InDelta(t, 48.84, feat.Geometry.Coordinates[1], 1e-9)
	})

	t.Run("id is stable across rebuilds", func(t *testing.T) {
		want := gnuuid.New("Pasteur Institute").String()
		assert.Equal(t, want, feat.ID)

		fc2, _ := geojson.Build(testLabs(), testEvidence())
		assert.Equal(t, feat.ID, fc2.Features[0].ID)
	})

	t.Run("evidence is aggregated per institution", func(t *testing.T) {
		props := feat.Properties
		assert.Equal(t, 2, props.EvidenceCount)
		assert.Equal(t, []string{"100", "200"}, props.EvidencePMIDs)
		assert.Equal(t, "BSL-4", props.BSLLevel,
			"highest attested level wins")
		assert.Equal(t,
			[]string{"Ebola virus", "Yersinia pestis"},
			props.Pathogens,
			"pathogens are deduplicated case-insensitively and sorted")
		assert.Equal(t,
			[]string{"Vaccine Development", "diagnostics"},
			props.ResearchTypes)
	})
}

func TestBuildNoEvidence(t *testing.T) {
	labs := []schema.GazetteerEntry{
		{Institution: "Quiet Lab", Latitude: "1.0", Longitude: "2.0"},
	}
	fc, skipped := geojson.Build(labs, nil)

	require.Len(t, fc.Features, 1)
	assert.Empty(t, skipped)

	props := fc.Features[0].Properties
	assert.Equal(t, 0, props.EvidenceCount)
	assert.Equal(t, "Unknown", props.BSLLevel)
	assert.Empty(t, props.Pathogens)
	assert.NotNil(t, props.Pathogens, "empty lists stay JSON arrays")
	assert.Empty(t, props.EvidencePMIDs)
	assert.NotNil(t, props.EvidencePMIDs)
}

func TestBuildBadCoordinates(t *testing.T) {
	labs := []schema.GazetteerEntry{
		{Institution: "Half Geocoded", Latitude: "48.84", Longitude: ""},
		{Institution: "Not A Number", Latitude: "abc", Longitude: "2.0"},
	}
	fc, skipped := geojson.Build(labs, nil)

	assert.Empty(t, fc.Features)
	assert.Equal(t, []string{"Half Geocoded", "Not A Number"}, skipped)
}

func TestBuildUnknownBSLIgnored(t *testing.T) {
	labs := []schema.GazetteerEntry{
		{Institution: "Lab", Latitude: "0", Longitude: "0"},
	}
	evidence := []schema.ConsolidatedRecord{
		{PMID: "1", Institution: "Lab", BSLLevel: "unknown"},
		{PMID: "2", Institution: "Lab", BSLLevel: ""},
		{PMID: "3", Institution: "Lab", BSLLevel: "bsl-2"},
	}

	fc, _ := geojson.Build(labs, evidence)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "BSL-2", fc.Features[0].Properties.BSLLevel,
		"levels are upper-cased, unknowns are ignored")
}

func TestBuildEvidencePMIDCap(t *testing.T) {
	labs := []schema.GazetteerEntry{
		{Institution: "Busy Lab", Latitude: "0", Longitude: "0"},
	}
	evidence := make([]schema.ConsolidatedRecord, 75)
	for i := range evidence {
		evidence[i] = schema.ConsolidatedRecord{
			PMID:        string(rune('a' + i%26)),
			Institution: "Busy Lab",
		}
	}

	fc, _ := geojson.Build(labs, evidence)
	require.Len(t, fc.Features, 1)
	props := fc.Features[0].Properties
	assert.Equal(t, 75, props.EvidenceCount,
		"count reflects all evidence rows")
	assert.Len(t, props.EvidencePMIDs, 50,
		"supporting publication list is capped")
}

func TestNewFeatureCollection(t *testing.T) {
	fc := geojson.NewFeatureCollection(nil)
	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.NotNil(t, fc.Features)
	assert.Empty(t, fc.Features)
}
