// Package geojson defines the GeoJSON feature types served by the
// lab map and the pure projection from gazetteer labs plus
// consolidated evidence rows into a FeatureCollection.
package geojson

import (
	"sort"
	"strconv"
	"strings"

	"github.com/bsldata/bslmap/pkg/schema"
	"github.com/gnames/gnuuid"
)

// maxEvidencePMIDs caps the per-feature list of supporting
// publications to keep the dataset small.
const maxEvidencePMIDs = 50

// Geometry is a GeoJSON Point geometry.
type Geometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// LabProperties carries the lab metadata shown on the map and used
// by the query service's filters.
type LabProperties struct {
	Institution   string   `json:"institution"`
	Country       string   `json:"country"`
	City          string   `json:"city"`
	BSLLevel      string   `json:"bsl_level"`
	Pathogens     []string `json:"pathogens"`
	ResearchTypes []string `json:"research_types"`
	EvidenceCount int      `json:"evidence_count"`
	EvidencePMIDs []string `json:"evidence_pmids"`
}

// Feature is one lab as a GeoJSON Point feature. ID is a UUID v5
// derived from the institution name, so rebuilding the dataset keeps
// ids stable.
type Feature struct {
	Type       string        `json:"type"`
	ID         string        `json:"id"`
	Properties LabProperties `json:"properties"`
	Geometry   Geometry      `json:"geometry"`
}

// FeatureCollection is the full geographic dataset.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewFeatureCollection returns a well-formed, possibly empty
// collection. Features is never nil so the JSON always carries an
// array.
func NewFeatureCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// Build projects gazetteer labs joined with consolidated evidence
// rows into features. The join is by institution name, verbatim.
// Labs without parseable coordinates are skipped and reported in the
// second return value.
func Build(
	labs []schema.GazetteerEntry,
	evidence []schema.ConsolidatedRecord,
) (FeatureCollection, []string) {
	byInst := make(map[string][]schema.ConsolidatedRecord)
	for _, row := range evidence {
		byInst[row.Institution] = append(byInst[row.Institution], row)
	}

	var features []Feature
	var skipped []string
	for _, lab := range labs {
		lat, errLat := strconv.ParseFloat(lab.Latitude, 64)
		lon, errLon := strconv.ParseFloat(lab.Longitude, 64)
		if errLat != nil || errLon != nil {
			skipped = append(skipped, lab.Institution)
			continue
		}

		rows := byInst[lab.Institution]
		features = append(features, Feature{
			Type:       "Feature",
			ID:         gnuuid.New(lab.Institution).String(),
			Properties: labProperties(lab, rows),
			Geometry: Geometry{
				Type:        "Point",
				Coordinates: [2]float64{lon, lat},
			},
		})
	}
	return NewFeatureCollection(features), skipped
}

func labProperties(
	lab schema.GazetteerEntry,
	rows []schema.ConsolidatedRecord,
) LabProperties {
	props := LabProperties{
		Institution:   lab.Institution,
		Country:       lab.Country,
		City:          lab.City,
		BSLLevel:      highestBSL(rows),
		Pathogens:     collect(rows, func(r schema.ConsolidatedRecord) []string { return r.Pathogens }),
		ResearchTypes: collect(rows, func(r schema.ConsolidatedRecord) []string { return r.ResearchTypes }),
		EvidenceCount: len(rows),
	}
	pmids := make([]string, 0, len(rows))
	for _, r := range rows {
		if len(pmids) == maxEvidencePMIDs {
			break
		}
		pmids = append(pmids, r.PMID)
	}
	props.EvidencePMIDs = pmids
	return props
}

// highestBSL picks the highest containment level attested by the
// evidence rows; "unknown" and empty levels are ignored.
func highestBSL(rows []schema.ConsolidatedRecord) string {
	best := ""
	for _, r := range rows {
		lvl := strings.ToUpper(strings.TrimSpace(r.BSLLevel))
		if !strings.HasPrefix(lvl, "BSL-") {
			continue
		}
		if best == "" || lvl > best {
			best = lvl
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}

// collect merges a multi-valued field across rows, case-folded
// deduplication, sorted output.
func collect(
	rows []schema.ConsolidatedRecord,
	field func(schema.ConsolidatedRecord) []string,
) []string {
	seen := make(map[string]bool)
	res := []string{}
	for _, r := range rows {
		for _, v := range field(r) {
			v = strings.TrimSpace(v)
			if v == "" || seen[strings.ToLower(v)] {
				continue
			}
			seen[strings.ToLower(v)] = true
			res = append(res, v)
		}
	}
	sort.Strings(res)
	return res
}
