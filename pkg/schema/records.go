// Package schema defines the record types that flow through the
// BSLMap pipeline: per-chunk extraction candidates, source corpus
// entries, gazetteer rows and the consolidated output rows.
//
// All types are plain data carriers. Defaults are explicit in the
// type definitions: absent JSON fields decode to zero values, which
// match the pipeline's documented defaults (confidence 0, ppp_or_gof
// false, empty sequences).
package schema

import (
	"strconv"
	"strings"
)

// CandidateRecord is one extraction attempt for one text chunk,
// produced by the extraction stage. It is consumed read-only and is
// never mutated, only projected into a ConsolidatedRecord.
type CandidateRecord struct {
	// DocChunkID identifies the source chunk, format
	// "pmid:<digits>#chunk<n>". Records whose id does not start
	// with "pmid:<digits>" are dropped from consolidation.
	DocChunkID string `json:"doc_id"`

	LabName     string `json:"lab_name,omitempty"`
	Institution string `json:"institution,omitempty"`
	Country     string `json:"country,omitempty"`
	City        string `json:"city,omitempty"`

	// BSLLevel is "BSL-2", "BSL-3", "BSL-4" or "unknown".
	BSLLevel string `json:"bsl_level_inferred,omitempty"`

	Pathogens     []string `json:"pathogens,omitempty"`
	ResearchTypes []string `json:"research_types,omitempty"`

	// PPPOrGOF flags potential pandemic pathogen or gain-of-function
	// work.
	PPPOrGOF bool `json:"ppp_or_gof,omitempty"`

	// Confidence is the extraction model's self-reported confidence
	// in [0,1]. Absent means 0.
	Confidence float64 `json:"confidence,omitempty"`

	// EvidenceSpans are short verbatim quotes supporting the
	// extraction.
	EvidenceSpans []string `json:"evidence_spans,omitempty"`
}

// SourceDocument is one chunked corpus entry from the harvesting
// stage. Only the affiliation hint is used by consolidation.
type SourceDocument struct {
	DocChunkID string `json:"doc_id"`
	Source     string `json:"source,omitempty"`
	Title      string `json:"title,omitempty"`
	AffHint    string `json:"aff_hint,omitempty"`
	Text       string `json:"text,omitempty"`
}

// GazetteerEntry is one known institution from the reference
// gazetteer. Latitude and longitude stay strings: they may be empty
// for ungeocoded rows and are passed through verbatim.
type GazetteerEntry struct {
	Institution string
	Latitude    string
	Longitude   string
	Country     string
	City        string
}

// ConsolidatedRecord is the single authoritative output row for one
// publication.
type ConsolidatedRecord struct {
	PMID          string
	LabName       string
	Institution   string
	Country       string
	City          string
	Latitude      string
	Longitude     string
	BSLLevel      string
	Pathogens     []string
	ResearchTypes []string
	PPPOrGOF      bool
	Confidence    float64
	// SourcePMID duplicates PMID, retained for output-schema
	// compatibility with earlier pipeline stages.
	SourcePMID string
}

// ListSeparator joins multi-valued fields in the consolidated CSV.
const ListSeparator = "; "

// ConsolidatedHeader returns the canonical column order of the
// consolidated table. The header is written even when there are zero
// data rows.
func ConsolidatedHeader() []string {
	return []string{
		"pmid", "lab_name", "institution", "country", "city",
		"latitude", "longitude", "bsl_level_inferred",
		"pathogens", "research_types", "ppp_or_gof",
		"confidence", "source_pmid",
	}
}

// Row serializes the record into the canonical column order.
func (r *ConsolidatedRecord) Row() []string {
	return []string{
		r.PMID,
		r.LabName,
		r.Institution,
		r.Country,
		r.City,
		r.Latitude,
		r.Longitude,
		r.BSLLevel,
		strings.Join(r.Pathogens, ListSeparator),
		strings.Join(r.ResearchTypes, ListSeparator),
		strconv.FormatBool(r.PPPOrGOF),
		strconv.FormatFloat(r.Confidence, 'g', -1, 64),
		r.SourcePMID,
	}
}
