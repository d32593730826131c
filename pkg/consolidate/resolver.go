package consolidate

import (
	"strings"

	"github.com/bsldata/bslmap/pkg/schema"
)

// Resolution is the resolver's output: the best-available institution
// name plus geography fields, all empty strings when nothing matched.
// Geography is never fabricated.
type Resolution struct {
	Institution string
	Country     string
	City        string
	Latitude    string
	Longitude   string
}

// niaidName marks gazetteer entries eligible for abbreviation
// matching. This is the single hard-coded alias case; anything more
// general needs an alias table.
const niaidName = "national institute of allergy and infectious diseases"

// niaidAliases are abbreviations accepted in evidence text for
// entries whose name contains niaidName.
var niaidAliases = []string{
	"niaid",
	"national institute of allergy",
	"nih",
}

// matcher is one gazetteer matching strategy. Strategies are pure
// functions tried in fixed order; the first success wins.
type matcher func(cand schema.CandidateRecord, gaz *Gazetteer) (schema.GazetteerEntry, bool)

// matchers is the ordered strategy cascade: exact key lookup of the
// candidate's institution field, then the evidence-text scan.
var matchers = []matcher{
	matchDirect,
	matchEvidence,
}

// matchDirect looks the candidate's institution field up as a
// case-folded exact gazetteer key.
func matchDirect(cand schema.CandidateRecord, gaz *Gazetteer) (schema.GazetteerEntry, bool) {
	return gaz.Lookup(cand.Institution)
}

// matchEvidence concatenates the candidate's evidence spans into a
// case-folded blob and scans gazetteer entries in load order. An
// entry matches when its case-folded name appears as a substring of
// the blob, or, for NIAID-class entries, when the blob contains one
// of the known abbreviations. The first matching entry wins and no
// further entries are checked.
//
// Substring containment can false-positive on short or generic
// institution names. That is a known precision limitation of the
// scan, accepted as-is.
func matchEvidence(cand schema.CandidateRecord, gaz *Gazetteer) (schema.GazetteerEntry, bool) {
	if len(cand.EvidenceSpans) == 0 {
		return schema.GazetteerEntry{}, false
	}
	blob := strings.ToLower(strings.Join(cand.EvidenceSpans, " "))
	for _, entry := range gaz.Entries() {
		name := strings.ToLower(entry.Institution)
		if name != "" && strings.Contains(blob, name) {
			return entry, true
		}
		if strings.Contains(name, niaidName) && containsAlias(blob) {
			return entry, true
		}
	}
	return schema.GazetteerEntry{}, false
}

func containsAlias(blob string) bool {
	for _, alias := range niaidAliases {
		if strings.Contains(blob, alias) {
			return true
		}
	}
	return false
}

// Resolve determines the institution name and geography for the
// winning candidate of one publication.
//
// The institution name comes from the first non-empty source in
// strict priority order: the corpus affiliation hint, the candidate's
// own institution field, the matched gazetteer entry's name, empty
// string.
//
// Gazetteer enrichment is independent of which name source won:
// geography fields are filled whenever any matching strategy
// succeeds, and stay empty otherwise.
func Resolve(cand schema.CandidateRecord, affHint string, gaz *Gazetteer) Resolution {
	var res Resolution

	entry, matched := matchGazetteer(cand, gaz)
	if matched {
		res.Country = entry.Country
		res.City = entry.City
		res.Latitude = entry.Latitude
		res.Longitude = entry.Longitude
	}

	switch {
	case affHint != "":
		res.Institution = affHint
	case cand.Institution != "":
		res.Institution = cand.Institution
	case matched:
		res.Institution = entry.Institution
	}

	return res
}

func matchGazetteer(cand schema.CandidateRecord, gaz *Gazetteer) (schema.GazetteerEntry, bool) {
	if gaz == nil || gaz.Len() == 0 {
		return schema.GazetteerEntry{}, false
	}
	for _, m := range matchers {
		if entry, ok := m(cand, gaz); ok {
			return entry, true
		}
	}
	return schema.GazetteerEntry{}, false
}

// Consolidate reduces one publication group to its output row: the
// winning candidate's fields combined with the resolver's output.
func Consolidate(
	pmid string,
	records []schema.CandidateRecord,
	affHint string,
	gaz *Gazetteer,
) schema.ConsolidatedRecord {
	best := BestCandidate(records)
	res := Resolve(best, affHint, gaz)

	return schema.ConsolidatedRecord{
		PMID:          pmid,
		LabName:       best.LabName,
		Institution:   res.Institution,
		Country:       res.Country,
		City:          res.City,
		Latitude:      res.Latitude,
		Longitude:     res.Longitude,
		BSLLevel:      best.BSLLevel,
		Pathogens:     best.Pathogens,
		ResearchTypes: best.ResearchTypes,
		PPPOrGOF:      best.PPPOrGOF,
		Confidence:    best.Confidence,
		SourcePMID:    pmid,
	}
}
