// Package bslmap defines the public interfaces of the BSLMap pipeline
// components and the application version metadata.
//
// Implementations live in internal/io* packages; everything here is
// I/O-free and safe to import from any layer.
package bslmap

import (
	"context"
)

var (
	// Version is the application version, set by build flags.
	Version = "dev"
	// Build is the build timestamp or commit, set by build flags.
	Build = "n/a"
)

// Consolidator merges per-chunk extraction records into one
// authoritative record per publication and writes the consolidated
// table.
//
// A run reads the candidate extraction stream (JSONL), optionally a
// gazetteer table and a source corpus, resolves one record per
// publication and writes a CSV with the canonical column order.
// Local problems (malformed records, missing optional inputs) are
// absorbed with a logged diagnostic; only an unreadable candidate
// stream or an unwritable output makes the run fail.
type Consolidator interface {
	// Consolidate performs one full consolidation run.
	Consolidate(ctx context.Context) error
}

// Projector turns the consolidated table and the gazetteer into a
// geographic dataset (GeoJSON FeatureCollection), one Point feature
// per gazetteer lab, enriched with evidence from the consolidated
// rows.
type Projector interface {
	// Build performs one full projection run.
	Build(ctx context.Context) error
}

// GazetteerBuilder geocodes a plain-text institutions list into the
// gazetteer CSV used by the Consolidator and the Projector.
type GazetteerBuilder interface {
	// Build geocodes institutions and writes the gazetteer table.
	Build(ctx context.Context) error
}

// LabService serves the geographic dataset read-only over HTTP.
type LabService interface {
	// Run starts the HTTP server and blocks until the context is
	// cancelled or the server fails.
	Run(ctx context.Context) error
}
