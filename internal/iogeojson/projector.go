// Package iogeojson implements the Projector interface: it joins the
// geocoded gazetteer with the consolidated table and writes the
// GeoJSON dataset served by the query service.
package iogeojson

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bsldata/bslmap/pkg/bslmap"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/bsldata/bslmap/pkg/geojson"
	"github.com/bsldata/bslmap/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// projector implements the Projector interface.
type projector struct {
	cfg *config.Config
}

// New creates a new Projector.
func New(cfg *config.Config) bslmap.Projector {
	return &projector{cfg: cfg}
}

// Build reads the labs and evidence tables, projects them into a
// FeatureCollection and writes it atomically.
func (p *projector) Build(ctx context.Context) error {
	startTime := time.Now()
	in := p.cfg.Project

	labs, err := readLabs(in.LabsPath)
	if err != nil {
		return err
	}
	evidence, err := readEvidence(in.EvidencePath)
	if err != nil {
		return err
	}

	fc, skipped := geojson.Build(labs, evidence)
	for _, name := range skipped {
		slog.Warn("Skipping lab without coordinates", "institution", name)
	}

	if err := writeCollection(in.OutputPath, fc); err != nil {
		return err
	}

	slog.Info("GeoJSON projection complete",
		"labs", len(labs),
		"evidence_rows", len(evidence),
		"features", len(fc.Features),
		"skipped_labs", len(skipped),
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)
	gn.Info("Wrote <em>%s</em> features to <em>%s</em>",
		humanize.Comma(int64(len(fc.Features))), in.OutputPath)
	return nil
}

// readLabs loads the geocoded gazetteer rows in file order.
func readLabs(path string) ([]schema.GazetteerEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LabsError(path, err)
	}
	defer f.Close()

	rows, header, err := readCSV(f)
	if err != nil {
		return nil, LabsError(path, err)
	}

	var labs []schema.GazetteerEntry
	for _, row := range rows {
		labs = append(labs, schema.GazetteerEntry{
			Institution: field(row, header, "institution"),
			Latitude:    field(row, header, "latitude"),
			Longitude:   field(row, header, "longitude"),
			Country:     field(row, header, "country"),
			City:        field(row, header, "city"),
		})
	}
	return labs, nil
}

// readEvidence loads the consolidated table back into records.
// Multi-valued fields are split on the list separator.
func readEvidence(path string) ([]schema.ConsolidatedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, EvidenceError(path, err)
	}
	defer f.Close()

	rows, header, err := readCSV(f)
	if err != nil {
		return nil, EvidenceError(path, err)
	}

	var records []schema.ConsolidatedRecord
	for _, row := range rows {
		conf, _ := strconv.ParseFloat(field(row, header, "confidence"), 64)
		ppp, _ := strconv.ParseBool(field(row, header, "ppp_or_gof"))
		records = append(records, schema.ConsolidatedRecord{
			PMID:          field(row, header, "pmid"),
			LabName:       field(row, header, "lab_name"),
			Institution:   field(row, header, "institution"),
			Country:       field(row, header, "country"),
			City:          field(row, header, "city"),
			Latitude:      field(row, header, "latitude"),
			Longitude:     field(row, header, "longitude"),
			BSLLevel:      field(row, header, "bsl_level_inferred"),
			Pathogens:     splitList(field(row, header, "pathogens")),
			ResearchTypes: splitList(field(row, header, "research_types")),
			PPPOrGOF:      ppp,
			Confidence:    conf,
			SourcePMID:    field(row, header, "source_pmid"),
		})
	}
	return records, nil
}

func readCSV(r io.Reader) ([][]string, map[string]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, map[string]int{}, nil
		}
		return nil, nil, err
	}
	header := make(map[string]int, len(head))
	for i, name := range head {
		header[name] = i
	}

	var rows [][]string
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, row)
	}
	return rows, header, nil
}

func field(row []string, header map[string]int, name string) string {
	i, ok := header[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, schema.ListSeparator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// writeCollection writes the dataset atomically via a temp file and
// rename, same discipline as the consolidated table.
func writeCollection(path string, fc geojson.FeatureCollection) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return OutputError(path, err)
	}

	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(fc)
	if err != nil {
		return OutputError(path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return OutputError(path, err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		return OutputError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return OutputError(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return OutputError(path, err)
	}
	return nil
}
