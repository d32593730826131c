// Package iogazetteer loads the reference gazetteer table from a CSV
// file into the in-memory lookup used by the resolver.
package iogazetteer

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/bsldata/bslmap/pkg/consolidate"
	"github.com/bsldata/bslmap/pkg/schema"
)

// Load reads a gazetteer CSV with a required header row. The columns
// institution, latitude, longitude, country and city are picked by
// name, so column order does not matter.
//
// A missing file is not an error: the resolver degrades gracefully
// with an empty lookup, it just never enriches records with
// geography. A present but unparseable file is an error.
func Load(path string) (*consolidate.Gazetteer, error) {
	if path == "" {
		return consolidate.NewGazetteer(nil), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("Gazetteer file is missing, geography stays empty",
				"path", path)
			return consolidate.NewGazetteer(nil), nil
		}
		return nil, ReadError(path, err)
	}
	defer f.Close()

	rows, err := readRows(f)
	if err != nil {
		return nil, ReadError(path, err)
	}

	slog.Info("Loaded gazetteer", "path", path, "entries", len(rows))
	return consolidate.NewGazetteer(rows), nil
}

func readRows(r io.Reader) ([]schema.GazetteerEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var rows []schema.GazetteerEntry
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, schema.GazetteerEntry{
			Institution: field(row, "institution"),
			Latitude:    field(row, "latitude"),
			Longitude:   field(row, "longitude"),
			Country:     field(row, "country"),
			City:        field(row, "city"),
		})
	}
	return rows, nil
}
