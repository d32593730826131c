package ioconsolidate

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/bsldata/bslmap/pkg/schema"
)

// writeTable writes the consolidated table atomically: the rows go
// to a temporary file in the destination directory which is renamed
// over the target on success, so an interrupted run never leaves a
// partial output file. The canonical header is written even with
// zero rows.
func writeTable(path string, rows []schema.ConsolidatedRecord) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
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

	w := csv.NewWriter(tmp)
	if err := w.Write(schema.ConsolidatedHeader()); err != nil {
		return OutputError(path, err)
	}
	for i := range rows {
		if err := w.Write(rows[i].Row()); err != nil {
			return OutputError(path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
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
