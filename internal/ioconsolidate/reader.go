package ioconsolidate

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/bsldata/bslmap/pkg/consolidate"
	"github.com/bsldata/bslmap/pkg/schema"
	"github.com/gnames/gnfmt"
)

// maxLineSize bounds a single JSONL line; chunks with evidence spans
// stay well under this. Oversized lines count as malformed records:
// skipped with a warning, never fatal.
const maxLineSize = 4 * 1024 * 1024

// readLine reads one newline-terminated line, tolerating lines larger
// than the reader's buffer. A line over maxLineSize is consumed to its
// end and reported oversized instead of returned.
func readLine(r *bufio.Reader) ([]byte, bool, error) {
	var line []byte
	var tooLong bool
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > maxLineSize {
				line = nil
				tooLong = true
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == nil {
			line = bytes.TrimRight(line, "\r\n")
		}
		return line, tooLong, err
	}
}

// readCandidates loads the full candidate extraction stream into
// memory. Unreadable files are fatal; individual undecodable or
// oversized lines are skipped with a warning and counted.
func readCandidates(path string) ([]schema.CandidateRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, InputError(path, err)
	}
	defer f.Close()

	enc := gnfmt.GNjson{}
	var records []schema.CandidateRecord
	var malformed int

	r := bufio.NewReaderSize(f, 64*1024)
	line := 0
	for {
		raw, tooLong, err := readLine(r)
		if errors.Is(err, io.EOF) && len(raw) == 0 && !tooLong {
			break
		}
		line++
		switch {
		case tooLong:
			malformed++
			slog.Warn("Skipping oversized candidate line",
				"path", path, "line", line, "limit", maxLineSize)
		case len(raw) > 0:
			var rec schema.CandidateRecord
			if decErr := enc.Decode(raw, &rec); decErr != nil {
				malformed++
				slog.Warn("Skipping malformed candidate line",
					"path", path, "line", line, "error", decErr)
			} else {
				records = append(records, rec)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, malformed, InputError(path, err)
		}
	}

	return records, malformed, nil
}

// readAffHints loads the optional source corpus and maps each
// publication identifier to its affiliation hint. Chunks of the same
// publication share the hint, so the first non-empty one per
// publication wins. A missing corpus degrades to an empty map.
func readAffHints(path string) (map[string]string, error) {
	hints := make(map[string]string)
	if path == "" {
		return hints, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("Corpus file is missing, affiliation hints unavailable",
				"path", path)
			return hints, nil
		}
		return nil, CorpusError(path, err)
	}
	defer f.Close()

	enc := gnfmt.GNjson{}
	r := bufio.NewReaderSize(f, 64*1024)
	for {
		raw, tooLong, err := readLine(r)
		if errors.Is(err, io.EOF) && len(raw) == 0 && !tooLong {
			break
		}
		switch {
		case tooLong:
			slog.Warn("Skipping oversized corpus line",
				"path", path, "limit", maxLineSize)
		case len(raw) > 0:
			var doc schema.SourceDocument
			if decErr := enc.Decode(raw, &doc); decErr != nil {
				slog.Warn("Skipping malformed corpus line",
					"path", path, "error", decErr)
				break
			}
			pmid, ok := consolidate.PublicationID(doc.DocChunkID)
			if !ok || doc.AffHint == "" {
				break
			}
			if _, seen := hints[pmid]; !seen {
				hints[pmid] = doc.AffHint
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, CorpusError(path, err)
		}
	}

	return hints, nil
}
