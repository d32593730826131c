// Package ioconsolidate implements the Consolidator interface: it
// reads the candidate extraction stream, reduces it to one record
// per publication with the pure merge core, and writes the
// consolidated table.
// This is an impure I/O package; the decision logic lives in
// pkg/consolidate.
package ioconsolidate

import (
	"context"
	"log/slog"
	"time"

	"github.com/bsldata/bslmap/internal/iogazetteer"
	"github.com/bsldata/bslmap/pkg/bslmap"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/bsldata/bslmap/pkg/consolidate"
	"github.com/bsldata/bslmap/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// consolidator implements the Consolidator interface.
type consolidator struct {
	cfg *config.Config
}

// New creates a new Consolidator.
func New(cfg *config.Config) bslmap.Consolidator {
	return &consolidator{cfg: cfg}
}

// Consolidate performs one full run: load inputs, group candidates
// by publication, pick the best candidate per group, resolve the
// institution against the gazetteer and write the table atomically.
func (c *consolidator) Consolidate(ctx context.Context) error {
	startTime := time.Now()
	in := c.cfg.Consolidate

	slog.Info("Starting consolidation",
		"input", in.InputPath, "output", in.OutputPath)

	records, malformed, err := readCandidates(in.InputPath)
	if err != nil {
		return err
	}
	gn.Info("Processing <em>%s</em> extraction records",
		humanize.Comma(int64(len(records))))

	gaz, err := iogazetteer.Load(in.GazetteerPath)
	if err != nil {
		return err
	}

	hints, err := readAffHints(in.CorpusPath)
	if err != nil {
		return err
	}

	groups := consolidate.Group(records)
	gn.Info("Merging <em>%s</em> unique publications",
		humanize.Comma(int64(groups.Len())))

	rows, failed, err := c.mergeGroups(ctx, groups, hints, gaz)
	if err != nil {
		return err
	}

	if err := writeTable(in.OutputPath, rows); err != nil {
		return err
	}

	duration := time.Since(startTime)
	slog.Info("Consolidation complete",
		"records", len(records),
		"malformed_lines", malformed,
		"skipped_ids", groups.Skipped(),
		"publications", groups.Len(),
		"rows", len(rows),
		"failed_groups", failed,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("Wrote <em>%s</em> consolidated records to <em>%s</em> in %s",
		humanize.Comma(int64(len(rows))), in.OutputPath,
		gnfmt.TimeString(duration.Seconds()))

	return nil
}

// mergeGroups reduces every publication group to one row. A failure
// in one group is logged and skipped; it never aborts the other
// groups. Cancellation aborts the whole run before anything is
// written, so a previous output file stays intact.
func (c *consolidator) mergeGroups(
	ctx context.Context,
	groups *consolidate.Groups,
	hints map[string]string,
	gaz *consolidate.Gazetteer,
) ([]schema.ConsolidatedRecord, int, error) {
	bar := newProgressBar(groups.Len(), "Merging extractions ")
	defer bar.Finish()

	rows := make([]schema.ConsolidatedRecord, 0, groups.Len())
	failed := 0
	for _, pmid := range groups.IDs() {
		if err := ctx.Err(); err != nil {
			slog.Warn("Consolidation cancelled", "error", err)
			return nil, failed, err
		}
		row, err := mergeGroup(pmid, groups.Records(pmid), hints[pmid], gaz)
		bar.Increment()
		if err != nil {
			failed++
			slog.Warn("Skipping publication group",
				"pmid", pmid, "error", err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, failed, nil
}

// mergeGroup isolates per-group failures: a panic while resolving
// one corrupt group must not lose the rest of the output.
func mergeGroup(
	pmid string,
	records []schema.CandidateRecord,
	affHint string,
	gaz *consolidate.Gazetteer,
) (row schema.ConsolidatedRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = GroupError(pmid, r)
		}
	}()
	row = consolidate.Consolidate(pmid, records, affHint, gaz)
	return row, nil
}
