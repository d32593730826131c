/*
Copyright © 2025 BSLMap Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/bsldata/bslmap/internal/ioconsolidate"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getConsolidateCmd returns the consolidate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getConsolidateCmd() *cobra.Command {
	var (
		inputPath     string
		outputPath    string
		gazetteerPath string
		corpusPath    string
	)

	consolidateCmd := &cobra.Command{
		Use:   "consolidate",
		Short: "Merge extraction records into one row per publication",
		Long: `Consolidate per-chunk extraction records into a single
authoritative record per publication.

This command:
  1. Reads the candidate extraction stream (JSONL, one record per
     text chunk)
  2. Groups records by the publication identifier of their chunk id
     (pmid:<digits>#chunk<n>); malformed ids are skipped
  3. Picks the highest-confidence record per publication (ties break
     toward earliest arrival)
  4. Resolves the institution name and geography against the
     gazetteer and the optional source corpus
  5. Writes the consolidated CSV atomically

Records the extraction model could not parse and missing optional
inputs are absorbed with logged warnings; only an unreadable input
stream fails the run. A run with zero valid records still writes a
well-formed, headered output file.

Examples:
  # Minimal run
  bslmap consolidate -i extractions.jsonl -o merged.csv

  # With geography enrichment and affiliation hints
  bslmap consolidate -i extractions.jsonl -o merged.csv \
    --gazetteer labs.csv --corpus corpus.jsonl`,
		Aliases: []string{"merge"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runConsolidate(
				inputPath, outputPath, gazetteerPath, corpusPath,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	consolidateCmd.Flags().StringVarP(
		&inputPath, "input", "i", "",
		"candidate extraction stream (JSONL)",
	)
	consolidateCmd.Flags().StringVarP(
		&outputPath, "output", "o", "",
		"consolidated table to write (CSV)",
	)
	consolidateCmd.Flags().StringVarP(
		&gazetteerPath, "gazetteer", "g", "",
		"reference gazetteer table (optional)",
	)
	consolidateCmd.Flags().StringVarP(
		&corpusPath, "corpus", "c", "",
		"source corpus for affiliation hints (optional)",
	)
	consolidateCmd.MarkFlagRequired("input")
	consolidateCmd.MarkFlagRequired("output")

	return consolidateCmd
}

func runConsolidate(
	inputPath string,
	outputPath string,
	gazetteerPath string,
	corpusPath string,
) error {
	cfg.Update([]config.Option{
		config.OptConsolidateInput(inputPath),
		config.OptConsolidateOutput(outputPath),
		config.OptConsolidateGazetteer(gazetteerPath),
		config.OptConsolidateCorpus(corpusPath),
	})

	consolidator := ioconsolidate.New(cfg)
	return consolidator.Consolidate(context.Background())
}
