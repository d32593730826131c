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

	"github.com/bsldata/bslmap/internal/iogeocode"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getGazetteerCmd returns the gazetteer command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getGazetteerCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
		jobs       int
	)

	gazetteerCmd := &cobra.Command{
		Use:   "gazetteer",
		Short: "Geocode an institutions list into the gazetteer table",
		Long: `Build or refresh the reference gazetteer from a plain-text
institutions list (one name per line).

Each institution is geocoded with the configured Nominatim-compatible
service. Rows already present in the output table are reused, so
re-running only geocodes new institutions. Lookups that fail are
logged and skipped.

Examples:
  bslmap gazetteer -i institutions.txt -o labs.csv
  bslmap gazetteer -i institutions.txt -o labs.csv --jobs 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGazetteer(cmd, inputPath, outputPath, jobs)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	gazetteerCmd.Flags().StringVarP(
		&inputPath, "input", "i", "",
		"institutions list, one name per line",
	)
	gazetteerCmd.Flags().StringVarP(
		&outputPath, "output", "o", "",
		"gazetteer table to write (CSV)",
	)
	gazetteerCmd.Flags().IntVarP(
		&jobs, "jobs", "j", 0,
		"concurrent geocoding requests (default from config)",
	)
	gazetteerCmd.MarkFlagRequired("input")
	gazetteerCmd.MarkFlagRequired("output")

	return gazetteerCmd
}

func runGazetteer(
	cmd *cobra.Command,
	inputPath string,
	outputPath string,
	jobs int,
) error {
	opts := []config.Option{
		config.OptGeocodeInput(inputPath),
		config.OptGeocodeOutput(outputPath),
	}
	if cmd.Flags().Changed("jobs") {
		opts = append(opts, config.OptJobsNumber(jobs))
	}
	cfg.Update(opts)

	builder := iogeocode.New(cfg)
	return builder.Build(context.Background())
}
