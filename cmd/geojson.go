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

	"github.com/bsldata/bslmap/internal/iogeojson"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getGeoJSONCmd returns the geojson command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getGeoJSONCmd() *cobra.Command {
	var (
		labsPath     string
		evidencePath string
		outputPath   string
	)

	geojsonCmd := &cobra.Command{
		Use:   "geojson",
		Short: "Project the consolidated table into GeoJSON features",
		Long: `Build the geographic dataset served by the query API.

This command:
  1. Reads the geocoded labs table (gazetteer)
  2. Reads the consolidated evidence table
  3. Joins them by institution name and emits one Point feature per
     lab, with evidence counts, supporting publication ids, and
     aggregated pathogens/research types
  4. Writes the GeoJSON FeatureCollection atomically

Labs without parseable coordinates are skipped with a warning.

Examples:
  bslmap geojson --labs labs.csv --evidence merged.csv -o labs.geojson`,
		Aliases: []string{"project"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGeoJSON(labsPath, evidencePath, outputPath)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	geojsonCmd.Flags().StringVarP(
		&labsPath, "labs", "l", "",
		"geocoded labs table (CSV)",
	)
	geojsonCmd.Flags().StringVarP(
		&evidencePath, "evidence", "e", "",
		"consolidated evidence table (CSV)",
	)
	geojsonCmd.Flags().StringVarP(
		&outputPath, "output", "o", "",
		"GeoJSON dataset to write",
	)
	geojsonCmd.MarkFlagRequired("labs")
	geojsonCmd.MarkFlagRequired("evidence")
	geojsonCmd.MarkFlagRequired("output")

	return geojsonCmd
}

func runGeoJSON(
	labsPath string,
	evidencePath string,
	outputPath string,
) error {
	cfg.Update([]config.Option{
		config.OptProjectLabs(labsPath),
		config.OptProjectEvidence(evidencePath),
		config.OptProjectOutput(outputPath),
	})

	projector := iogeojson.New(cfg)
	return projector.Build(context.Background())
}
