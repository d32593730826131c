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
	"os/signal"
	"syscall"

	"github.com/bsldata/bslmap/internal/ioserve"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getServeCmd() *cobra.Command {
	var (
		dataPath string
		host     string
		port     int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lab dataset over a read-only HTTP API",
		Long: `Start the read-only query service over the GeoJSON lab
dataset.

Endpoints:
  GET /health               liveness check
  GET /api/labs             dataset, filterable by bsl_level,
                            country, pathogen, research_type
  GET /api/labs/:id         single lab by stable id
  GET /api/pathogens        unique pathogens across all labs
  GET /api/research-types   unique research types across all labs

A missing dataset file is not fatal: the service starts with an
empty collection so it can come up before the first projection run.

Examples:
  bslmap serve --data labs.geojson
  bslmap serve --data labs.geojson --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runServe(cmd, dataPath, host, port)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().StringVarP(
		&dataPath, "data", "d", "",
		"GeoJSON dataset to serve",
	)
	serveCmd.Flags().StringVar(
		&host, "host", "",
		"interface to bind (default from config)",
	)
	serveCmd.Flags().IntVarP(
		&port, "port", "p", 0,
		"TCP port to listen on (default from config)",
	)
	serveCmd.MarkFlagRequired("data")

	return serveCmd
}

func runServe(
	cmd *cobra.Command,
	dataPath string,
	host string,
	port int,
) error {
	opts := []config.Option{
		config.OptServeData(dataPath),
	}
	if cmd.Flags().Changed("host") {
		opts = append(opts, config.OptServeHost(host))
	}
	if cmd.Flags().Changed("port") {
		opts = append(opts, config.OptServePort(port))
	}
	cfg.Update(opts)

	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	service := ioserve.New(cfg)
	return service.Run(ctx)
}
