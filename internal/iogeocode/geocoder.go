// Package iogeocode implements the GazetteerBuilder interface: it
// geocodes a plain-text institutions list against a
// Nominatim-compatible service and writes the gazetteer table.
package iogeocode

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bsldata/bslmap/pkg/bslmap"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/bsldata/bslmap/pkg/schema"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

// gazetteerHeader is the column order of the gazetteer table.
var gazetteerHeader = []string{
	"institution", "latitude", "longitude", "country", "city",
}

// builder implements the GazetteerBuilder interface.
type builder struct {
	cfg    *config.Config
	client *http.Client
}

// New creates a new GazetteerBuilder.
func New(cfg *config.Config) bslmap.GazetteerBuilder {
	return &builder{
		cfg: cfg,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Build geocodes every institution from the input list. Rows already
// present in the output table are reused to avoid re-geocoding;
// lookups that fail are logged and skipped, never fatal. The table
// is written atomically.
func (b *builder) Build(ctx context.Context) error {
	startTime := time.Now()
	in := b.cfg.Geocode

	names, err := readInstitutions(in.InputPath)
	if err != nil {
		return err
	}
	existing := readExisting(in.OutputPath)

	gn.Info("Geocoding <em>%s</em> institutions (<em>%d</em> cached)",
		humanize.Comma(int64(len(names))), len(existing))

	rows := make([]*schema.GazetteerEntry, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.JobsNumber)

	for i, name := range names {
		if row, ok := existing[name]; ok {
			cached := row
			rows[i] = &cached
			continue
		}
		g.Go(func() error {
			entry, err := b.geocode(gctx, name)
			if err != nil {
				slog.Warn("Could not geocode institution",
					"institution", name, "error", err)
				return nil
			}
			rows[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var result []schema.GazetteerEntry
	for _, row := range rows {
		if row != nil {
			result = append(result, *row)
		}
	}

	if err := writeGazetteer(in.OutputPath, result); err != nil {
		return err
	}

	slog.Info("Gazetteer build complete",
		"institutions", len(names),
		"rows", len(result),
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)
	gn.Info("Wrote <em>%s</em> gazetteer rows to <em>%s</em>",
		humanize.Comma(int64(len(result))), in.OutputPath)
	return nil
}

// nominatimPlace is one search hit from the geocoding service.
type nominatimPlace struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// geocode resolves one institution name to coordinates and location
// details.
func (b *builder) geocode(
	ctx context.Context,
	name string,
) (*schema.GazetteerEntry, error) {
	q := url.Values{}
	q.Set("q", name)
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		b.cfg.Geocode.Endpoint+"?"+q.Encode(), nil,
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", b.cfg.Geocode.UserAgent)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, RequestError(name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, RequestError(
			name, fmt.Errorf("status %s", resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, RequestError(name, err)
	}

	var places []nominatimPlace
	enc := gnfmt.GNjson{}
	if err := enc.Decode(body, &places); err != nil {
		return nil, RequestError(name, err)
	}
	if len(places) == 0 {
		return nil, fmt.Errorf("no geocoding results")
	}

	place := places[0]
	city := place.Address.City
	if city == "" {
		city = place.Address.Town
	}
	if city == "" {
		city = place.Address.Village
	}

	return &schema.GazetteerEntry{
		Institution: name,
		Latitude:    place.Lat,
		Longitude:   place.Lon,
		Country:     strings.ToUpper(place.Address.CountryCode),
		City:        city,
	}, nil
}

// readInstitutions loads the plain-text list, one institution per
// line, blank lines ignored.
func readInstitutions(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, InputError(path, err)
	}
	defer f.Close()

	var names []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name != "" {
			names = append(names, name)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, InputError(path, err)
	}
	return names, nil
}

// readExisting loads rows from an earlier run keyed by institution.
// Any problem reading the file just means nothing is cached.
func readExisting(path string) map[string]schema.GazetteerEntry {
	existing := make(map[string]schema.GazetteerEntry)

	f, err := os.Open(path)
	if err != nil {
		return existing
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return existing
	}
	col := make(map[string]int, len(head))
	for i, name := range head {
		col[name] = i
	}
	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for {
		row, err := cr.Read()
		if err != nil {
			break
		}
		inst := get(row, "institution")
		if inst == "" {
			continue
		}
		existing[inst] = schema.GazetteerEntry{
			Institution: inst,
			Latitude:    get(row, "latitude"),
			Longitude:   get(row, "longitude"),
			Country:     get(row, "country"),
			City:        get(row, "city"),
		}
	}
	return existing
}

// writeGazetteer writes the table atomically.
func writeGazetteer(path string, rows []schema.GazetteerEntry) error {
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
	if err := w.Write(gazetteerHeader); err != nil {
		return OutputError(path, err)
	}
	for _, row := range rows {
		rec := []string{
			row.Institution, row.Latitude, row.Longitude,
			row.Country, row.City,
		}
		if err := w.Write(rec); err != nil {
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
