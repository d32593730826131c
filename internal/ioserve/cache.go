package ioserve

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/bsldata/bslmap/pkg/geojson"
	"github.com/gnames/gnfmt"
)

// datasetCache owns the GeoJSON dataset for the lifetime of the
// process. It is loaded explicitly (no lazy first-access
// initialization) and can be reloaded to pick up a rebuilt dataset
// without restarting the service.
type datasetCache struct {
	path string

	mu sync.RWMutex
	fc geojson.FeatureCollection
}

func newDatasetCache(path string) *datasetCache {
	return &datasetCache{
		path: path,
		fc:   geojson.NewFeatureCollection(nil),
	}
}

// Load reads the dataset from disk. A missing file is not fatal: the
// service starts with an empty collection and a warning, so a
// freshly deployed instance can come up before the first projection
// run.
func (c *datasetCache) Load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("Dataset file is missing, serving empty collection",
				"path", c.path)
			return nil
		}
		return DatasetError(c.path, err)
	}

	var fc geojson.FeatureCollection
	enc := gnfmt.GNjson{}
	if err := enc.Decode(data, &fc); err != nil {
		return DatasetError(c.path, err)
	}
	if fc.Features == nil {
		fc = geojson.NewFeatureCollection(nil)
	}

	c.mu.Lock()
	c.fc = fc
	c.mu.Unlock()

	slog.Info("Loaded dataset", "path", c.path,
		"features", len(fc.Features))
	return nil
}

// Reload is the explicit invalidation contract: it re-reads the
// dataset and swaps it in atomically. On failure the previous
// dataset stays in place.
func (c *datasetCache) Reload() error {
	return c.Load()
}

// Collection returns the current dataset. The features slice is
// shared and must be treated as read-only.
func (c *datasetCache) Collection() geojson.FeatureCollection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fc
}
