// Package ioserve implements the LabService interface: a read-only
// HTTP API over the GeoJSON lab dataset with simple property
// filters.
package ioserve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/bsldata/bslmap/pkg/bslmap"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/bsldata/bslmap/pkg/geojson"
	"github.com/gin-gonic/gin"
	"github.com/gnames/gn"
	"github.com/google/uuid"
)

// service implements the LabService interface.
type service struct {
	cfg   *config.Config
	cache *datasetCache
}

// New creates a new LabService for the dataset at cfg.Serve.DataPath.
func New(cfg *config.Config) bslmap.LabService {
	return &service{
		cfg:   cfg,
		cache: newDatasetCache(cfg.Serve.DataPath),
	}
}

// Run loads the dataset, starts the HTTP server and blocks until the
// context is cancelled or the server fails.
func (s *service) Run(ctx context.Context) error {
	if err := s.cache.Load(); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	s.routes(router)

	addr := fmt.Sprintf("%s:%d", s.cfg.Serve.Host, s.cfg.Serve.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	gn.Info("Serving lab dataset on <em>http://%s</em>", addr)
	slog.Info("Query service started", "addr", addr,
		"dataset", s.cfg.Serve.DataPath)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 5*time.Second,
		)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return StartError(addr, err)
	}
}

func (s *service) routes(router *gin.Engine) {
	router.GET("/health", s.health)

	api := router.Group("/api")
	api.GET("/labs", s.labs)
	api.GET("/labs/:id", s.lab)
	api.GET("/pathogens", s.pathogens)
	api.GET("/research-types", s.researchTypes)
}

func (s *service) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// labs returns the dataset filtered by optional bsl_level, country,
// pathogen and research_type query parameters.
func (s *service) labs(c *gin.Context) {
	bslLevel := c.Query("bsl_level")
	country := c.Query("country")
	pathogen := c.Query("pathogen")
	researchType := c.Query("research_type")

	fc := s.cache.Collection()
	filtered := make([]geojson.Feature, 0, len(fc.Features))
	for _, feat := range fc.Features {
		props := feat.Properties
		if bslLevel != "" && props.BSLLevel != bslLevel {
			continue
		}
		if country != "" &&
			!strings.EqualFold(props.Country, country) {
			continue
		}
		if pathogen != "" &&
			!containsFold(props.Pathogens, pathogen) {
			continue
		}
		if researchType != "" &&
			!containsFold(props.ResearchTypes, researchType) {
			continue
		}
		filtered = append(filtered, feat)
	}

	c.JSON(http.StatusOK, geojson.NewFeatureCollection(filtered))
}

// lab returns a single feature by its stable id.
func (s *service) lab(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest,
			gin.H{"error": "lab id must be a UUID"})
		return
	}

	fc := s.cache.Collection()
	for _, feat := range fc.Features {
		if feat.ID == id {
			c.JSON(http.StatusOK, feat)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "lab not found"})
}

func (s *service) pathogens(c *gin.Context) {
	c.JSON(http.StatusOK, s.collect(
		func(p geojson.LabProperties) []string { return p.Pathogens },
	))
}

func (s *service) researchTypes(c *gin.Context) {
	c.JSON(http.StatusOK, s.collect(
		func(p geojson.LabProperties) []string { return p.ResearchTypes },
	))
}

// collect returns the sorted union of a multi-valued property across
// all features.
func (s *service) collect(
	field func(geojson.LabProperties) []string,
) []string {
	seen := make(map[string]bool)
	res := []string{}
	for _, feat := range s.cache.Collection().Features {
		for _, v := range field(feat.Properties) {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			res = append(res, v)
		}
	}
	sort.Strings(res)
	return res
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(v, want) {
			return true
		}
	}
	return false
}
