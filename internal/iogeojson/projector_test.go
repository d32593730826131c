package iogeojson_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bsldata/bslmap/internal/iogeojson"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/bsldata/bslmap/pkg/geojson"
	"github.com/gnames/gnfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func readCollection(t *testing.T, path string) geojson.FeatureCollection {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc geojson.FeatureCollection
	enc := gnfmt.GNjson{}
	require.NoError(t, enc.Decode(data, &fc))
	return fc
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()

	labs := `institution,latitude,longitude,country,city
Pasteur Institute,48.84,2.31,FR,Paris
No Coordinates Lab,,,US,
`
	evidence := `pmid,lab_name,institution,country,city,latitude,longitude,bsl_level_inferred,pathogens,research_types,ppp_or_gof,confidence,source_pmid
100,P3 lab,Pasteur Institute,FR,Paris,48.84,2.31,BSL-3,Yersinia pestis,diagnostics,false,0.8,100
200,P4 lab,Pasteur Institute,FR,Paris,48.84,2.31,BSL-4,Ebola virus; Yersinia pestis,virology,true,0.9,200
`

	labsPath := writeFile(t, dir, "labs.csv", labs)
	evidencePath := writeFile(t, dir, "merged.csv", evidence)
	outPath := filepath.Join(dir, "labs.geojson")

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptProjectLabs(labsPath),
		config.OptProjectEvidence(evidencePath),
		config.OptProjectOutput(outPath),
	})

	p := iogeojson.New(cfg)
	require.NoError(t, p.Build(context.Background()))

	fc := readCollection(t, outPath)
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1,
		"the lab without coordinates is skipped")

	feat := fc.Features[0]
	assert.Equal(t, "Feature", feat.Type)
	assert.NotEmpty(t, feat.ID)
	assert.InDelta(t, 2.31, feat.Geometry.Coordinates[0], 1e-9)
	assert.InDelta(t, 48.84, feat.Geometry.Coordinates[1], 1e-9)

	props := feat.Properties
	assert.Equal(t, "Pasteur Institute", props.Institution)
	assert.Equal(t, "BSL-4", props.BSLLevel)
	assert.Equal(t, 2, props.EvidenceCount)
	assert.Equal(t, []string{"100", "200"}, props.EvidencePMIDs)
	assert.Equal(t, []string{"Ebola virus", "Yersinia pestis"},
		props.Pathogens,
		"multi-valued CSV fields are split and merged")
}

func TestBuildEmptyEvidence(t *testing.T) {
	dir := t.TempDir()

	labs := `institution,latitude,longitude,country,city
Quiet Lab,1.0,2.0,SE,Solna
`
	labsPath := writeFile(t, dir, "labs.csv", labs)
	evidencePath := writeFile(t, dir, "merged.csv",
		"pmid,lab_name,institution\n")
	outPath := filepath.Join(dir, "labs.geojson")

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptProjectLabs(labsPath),
		config.OptProjectEvidence(evidencePath),
		config.OptProjectOutput(outPath),
	})

	p := iogeojson.New(cfg)
	require.NoError(t, p.Build(context.Background()))

	fc := readCollection(t, outPath)
	require.Len(t, fc.Features, 1)
	props := fc.Features[0].Properties
	assert.Equal(t, 0, props.EvidenceCount)
	assert.Equal(t, "Unknown", props.BSLLevel)
}

func TestBuildMissingInputs(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "labs.geojson")

	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptProjectLabs(filepath.Join(dir, "nope.csv")),
		config.OptProjectEvidence(filepath.Join(dir, "nope2.csv")),
		config.OptProjectOutput(outPath),
	})

	p := iogeojson.New(cfg)
	err := p.Build(context.Background())
	assert.Error(t, err, "projection inputs are required")

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr))
}
