package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetGeoJSONCmd_Exists verifies getGeoJSONCmd returns a valid
// command.
func TestGetGeoJSONCmd_Exists(t *testing.T) {
	cmd := getGeoJSONCmd()
	require.NotNil(t, cmd, "GeoJSON command should exist")
	assert.Equal(t, "geojson", cmd.Use,
		"Command name should be geojson")
}

// TestGetGeoJSONCmd_Alias verifies the project alias.
func TestGetGeoJSONCmd_Alias(t *testing.T) {
	cmd := getGeoJSONCmd()
	assert.Contains(t, cmd.Aliases, "project",
		"Command should be callable as project")
}

// TestGetGeoJSONCmd_Descriptions verifies descriptions.
func TestGetGeoJSONCmd_Descriptions(t *testing.T) {
	cmd := getGeoJSONCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "GeoJSON",
		"Short description should mention GeoJSON")

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "FeatureCollection",
		"Long description should mention the output shape")
	assert.Contains(t, cmd.Long, "institution",
		"Long description should explain the join key")
}

// TestGetGeoJSONCmd_Flags verifies the flag set.
func TestGetGeoJSONCmd_Flags(t *testing.T) {
	cmd := getGeoJSONCmd()

	tests := []struct {
		name      string
		shorthand string
	}{
		{"labs", "l"},
		{"evidence", "e"},
		{"output", "o"},
	}

	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, "--%s flag should exist", tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand,
			"Short form of --%s", tt.name)
	}
}

// TestGetGeoJSONCmd_RequiredFlags verifies all inputs are required.
func TestGetGeoJSONCmd_RequiredFlags(t *testing.T) {
	cmd := getGeoJSONCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err,
		"Running without required flags should fail")
	assert.Contains(t, err.Error(), "labs")
	assert.Contains(t, err.Error(), "evidence")
	assert.Contains(t, err.Error(), "output")
}

// TestGetGeoJSONCmd_HasRunE verifies run function is set.
func TestGetGeoJSONCmd_HasRunE(t *testing.T) {
	cmd := getGeoJSONCmd()
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}
