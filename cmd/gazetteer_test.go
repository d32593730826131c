package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetGazetteerCmd_Exists verifies getGazetteerCmd returns a
// valid command.
func TestGetGazetteerCmd_Exists(t *testing.T) {
	cmd := getGazetteerCmd()
	require.NotNil(t, cmd, "Gazetteer command should exist")
	assert.Equal(t, "gazetteer", cmd.Use,
		"Command name should be gazetteer")
}

// TestGetGazetteerCmd_Descriptions verifies descriptions.
func TestGetGazetteerCmd_Descriptions(t *testing.T) {
	cmd := getGazetteerCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "Geocode",
		"Short description should mention geocoding")

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "Nominatim",
		"Long description should mention the geocoding service")
	assert.Contains(t, cmd.Long, "re-running only geocodes new",
		"Long description should explain row reuse")
}

// TestGetGazetteerCmd_Flags verifies the flag set.
func TestGetGazetteerCmd_Flags(t *testing.T) {
	cmd := getGazetteerCmd()

	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"jobs", "j"},
	}

	for _, tt := range tests {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, "--%s flag should exist", tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand,
			"Short form of --%s", tt.name)
	}
}

// TestGetGazetteerCmd_RequiredFlags verifies input and output are
// required while jobs stays optional.
func TestGetGazetteerCmd_RequiredFlags(t *testing.T) {
	cmd := getGazetteerCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err,
		"Running without required flags should fail")
	assert.Contains(t, err.Error(), "input")
	assert.Contains(t, err.Error(), "output")
	assert.NotContains(t, err.Error(), "jobs",
		"Jobs should be optional")
}

// TestGetGazetteerCmd_HasRunE verifies run function is set.
func TestGetGazetteerCmd_HasRunE(t *testing.T) {
	cmd := getGazetteerCmd()
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}
