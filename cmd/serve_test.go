package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetServeCmd_Exists verifies getServeCmd returns a valid
// command.
func TestGetServeCmd_Exists(t *testing.T) {
	cmd := getServeCmd()
	require.NotNil(t, cmd, "Serve command should exist")
	assert.Equal(t, "serve", cmd.Use,
		"Command name should be serve")
}

// TestGetServeCmd_Descriptions verifies descriptions.
func TestGetServeCmd_Descriptions(t *testing.T) {
	cmd := getServeCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "HTTP",
		"Short description should mention HTTP")

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "/api/labs",
		"Long description should list the labs endpoint")
	assert.Contains(t, cmd.Long, "/health",
		"Long description should list the health endpoint")
	assert.Contains(t, cmd.Long, "missing dataset",
		"Long description should explain the empty start")
}

// TestGetServeCmd_Flags verifies the flag set.
func TestGetServeCmd_Flags(t *testing.T) {
	cmd := getServeCmd()

	dataFlag := cmd.Flags().Lookup("data")
	require.NotNil(t, dataFlag, "--data flag should exist")
	assert.Equal(t, "d", dataFlag.Shorthand,
		"Short form should be -d")

	portFlag := cmd.Flags().Lookup("port")
	require.NotNil(t, portFlag, "--port flag should exist")
	assert.Equal(t, "p", portFlag.Shorthand,
		"Short form should be -p")

	hostFlag := cmd.Flags().Lookup("host")
	require.NotNil(t, hostFlag, "--host flag should exist")
	assert.Empty(t, hostFlag.Shorthand,
		"--host has no short form")
}

// TestGetServeCmd_RequiredFlags verifies only data is required.
func TestGetServeCmd_RequiredFlags(t *testing.T) {
	cmd := getServeCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err,
		"Running without required flags should fail")
	assert.Contains(t, err.Error(), "data")
	assert.NotContains(t, err.Error(), "port",
		"Port should be optional")
	assert.NotContains(t, err.Error(), "host",
		"Host should be optional")
}

// TestGetServeCmd_HasRunE verifies run function is set.
func TestGetServeCmd_HasRunE(t *testing.T) {
	cmd := getServeCmd()
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}
