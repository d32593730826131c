package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/bsldata/bslmap/internal/iologger"
	"github.com/bsldata/bslmap/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}

	err := iologger.Init(logDir, cfg)
	require.NoError(t, err)

	slog.Info("test entry", "key", "value")

	logPath := filepath.Join(logDir, "bslmap.log")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"test entry"`,
		"json format quotes the message")
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestInitFileAppends(t *testing.T) {
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "text",
		Level:       "info",
		Destination: "file",
	}

	require.NoError(t, iologger.Init(logDir, cfg))
	slog.Info("first")
	require.NoError(t, iologger.Init(logDir, cfg))
	slog.Info("second")

	data, err := os.ReadFile(filepath.Join(logDir, "bslmap.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first",
		"re-initialization must not truncate the log")
	assert.Contains(t, string(data), "second")
}

func TestInitLevel(t *testing.T) {
	logDir := t.TempDir()
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "error",
		Destination: "file",
	}

	require.NoError(t, iologger.Init(logDir, cfg))
	slog.Info("suppressed")
	slog.Error("reported")

	data, err := os.ReadFile(filepath.Join(logDir, "bslmap.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "reported")
}

func TestInitStreamDestinations(t *testing.T) {
	// stdout and stderr never touch the file system.
	for _, dest := range []string{"stdout", "stderr", "bogus"} {
		cfg := config.LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: dest,
		}
		assert.NoError(t, iologger.Init(t.TempDir(), cfg), dest)
	}
}

func TestInitBadLogDir(t *testing.T) {
	cfg := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}

	err := iologger.Init("/no/such/dir/anywhere", cfg)
	assert.Error(t, err,
		"an unwritable log directory should be reported")
}
