// Package iofs prepares the application's file system layout:
// config, cache and log directories plus a generated default
// config.yaml.
package iofs

import (
	"fmt"
	"os"

	"github.com/bsldata/bslmap/pkg/config"
	"gopkg.in/yaml.v3"
)

const configHeader = `# BSLMap configuration.
#
# Generated with default values. Every field can also be set with a
# BSLMAP_* environment variable (nested fields use underscores,
# e.g. serve.port -> BSLMAP_SERVE_PORT) or overridden by CLI flags.

`

// EnsureDirs creates the config, cache and log directories when they
// do not exist yet.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes a documented default config.yaml on first
// run. Existing files are never overwritten.
func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	data, err := yaml.Marshal(config.New())
	if err != nil {
		return CopyFileError(configPath, err)
	}

	content := fmt.Sprintf("%s%s", configHeader, data)
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}
