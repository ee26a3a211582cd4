package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestFileLoader_LoadGlobal(t *testing.T) {
	t.Run("absent global config is not an error", func(t *testing.T) {
		loader := NewFileLoaderAt(filepath.Join(t.TempDir(), "config.toml"))

		config, err := loader.LoadGlobal(context.Background())
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("loads existing config", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, globalPath, `
[conversion]
template = "professional"
separate = true
workers = 4

[server]
host = "0.0.0.0"
port = 9090

[metadata]
author = "Ada"
keywords = ["go", "slides"]
`)

		config, err := NewFileLoaderAt(globalPath).LoadGlobal(context.Background())
		require.NoError(t, err)
		require.NotNil(t, config)

		assert.Equal(t, "professional", config.Conversion.Template)
		assert.True(t, config.Conversion.Separate)
		assert.Equal(t, 4, config.Conversion.Workers)
		assert.Equal(t, "0.0.0.0", config.Server.Host)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "Ada", config.Metadata.Author)
		assert.Equal(t, []string{"go", "slides"}, config.Metadata.Keywords)
	})

	t.Run("fails with invalid TOML", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, globalPath, "[server\nhost = \"localhost\"\n")

		_, err := NewFileLoaderAt(globalPath).LoadGlobal(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing TOML")
	})

	t.Run("fails with invalid config values", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, globalPath, "[server]\nport = -1\n")

		_, err := NewFileLoaderAt(globalPath).LoadGlobal(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("rejects unknown template", func(t *testing.T) {
		globalPath := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, globalPath, "[conversion]\ntemplate = \"neon\"\n")

		_, err := NewFileLoaderAt(globalPath).LoadGlobal(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown template")
	})
}

func TestFileLoader_LoadLocal(t *testing.T) {
	t.Run("loads TOML", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "mdpptx.toml"), "[watcher]\ninterval_ms = 150\n")

		config, err := NewFileLoaderAt("unused").LoadLocal(context.Background(), dir)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, 150, config.Watcher.IntervalMs)
	})

	t.Run("loads YAML", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "mdpptx.yaml"), `
conversion:
  template: minimal
  fallback_titles: true
logging:
  format: json
`)

		config, err := NewFileLoaderAt("unused").LoadLocal(context.Background(), dir)
		require.NoError(t, err)
		require.NotNil(t, config)
		assert.Equal(t, "minimal", config.Conversion.Template)
		assert.True(t, config.Conversion.FallbackTitles)
		assert.Equal(t, "json", config.Logging.Format)
	})

	t.Run("TOML wins over YAML", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "mdpptx.toml"), "[conversion]\ntemplate = \"modern\"\n")
		writeFile(t, filepath.Join(dir, "mdpptx.yaml"), "conversion:\n  template: minimal\n")

		loader := NewFileLoaderAt("unused")
		config, err := loader.LoadLocal(context.Background(), dir)
		require.NoError(t, err)
		assert.Equal(t, "modern", config.Conversion.Template)
		assert.Equal(t, filepath.Join(dir, "mdpptx.toml"), loader.GetLocalPath(dir))
	})

	t.Run("returns nil for non-existent local config", func(t *testing.T) {
		config, err := NewFileLoaderAt("unused").LoadLocal(context.Background(), t.TempDir())
		require.NoError(t, err)
		assert.Nil(t, config)
	})

	t.Run("fails with invalid YAML", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "mdpptx.yml"), "conversion: [unterminated\n")

		_, err := NewFileLoaderAt("unused").LoadLocal(context.Background(), dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing YAML")
	})
}

func TestFileLoader_LoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "MDPPTX_AUTHOR=Grace\nMDPPTX_COMPANY=Navy\n")

	t.Setenv(EnvAuthor, "")
	require.NoError(t, os.Unsetenv(EnvAuthor))
	t.Setenv(EnvCompany, "Preset")

	loader := NewFileLoaderAt("unused")
	require.NoError(t, loader.LoadEnvFile(context.Background(), dir))

	assert.Equal(t, "Grace", os.Getenv(EnvAuthor))
	assert.Equal(t, "Preset", os.Getenv(EnvCompany), "existing variables are kept")

	require.NoError(t, loader.LoadEnvFile(context.Background(), t.TempDir()), "missing .env is ignored")
}

func TestFileLoader_CreateDefaults(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.toml")
	loader := NewFileLoaderAt(configPath)

	require.NoError(t, loader.CreateDefaults(context.Background(), configPath))

	config, err := loader.LoadGlobal(context.Background())
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "default", config.Conversion.Template)
	assert.Equal(t, 200, config.Watcher.IntervalMs)
}

func TestFileLoader_GetPaths(t *testing.T) {
	loader := NewFileLoader()

	globalPath := loader.GetGlobalPath()
	assert.Contains(t, globalPath, ".config")
	assert.Contains(t, globalPath, "mdpptx")
	assert.Contains(t, globalPath, "config.toml")

	assert.Equal(t, filepath.Join("/some/project", "mdpptx.toml"), loader.GetLocalPath("/some/project"))
}
