package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultDataFile, cfg.Dataset.Path)
	assert.Equal(t, os.TempDir(), cfg.Export.Dir)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
dataset:
  path: /data/acquisitions.csv
export:
  dir: /data/exports
server:
  port: 9090
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/acquisitions.csv", cfg.Dataset.Path)
	assert.Equal(t, "/data/exports", cfg.Export.Dir)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chTempDir(t)

	yaml := `
dataset:
  path: /data/from-file.csv
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CLTV_DATASET_PATH", "/data/from-env.csv")
	t.Setenv("CLTV_SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/from-env.csv", cfg.Dataset.Path)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestResolveDataset_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("customer_id\n"), 0644))

	cfg := &Config{Dataset: DatasetConfig{Path: "unused.csv"}}

	resolved, err := cfg.ResolveDataset(path)
	require.NoError(t, err)
	assert.Equal(t, path, resolved)
}

func TestResolveDataset_DefaultMissing(t *testing.T) {
	cfg := &Config{Dataset: DatasetConfig{Path: filepath.Join(t.TempDir(), "missing.csv")}}

	_, err := cfg.ResolveDataset("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLTV_DATASET_PATH")
}

func TestResolveDataset_ExplicitMissing(t *testing.T) {
	cfg := &Config{}

	_, err := cfg.ResolveDataset(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	require.Error(t, InitLogger(LogConfig{Level: "not-a-level", Format: "json"}))
}
