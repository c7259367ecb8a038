package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cruxlines/cruxlines/internal/rank"
)

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, rank.MaxIterations, cfg.Iterations)
	assert.Equal(t, Default().CacheDir, cfg.CacheDir)
	assert.Empty(t, cfg.ExcludeEcosystem)
}

func TestLoadAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	kdlContent := "cache_dir \"/tmp/cruxlines-cache\"\n" +
		"iterations 8\n" +
		"exclude \"rust\" \"php\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cruxlines.kdl"), []byte(kdlContent), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/cruxlines-cache", cfg.CacheDir)
	assert.Equal(t, 8, cfg.Iterations)
	assert.ElementsMatch(t, []string{"rust", "php"}, cfg.ExcludeEcosystem)
}

func TestLoadIgnoresNonPositiveIterations(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cruxlines.kdl"), []byte("iterations 0\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, rank.MaxIterations, cfg.Iterations)
}

func TestLoadReturnsErrorOnMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cruxlines.kdl"), []byte("cache_dir \"unterminated\n"), 0o644))

	cfg, err := Load(dir)
	assert.Error(t, err)
	assert.Equal(t, rank.MaxIterations, cfg.Iterations)
}
