package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "gherk.yml"))
	require.NoError(t, err)
	assert.Equal(t, "features", cfg.FeaturesDir)
	assert.Empty(t, cfg.DefaultTags)
}

func TestLoad_ReadsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gherk.yml")
	require.NoError(t, os.WriteFile(path, []byte(`features_dir: specs
default_tags: "@smoke and not @regression"
lint:
  allow_empty_features: true
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "specs", cfg.FeaturesDir)
	assert.Equal(t, "@smoke and not @regression", cfg.DefaultTags)
	assert.True(t, cfg.Lint.AllowEmptyFeatures)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gherk.yml")
	require.NoError(t, os.WriteFile(path, []byte("default_tags: \"@smoke\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "features", cfg.FeaturesDir)
	assert.Equal(t, "@smoke", cfg.DefaultTags)
}

func TestLoad_RejectsBadTagExpression(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gherk.yml")
	require.NoError(t, os.WriteFile(path, []byte("default_tags: \"smoke and\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_tags")
}

func TestLoad_RejectsEmptyFeaturesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gherk.yml")
	require.NoError(t, os.WriteFile(path, []byte("features_dir: \"\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gherk.yml")
	require.NoError(t, os.WriteFile(path, []byte("features_dir: [unclosed\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDBPath(t *testing.T) {
	cfg := &Config{FeaturesDir: "features"}
	assert.Equal(t, filepath.Join("features", "gherk.db"), cfg.DBPath())
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gherk.yml")
	cfg := &Config{FeaturesDir: "features", DefaultTags: "@smoke"}
	require.NoError(t, cfg.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
