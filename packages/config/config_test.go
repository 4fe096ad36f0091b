package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "replay", cfg.Driver)
	assert.Equal(t, "console", cfg.Output)
	assert.Zero(t, cfg.Rate)
	assert.False(t, cfg.GetNoColor())
	assert.False(t, cfg.GetVerbose())
	assert.False(t, cfg.GetStrictOrder())
	assert.Equal(t, 30*time.Second, cfg.Settle())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := `
driver: ws://localhost:9222
output: json
rate: 25
noColor: true
settleMillis: 5000
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path, dir)
	require.NoError(t, err)

	assert.Equal(t, "ws://localhost:9222", cfg.Driver)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, 25.0, cfg.Rate)
	assert.True(t, cfg.GetNoColor())
	assert.Equal(t, 5*time.Second, cfg.Settle())
}

func TestFindsDotfileInDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".domspec.yaml"),
		[]byte("driver: ws://dot:1\n"), 0o644))

	cfg, err := Load("", dir)
	require.NoError(t, err)
	assert.Equal(t, "ws://dot:1", cfg.Driver)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".domspec.yaml"),
		[]byte("driver: ws://file:1\noutput: json\n"), 0o644))

	t.Setenv("DOMSPEC_DRIVER", "ws://env:2")
	t.Setenv("DOMSPEC_STRICT_ORDER", "true")

	cfg, err := Load("", dir)
	require.NoError(t, err)

	assert.Equal(t, "ws://env:2", cfg.Driver)
	assert.Equal(t, "json", cfg.Output, "untouched file values survive")
	assert.True(t, cfg.GetStrictOrder())
}

func TestLoadBadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: [unclosed"), 0o644))

	_, err := Load(path, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(filepath.Join(dir, "absent.yaml"), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}
