package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFile_Basic(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "llmfiletool.yaml",
		"work_base_dir: /srv/data\nallowed_roots:\n  - /srv/data\n  - /tmp/scratch\nblock_symlinks: true\nlog_level: debug\nmax_results: 25\n")

	cfg, err := LoadFile(p)
	require.NoError(t, err)

	assert.Equal(t, "/srv/data", cfg.GetWorkBaseDir())
	assert.Equal(t, []string{"/srv/data", "/tmp/scratch"}, cfg.AllowedRoots)
	assert.True(t, cfg.GetBlockSymlinks())
	assert.Equal(t, "debug", cfg.GetLogLevel())
	assert.Equal(t, 25, cfg.GetMaxResults())
}

func TestLoadFile_Defaults(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "llmfiletool.yaml", "work_base_dir: /srv/data\n")

	cfg, err := LoadFile(p)
	require.NoError(t, err)

	assert.False(t, cfg.GetBlockSymlinks())
	assert.Empty(t, cfg.GetLogLevel())
	assert.Zero(t, cfg.GetMaxResults())
	assert.Empty(t, cfg.AllowedRoots)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	p := writeTemp(t, dir, "llmfiletool.yaml", "work_base_dir: [unclosed\n")

	_, err := LoadFile(p)
	require.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadLocal_PrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "llmfiletool.yaml", "max_results: 1\n")
	writeTemp(t, dir, ".llmfiletool.yaml", "max_results: 7\n")

	cfg, err := LoadLocal(dir)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.GetMaxResults())
}

func TestLoadLocal_NoConfig(t *testing.T) {
	_, err := LoadLocal(t.TempDir())
	require.Error(t, err)
}

func TestLoadGlobal_XDGConfig(t *testing.T) {
	dir := t.TempDir()
	cfgDir := filepath.Join(dir, "llmfiletool")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yml"), []byte("max_results: 9\n"), 0o644))

	t.Setenv("XDG_CONFIG_HOME", dir)
	cfg, err := LoadGlobal()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.GetMaxResults())
}

func TestLoadGlobal_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "")
	_, err := LoadGlobal()
	require.Error(t, err)
}
