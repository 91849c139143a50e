package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("CHIMERA_API_URL", "")
	return home
}

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, filepath.Join(home, ".chimera", "token"), cfg.TokenPath)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := isolateHome(t)

	dir := filepath.Join(home, ".chimera")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	contents := "version = 1\n\n[api]\nurl = \"https://chimera.internal:9000\"\n\n[auth]\ntoken_path = \"" +
		filepath.ToSlash(filepath.Join(dir, "alt-token")) + "\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(contents), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://chimera.internal:9000", cfg.APIURL)
	assert.Equal(t, filepath.Join(dir, "alt-token"), cfg.TokenPath)
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	home := isolateHome(t)

	dir := filepath.Join(home, ".chimera")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"),
		[]byte("[api]\nurl = \"https://from-file\"\n"), 0o600))

	t.Setenv("CHIMERA_API_URL", "https://from-env")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://from-env", cfg.APIURL)
}

func TestWriteDefaultCreatesConfigOnce(t *testing.T) {
	home := isolateHome(t)

	path, err := WriteDefault()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".chimera", "config.toml"), path)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}

	// A second call must not clobber user edits.
	require.NoError(t, os.WriteFile(path, []byte("[api]\nurl = \"https://edited\"\n"), 0o600))

	again, err := WriteDefault()
	require.NoError(t, err)
	assert.Equal(t, path, again)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "https://edited")
}

func TestWriteDefaultThenLoadRoundTrips(t *testing.T) {
	home := isolateHome(t)

	_, err := WriteDefault()
	require.NoError(t, err)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, filepath.Join(home, ".chimera", "token"), cfg.TokenPath)
}
