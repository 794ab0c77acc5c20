package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "Microsoft.CodeAnalysis.Host.IWorkspaceService", cfg.Markers.HostService)
	assert.Len(t, cfg.Markers.Excluded, 2)
}

func TestLoad_MarkerOverride(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "testdata", "hostsvc", "partcheck.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/hostsvc/host.WorkspaceService", cfg.Markers.HostService)
	assert.Empty(t, cfg.Markers.Excluded)
	assert.Equal(t, DefaultExtensionPaths, cfg.ExtensionPaths, "unset keys keep their defaults")
	assert.True(t, cfg.Verbose)
}

func TestLoad_FromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: false\nfilter: Acme.\n"), 0o644))
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "Acme.", cfg.Filter)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, body := range map[string]string{
		"unknown.yaml": "verbosity: high\n",
		"markers.yaml": "markers:\n  hostService: \"\"\n",
		"workers.yaml": "workers: -2\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening config")
}
