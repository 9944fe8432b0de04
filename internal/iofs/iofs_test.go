package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/ppcollect/pkg/config"
	"github.com/gnames/ppcollect/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(home string) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})
	return cfg
}

// TestEnsureDirs verifies all required directories are created
// with 0755 permissions.
func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureDirs(testConfig(tmpDir)))

	dirs := []string{
		filepath.Join(tmpDir, ".config", "ppcollect"),
		filepath.Join(tmpDir, ".cache", "ppcollect"),
		filepath.Join(tmpDir, ".local", "share", "ppcollect", "logs"),
		filepath.Join(tmpDir, ".local", "share", "ppcollect", "data"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v)
	}

	// second call is a no-op
	require.NoError(t, EnsureDirs(testConfig(tmpDir)))
}

// TestEnsureDirs_CustomDataDir verifies data.dir from config is
// created instead of the default one.
func TestEnsureDirs_CustomDataDir(t *testing.T) {
	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "srv", "powerplants")
	cfg := testConfig(tmpDir)
	cfg.Update([]config.Option{config.OptDataDir(dataDir)})

	require.NoError(t, EnsureDirs(cfg))
	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(config.DataDir(tmpDir))
	assert.True(t, os.IsNotExist(err))
}

// TestTouchDir_FileInTheWay verifies a file at the directory path
// produces an error.
func TestTouchDir_FileInTheWay(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	err := touchDir(filepath.Join(path, "sub"))
	assert.Error(t, err)
}

// TestEnsureFiles verifies default files are written once and never
// overwritten.
func TestEnsureFiles(t *testing.T) {
	tests := []struct {
		msg     string
		fn      func(string) error
		path    func(string) string
		content string
	}{
		{"config", EnsureConfigFile, config.ConfigFilePath,
			templates.ConfigYAML},
		{"sources", EnsureSourcesFile, config.SourcesFilePath,
			templates.SourcesYAML},
	}

	for _, v := range tests {
		tmpDir := t.TempDir()
		require.NoError(t, EnsureDirs(testConfig(tmpDir)), v.msg)
		require.NoError(t, v.fn(tmpDir), v.msg)

		path := v.path(tmpDir)
		content, err := os.ReadFile(path)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.content, string(content), v.msg)

		info, err := os.Stat(path)
		require.NoError(t, err, v.msg)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm(), v.msg)

		custom := "# custom\n"
		require.NoError(t, os.WriteFile(path, []byte(custom), 0644), v.msg)
		require.NoError(t, v.fn(tmpDir), v.msg)
		content, err = os.ReadFile(path)
		require.NoError(t, err, v.msg)
		assert.Equal(t, custom, string(content), v.msg)
	}
}

// TestTemplates verifies embedded templates document the settings.
func TestTemplates(t *testing.T) {
	for _, v := range []string{"data:", "collect:", "database:", "log:",
		"rescaled_hydros", "backend"} {
		assert.Contains(t, templates.ConfigYAML, v)
	}
	assert.Contains(t, templates.SourcesYAML, "datasets:")
	assert.Contains(t, templates.SourcesYAML, "index_column")
}

// TestEnsureConfigFile_NoDirs verifies config.yaml can be written before
// EnsureDirs runs.
func TestEnsureConfigFile_NoDirs(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, EnsureConfigFile(tmpDir))
	_, err := os.Stat(config.ConfigFilePath(tmpDir))
	assert.NoError(t, err)
}
