package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, validator.New().Struct(cfg))
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "latin1", cfg.Data.CohortEncoding)
	assert.Equal(t, " (ansökningar)", cfg.Data.EnrichmentSuffix)
}

func TestLoadFromYAMLFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := []byte("server:\n  port: 9090\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "data", cfg.Data.Dir)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := chdirTemp(t)

	yaml := []byte("logging:\n  level: chatty\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestPathHelpers(t *testing.T) {
	cfg := Default()
	cfg.Data.Dir = "/srv/yh"
	cfg.Data.ResultsFile = "resultat.xlsx"

	assert.Equal(t, filepath.Join("/srv/yh", "resultat.xlsx"), cfg.ResultsPath())
	assert.Equal(t, filepath.Join("/srv/yh", cfg.Data.CohortFile), cfg.CohortPath())
	assert.Equal(t, filepath.Join("/srv/yh", cfg.Data.BoundaryFile), cfg.BoundaryPath())
}

// chdirTemp moves the test into an empty directory so Load never picks up a
// stray config.yaml from the repository.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}
