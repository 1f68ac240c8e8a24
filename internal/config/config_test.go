package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "monthly", cfg.DefaultBilling)
	assert.Equal(t, "admin", cfg.AdminUser)
}

func TestLoadFile_OverridesAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_port: 9000\ndefault_billing: yearly\nsite_title: Test Digest\n"), 0o600))
	t.Setenv("DIGESTLY_SITE_TITLE", "From Env")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, "yearly", cfg.DefaultBilling)
	assert.Equal(t, "From Env", cfg.SiteTitle)
	assert.Equal(t, "digestly.db", cfg.DBPath)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
