package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingExplicitFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.True(t, cfg.IsDev())
	assert.Contains(t, cfg.DSN, "/smartnotes")
}

func TestLoadDefaultsWhenDefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SMARTNOTES_DSN", "env-user:pw@tcp(envhost:3306)/envdb")

	cfg, err := Load(DefaultConfigPath)
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "env-user:pw@tcp(envhost:3306)/envdb", cfg.DSN)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
dsn: "user:pass@tcp(db:3306)/smartnotes?parseTime=true"
jwt_secret: s3cret
allowed_origins:
  - smartnotes.dev
  - "*.smartnotes.dev"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Len(t, cfg.AllowedOrigins, 2)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "port: 8080\nnot_a_field: true\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsBadPort(t *testing.T) {
	path := writeConfig(t, "port: 99999\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsDevBypassInProduction(t *testing.T) {
	path := writeConfig(t, "env: production\nauth:\n  dev_bypass: true\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadBuildsDSNFromDatabaseBlock(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  port: 3307
  user: notes
  password: pw
  name: smartnotes
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Contains(t, cfg.DSN, "notes:pw@tcp(db.internal:3307)/smartnotes")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SMARTNOTES_DSN", "env-user:pw@tcp(envhost:3306)/envdb")
	t.Setenv("SMARTNOTES_ENV", "production")
	t.Setenv("SMARTNOTES_JWT_SECRET", "from-env")

	path := writeConfig(t, "port: 8080\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-user:pw@tcp(envhost:3306)/envdb", cfg.DSN)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, "from-env", cfg.JWTSecret)
}

func TestOpenAIKeyEnvCreatesProvider(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	path := writeConfig(t, "port: 8080\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.AI.Providers, 1)
	assert.True(t, cfg.AI.Providers[0].Enabled)
	assert.Equal(t, "sk-test", cfg.AI.Providers[0].APIKey)
}
