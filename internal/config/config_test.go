package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	path := writeConfigFile(t, `
api:
  environment: "test"
  base_url: "localhost:9999"
  port: "9999"
  jwt_signing_key: "test-key"
  allowed_cors_domains:
    - "http://localhost:3000"

gin:
  mode: "test"

postgres:
  host: "db.internal"
  port: "5432"
  user: "campbase"
  password: "secret"
  db_name: "campbase"
`)

	conf, err := Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "9999", conf.API.Port)
	assert.Equal(t, "test-key", conf.API.JWTSigningKey)
	assert.Equal(t, []string{"http://localhost:3000"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, "test", conf.Gin.Mode)
	assert.Equal(t, "db.internal", conf.Postgres.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
