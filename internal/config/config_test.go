package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: "9090"
  mode: release

database:
  type: sqlite
  path: test.db

monitor:
  check_interval: "0 8 * * *"

billing:
  auto_invoice: true

assistant:
  api_url: "https://example.com"
  model: "test-model"
  timeout: "10s"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "0 8 * * *", cfg.Monitor.CheckInterval)
	assert.True(t, cfg.Billing.AutoInvoice)
	assert.Equal(t, "test-model", cfg.Assistant.Model)
}

func TestLoadConfigEnvKeyOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assistant:\n  api_key: from-file\n"), 0o644))

	t.Setenv("ASSISTANT_API_KEY", "from-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Assistant.APIKey)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
