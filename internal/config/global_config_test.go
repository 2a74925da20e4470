package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, DefaultDbreeBaseURI, cfg.DbreeBaseURI)
	assert.Equal(t, DefaultStorageBackend, cfg.StoreBackend())
	assert.Equal(t, DefaultStoragePath, cfg.StorePath())
	assert.Equal(t, DefaultHTTPTimeoutSecs, cfg.HTTPClientConfig.TimeoutSecs)
	assert.Equal(t, DefaultHTTPMaxRedirects, cfg.HTTPClientConfig.MaxRedirects)
	assert.Empty(t, cfg.Discord.WebhookURI)
	assert.Empty(t, cfg.Queries)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.toml", zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_LegacyTOML(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
database_path = "db"
dbree_base_uri = "https://dbree.example"
queries = ["linux iso", "movies"]

[discord]
webhook_uri = "https://discord.com/api/webhooks/1/abc"
username = "dbree bot"

[ddos_guard]
ddg1 = "one"
ddg2 = "two"
ddgid = "three"
`)

	cfg, err := LoadGlobalConfig(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "https://dbree.example", cfg.DbreeBaseURI)
	assert.Equal(t, []string{"linux iso", "movies"}, cfg.Queries)
	assert.Equal(t, "https://discord.com/api/webhooks/1/abc", cfg.Discord.WebhookURI)
	assert.Equal(t, "dbree bot", cfg.Discord.Username)
	assert.Equal(t, "db", cfg.StorePath())
	assert.Equal(t, map[string]string{
		CookieDDG1:  "one",
		CookieDDG2:  "two",
		CookieDDGID: "three",
	}, cfg.AuthCookies())
	assert.Equal(t, DefaultHTTPTimeoutSecs, cfg.HTTPClientConfig.TimeoutSecs)

	require.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	path := writeConfigFile(t, "config.yaml", `
queries:
  - linux
ignored_keywords:
  - sample
cookies:
  session: abc
storage_config:
  backend: sqlite
  path: /tmp/seen.db
log_config:
  log_level: debug
http_client_config:
  timeout_secs: 10
`)

	cfg, err := LoadGlobalConfig(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"linux"}, cfg.Queries)
	assert.Equal(t, []string{"sample"}, cfg.IgnoredKeywords)
	assert.Equal(t, map[string]string{"session": "abc"}, cfg.AuthCookies())
	assert.Equal(t, StorageBackendSQLite, cfg.StoreBackend())
	assert.Equal(t, "/tmp/seen.db", cfg.StorePath())
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, 10, cfg.HTTPClientConfig.TimeoutSecs)
	assert.Equal(t, DefaultHTTPMaxRedirects, cfg.HTTPClientConfig.MaxRedirects)
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	path := writeConfigFile(t, "config.json", `{
		"queries": ["a", "b"],
		"discord": {"webhook_uri": "https://discord.com/api/webhooks/2/xyz"}
	}`)

	cfg, err := LoadGlobalConfig(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, cfg.Queries)
	assert.Equal(t, "https://discord.com/api/webhooks/2/xyz", cfg.Discord.WebhookURI)
	assert.Equal(t, DefaultDbreeBaseURI, cfg.DbreeBaseURI)
}

func TestLoadGlobalConfig_InvalidContent(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `queries = [`)

	_, err := LoadGlobalConfig(path, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config content")
}

func TestLoadGlobalConfig_EnvironmentOverrides(t *testing.T) {
	path := writeConfigFile(t, "config.toml", `
queries = ["from-file"]

[discord]
webhook_uri = "https://discord.com/api/webhooks/1/abc"
`)

	t.Setenv("DBREEWATCH_QUERIES", "one,two")
	t.Setenv("DBREEWATCH_WEBHOOK_URI", "https://discord.com/api/webhooks/9/env")
	t.Setenv("DBREEWATCH_STORAGE_BACKEND", "sqlite")
	t.Setenv("DBREEWATCH_DISCORD_USERNAME", "env bot")

	cfg, err := LoadGlobalConfig(path, zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "two"}, cfg.Queries)
	assert.Equal(t, "https://discord.com/api/webhooks/9/env", cfg.Discord.WebhookURI)
	assert.Equal(t, StorageBackendSQLite, cfg.StoreBackend())
	assert.Equal(t, "env bot", cfg.Discord.Username)
}

func TestGetConfigPath(t *testing.T) {
	flagPath := writeConfigFile(t, "flag.toml", "")
	envPath := writeConfigFile(t, "env.toml", "")

	t.Setenv(ConfigPathEnv, envPath)
	assert.Equal(t, flagPath, GetConfigPath(flagPath))
	assert.Equal(t, envPath, GetConfigPath(""))
	assert.Equal(t, envPath, GetConfigPath("/does/not/exist.toml"))
}

func TestGlobalConfig_AuthCookies(t *testing.T) {
	tests := []struct {
		name     string
		cfg      GlobalConfig
		expected map[string]string
	}{
		{
			name:     "nothing configured",
			cfg:      GlobalConfig{},
			expected: map[string]string{},
		},
		{
			name:     "partial legacy cookies",
			cfg:      GlobalConfig{DDoSGuard: DDoSGuardConfig{DDG2: "two"}},
			expected: map[string]string{CookieDDG2: "two"},
		},
		{
			name: "explicit mapping wins",
			cfg: GlobalConfig{
				Cookies:   map[string]string{"a": "b"},
				DDoSGuard: DDoSGuardConfig{DDG1: "one"},
			},
			expected: map[string]string{"a": "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.AuthCookies())
		})
	}
}

func TestGlobalConfig_StorePath(t *testing.T) {
	cfg := GlobalConfig{DatabasePath: "legacy"}
	assert.Equal(t, "legacy", cfg.StorePath())

	cfg.StorageConfig.Path = "explicit"
	assert.Equal(t, "explicit", cfg.StorePath())
}

func TestHTTPClientConfig_ToClientConfig(t *testing.T) {
	cfg := HTTPClientConfig{TimeoutSecs: 7, MaxRedirects: 2, UserAgent: "ua"}
	clientCfg := cfg.ToClientConfig()

	assert.Equal(t, "7s", clientCfg.Timeout.String())
	assert.Equal(t, 2, clientCfg.MaxRedirects)
	assert.True(t, clientCfg.FollowRedirects)
	assert.Equal(t, "ua", clientCfg.UserAgent)
}
