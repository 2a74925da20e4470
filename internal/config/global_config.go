package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/dbreewatch/internal/common"
	"github.com/aleister1102/dbreewatch/internal/urlhandler"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	DatabasePath     string            `json:"database_path,omitempty" yaml:"database_path,omitempty" toml:"database_path,omitempty" env:"DBREEWATCH_DATABASE_PATH"`
	StorageConfig    StorageConfig     `json:"storage_config,omitempty" yaml:"storage_config,omitempty" toml:"storage_config,omitempty"`
	DbreeBaseURI     string            `json:"dbree_base_uri,omitempty" yaml:"dbree_base_uri,omitempty" toml:"dbree_base_uri,omitempty" env:"DBREEWATCH_BASE_URI" validate:"required,httpurl"`
	Cookies          map[string]string `json:"cookies,omitempty" yaml:"cookies,omitempty" toml:"cookies,omitempty"`
	DDoSGuard        DDoSGuardConfig   `json:"ddos_guard,omitempty" yaml:"ddos_guard,omitempty" toml:"ddos_guard,omitempty"`
	Discord          DiscordConfig     `json:"discord,omitempty" yaml:"discord,omitempty" toml:"discord,omitempty"`
	Queries          []string          `json:"queries,omitempty" yaml:"queries,omitempty" toml:"queries,omitempty" env:"DBREEWATCH_QUERIES" env-separator:"," validate:"required,min=1,dive,required"`
	IgnoredKeywords  []string          `json:"ignored_keywords,omitempty" yaml:"ignored_keywords,omitempty" toml:"ignored_keywords,omitempty" env:"DBREEWATCH_IGNORED_KEYWORDS" env-separator:"," validate:"dive,required"`
	HTTPClientConfig HTTPClientConfig  `json:"http_client_config,omitempty" yaml:"http_client_config,omitempty" toml:"http_client_config,omitempty"`
	LogConfig        LogConfig         `json:"log_config,omitempty" yaml:"log_config,omitempty" toml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		StorageConfig:    NewDefaultStorageConfig(),
		DbreeBaseURI:     DefaultDbreeBaseURI,
		Cookies:          map[string]string{},
		Discord:          NewDefaultDiscordConfig(),
		Queries:          []string{},
		IgnoredKeywords:  []string{},
		HTTPClientConfig: NewDefaultHTTPClientConfig(),
		LogConfig:        NewDefaultLogConfig(),
	}
}

// AuthCookies returns the cookies to attach to index site requests.
// An explicit cookie mapping wins; otherwise the legacy ddos_guard fields are used.
func (c *GlobalConfig) AuthCookies() map[string]string {
	if len(c.Cookies) > 0 {
		cookies := make(map[string]string, len(c.Cookies))
		for name, value := range c.Cookies {
			cookies[name] = value
		}
		return cookies
	}
	return c.DDoSGuard.Cookies()
}

// StorePath returns the effective seen-set location.
func (c *GlobalConfig) StorePath() string {
	if c.StorageConfig.Path != "" {
		return c.StorageConfig.Path
	}
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return DefaultStoragePath
}

// StoreBackend returns the configured backend or the default one.
func (c *GlobalConfig) StoreBackend() string {
	if c.StorageConfig.Backend == "" {
		return DefaultStorageBackend
	}
	return strings.ToLower(c.StorageConfig.Backend)
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// The parser is picked from the file extension: .toml, .yaml/.yml, or JSON otherwise.
// A .env file in the working directory and DBREEWATCH_* environment variables
// are applied on top of the file.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	moduleLogger := logger.With().Str("module", "ConfigLoader").Logger()
	cfg := NewDefaultGlobalConfig()

	if err := loadDotEnv(".env"); err != nil {
		return nil, common.WrapError(err, "failed to load .env file")
	}

	if providedPath != "" && !fileExists(providedPath) {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		moduleLogger.Debug().Msg("No config file found, using defaults and environment")
	} else {
		moduleLogger.Debug().Str("path", filePath).Msg("Loading config file")
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, common.WrapError(err, "failed to load config file content")
		}
		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, common.WrapError(err, "failed to parse config content")
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, common.WrapError(err, "failed to apply environment overrides")
	}

	// Invalid values are left untouched for ValidateConfig to report
	if normalized, err := urlhandler.NormalizeBaseURL(cfg.DbreeBaseURI); err == nil {
		cfg.DbreeBaseURI = normalized
	}

	return cfg, nil
}

// loadDotEnv loads variables from path when it exists. Variables already set are kept.
func loadDotEnv(path string) error {
	if !fileExists(path) {
		return nil
	}
	return godotenv.Load(path)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".toml":
		return parseTOMLConfig(data, filePath, cfg)
	case ".yaml", ".yml":
		return parseYAMLConfig(data, filePath, cfg)
	default:
		return parseJSONConfig(data, filePath, cfg)
	}
}

// parseTOMLConfig parses TOML configuration
func parseTOMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := toml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal TOML from '%s': %w", filePath, err)
	}
	return nil
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
