package config

// StorageConfig defines where the seen-set lives and which engine backs it
type StorageConfig struct {
	Backend string `json:"backend,omitempty" yaml:"backend,omitempty" toml:"backend,omitempty" env:"DBREEWATCH_STORAGE_BACKEND" validate:"omitempty,storagebackend"`
	Path    string `json:"path,omitempty" yaml:"path,omitempty" toml:"path,omitempty" env:"DBREEWATCH_STORAGE_PATH"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		Backend: DefaultStorageBackend,
		Path:    "",
	}
}
