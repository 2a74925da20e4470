package datastore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aleister1102/dbreewatch/internal/config"
	"github.com/aleister1102/dbreewatch/internal/models"

	"github.com/rs/zerolog"
)

// SeenStore is the durable set of file identifiers that have already been processed.
// Entries are never removed.
type SeenStore interface {
	// Contains reports whether id was marked before.
	Contains(ctx context.Context, id string) (bool, error)
	// Mark records id. Marking twice is a no-op.
	Mark(ctx context.Context, id string) error
	Close() error
}

// OpenSeenStore opens the backend named in cfg, creating parent directories as needed.
func OpenSeenStore(cfg config.StorageConfig, logger zerolog.Logger) (SeenStore, error) {
	path := cfg.Path
	if path == "" {
		path = config.DefaultStoragePath
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error().Err(err).Str("directory", dir).Msg("Failed to create seen-set directory")
			return nil, models.NewStorageError("open", "", fmt.Errorf("failed to create directory %s: %w", dir, err))
		}
	}

	switch strings.ToLower(cfg.Backend) {
	case "", config.StorageBackendLevelDB:
		return NewLevelDBSeenStore(path, logger)
	case config.StorageBackendSQLite:
		return NewSQLiteSeenStore(path, logger)
	default:
		return nil, models.NewStorageError("open", "", fmt.Errorf("unknown storage backend %q", cfg.Backend))
	}
}
