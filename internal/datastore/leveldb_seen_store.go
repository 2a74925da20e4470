package datastore

import (
	"context"

	"github.com/aleister1102/dbreewatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

// LevelDBSeenStore keeps seen identifiers as empty-valued "seen:<id>" keys in a LevelDB directory.
type LevelDBSeenStore struct {
	db     *leveldb.DB
	path   string
	logger zerolog.Logger
}

var syncWrites = &opt.WriteOptions{Sync: true}

// NewLevelDBSeenStore opens (or creates) the database directory at path.
// A corrupted manifest is recovered once before giving up.
func NewLevelDBSeenStore(path string, logger zerolog.Logger) (*LevelDBSeenStore, error) {
	moduleLogger := logger.With().Str("module", "SeenStore").Str("backend", "leveldb").Logger()

	db, err := leveldb.OpenFile(path, nil)
	if lerrors.IsCorrupted(err) {
		moduleLogger.Warn().Err(err).Str("path", path).Msg("Seen-set is corrupted, attempting recovery")
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		moduleLogger.Error().Err(err).Str("path", path).Msg("Failed to open seen-set")
		return nil, models.NewStorageError("open", "", err)
	}

	moduleLogger.Debug().Str("path", path).Msg("Seen-set opened")
	return &LevelDBSeenStore{db: db, path: path, logger: moduleLogger}, nil
}

func (s *LevelDBSeenStore) Contains(ctx context.Context, id string) (bool, error) {
	key := models.SeenKey(id)
	if err := ctx.Err(); err != nil {
		return false, models.NewStorageError("contains", key, err)
	}
	found, err := s.db.Has([]byte(key), nil)
	if err != nil {
		return false, models.NewStorageError("contains", key, err)
	}
	return found, nil
}

func (s *LevelDBSeenStore) Mark(ctx context.Context, id string) error {
	key := models.SeenKey(id)
	if err := ctx.Err(); err != nil {
		return models.NewStorageError("mark", key, err)
	}
	if err := s.db.Put([]byte(key), []byte{}, syncWrites); err != nil {
		return models.NewStorageError("mark", key, err)
	}
	return nil
}

func (s *LevelDBSeenStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("Failed to close seen-set")
		return models.NewStorageError("close", "", err)
	}
	s.logger.Debug().Str("path", s.path).Msg("Seen-set closed")
	return nil
}
