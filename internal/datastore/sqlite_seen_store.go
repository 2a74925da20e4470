package datastore

import (
	"context"
	"database/sql"

	"github.com/aleister1102/dbreewatch/internal/models"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteSeenStore keeps seen identifiers in a single-table SQLite file.
type SQLiteSeenStore struct {
	db     *sql.DB
	path   string
	logger zerolog.Logger
}

// NewSQLiteSeenStore opens the database file at path and makes sure the schema exists.
func NewSQLiteSeenStore(path string, logger zerolog.Logger) (*SQLiteSeenStore, error) {
	moduleLogger := logger.With().Str("module", "SeenStore").Str("backend", "sqlite").Logger()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		moduleLogger.Error().Err(err).Str("db_path", path).Msg("Failed to open seen-set database")
		return nil, models.NewStorageError("open", "", err)
	}
	// One writer; the file is shared with nobody else
	db.SetMaxOpenConns(1)

	store := &SQLiteSeenStore{db: db, path: path, logger: moduleLogger}
	if err := store.InitSchema(context.Background()); err != nil {
		_ = db.Close()
		moduleLogger.Error().Err(err).Msg("Failed to initialize seen-set schema")
		return nil, err
	}

	moduleLogger.Debug().Str("db_path", path).Msg("Seen-set opened")
	return store, nil
}

// InitSchema creates the seen table if it doesn't already exist.
func (s *SQLiteSeenStore) InitSchema(ctx context.Context) error {
	statements := []string{
		`PRAGMA busy_timeout = 5000`,
		`CREATE TABLE IF NOT EXISTS seen (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL DEFAULT x''
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return models.NewStorageError("init schema", "", err)
		}
	}
	return nil
}

func (s *SQLiteSeenStore) Contains(ctx context.Context, id string) (bool, error) {
	key := models.SeenKey(id)
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM seen WHERE key = ?`, key).Scan(&one)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, models.NewStorageError("contains", key, err)
	}
	return true, nil
}

func (s *SQLiteSeenStore) Mark(ctx context.Context, id string) error {
	key := models.SeenKey(id)
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO seen (key) VALUES (?)`, key); err != nil {
		return models.NewStorageError("mark", key, err)
	}
	return nil
}

func (s *SQLiteSeenStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error().Err(err).Str("db_path", s.path).Msg("Failed to close seen-set database")
		return models.NewStorageError("close", "", err)
	}
	s.logger.Debug().Str("db_path", s.path).Msg("Seen-set closed")
	return nil
}
