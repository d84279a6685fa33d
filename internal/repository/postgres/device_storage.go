package postgres

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"
)

const createDeviceStorageTable = `
	CREATE TABLE IF NOT EXISTS device_storage (
		key        TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)
`

type deviceStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDeviceStorage creates a cache.Storage persisted in PostgreSQL
func NewDeviceStorage(db *sql.DB, logger *zap.Logger) *deviceStorage {
	return &deviceStorage{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the backing table if it does not exist
func (r *deviceStorage) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createDeviceStorageTable); err != nil {
		r.logger.Error("Failed to create device_storage table", zap.Error(err))
		return err
	}
	return nil
}

func (r *deviceStorage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `
		SELECT value
		FROM device_storage
		WHERE key = $1
	`

	var value []byte
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("Failed to get storage key", zap.String("key", key), zap.Error(err))
		return nil, false, err
	}

	return value, true, nil
}

func (r *deviceStorage) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO device_storage (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.ExecContext(ctx, query, key, value, time.Now())
	if err != nil {
		r.logger.Error("Failed to set storage key", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}

func (r *deviceStorage) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM device_storage
		WHERE key = $1
	`

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		r.logger.Error("Failed to delete storage key", zap.String("key", key), zap.Error(err))
		return err
	}

	return nil
}
