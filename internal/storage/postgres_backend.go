package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/NishantRana07/Krishi-Mitra/internal/config"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_collections (
    collection_key TEXT PRIMARY KEY,
    payload        JSONB NOT NULL,
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresBackend stores each collection blob as a row in kv_collections.
// Same whole-blob semantics as the other backends; JSONB is only used for
// payload validity, never queried into.
type PostgresBackend struct {
	db *sqlx.DB
}

func NewPostgresBackend(cfg config.PostgresConfig) (*PostgresBackend, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.DBname)

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.Host, cfg.Port, cfg.Username, cfg.DBname)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if _, err := db.Exec(kvSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure kv_collections table: %w", err)
	}

	return &PostgresBackend{db: db}, nil
}

func (p *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := p.db.GetContext(ctx, &payload,
		"SELECT payload FROM kv_collections WHERE collection_key = $1", key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payload, nil
}

func (p *PostgresBackend) Set(ctx context.Context, key string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
        INSERT INTO kv_collections (collection_key, payload, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (collection_key)
        DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		key, value)
	return err
}

func (p *PostgresBackend) Delete(ctx context.Context, key string) error {
	_, err := p.db.ExecContext(ctx,
		"DELETE FROM kv_collections WHERE collection_key = $1", key)
	return err
}

func (p *PostgresBackend) Close() error {
	return p.db.Close()
}
