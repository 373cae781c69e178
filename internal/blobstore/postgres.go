package blobstore

import (
	"context"
	"database/sql"
	"fmt"
)

// Postgres stores collection blobs in a two-column table. The schema carries no
// version field; the payload is the whole serialized collection.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a Postgres-backed store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the blob table if it does not exist. Safe to call on
// every startup.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS clinic_blobs (
			collection_key TEXT PRIMARY KEY,
			payload        BYTEA NOT NULL,
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("blobstore: ensure schema: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT payload FROM clinic_blobs WHERE collection_key = $1`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("blobstore: postgres get %s: %w", key, err)
	}
	return payload, nil
}

func (p *Postgres) Save(ctx context.Context, key string, data []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO clinic_blobs (collection_key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (collection_key) DO UPDATE SET
		    payload = EXCLUDED.payload, updated_at = now()`,
		key, data)
	if err != nil {
		return fmt.Errorf("blobstore: postgres put %s: %w", key, err)
	}
	return nil
}
