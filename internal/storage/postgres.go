package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"dompet/internal/core"
	applog "dompet/internal/log"
	"dompet/internal/metrics"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
    owner_id   TEXT NOT NULL,
    collection TEXT NOT NULL,
    document   JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (owner_id, collection)
)`

// PostgresStore keeps snapshots in postgres with the same document
// contract as the sqlite backend.
type PostgresStore struct {
	pool *pgxpool.Pool
	log  *applog.Logger
}

func NewPostgresStore(ctx context.Context, connString string, logger *applog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PostgresStore{pool: pool, log: logger.WithComponent(applog.ComponentStorage)}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, ownerID string, snap core.Snapshot) error {
	started := time.Now()
	defer func() {
		metrics.SnapshotFlushSeconds.Observe(time.Since(started).Seconds())
	}()

	docs, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	dbtx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer dbtx.Rollback(ctx)

	for collection, doc := range docs {
		_, err := dbtx.Exec(ctx, `
			INSERT INTO snapshots (owner_id, collection, document, updated_at)
			VALUES ($1, $2, $3, now())
			ON CONFLICT (owner_id, collection)
			DO UPDATE SET document = excluded.document, updated_at = now()`,
			ownerID, collection, doc)
		if err != nil {
			return fmt.Errorf("upsert %s: %w", collection, err)
		}
	}
	if err := dbtx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.log.DebugContext(ctx, "snapshot flushed",
		applog.FieldOwnerID, ownerID,
		applog.FieldOperation, applog.OpFlush)
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (map[string]core.Snapshot, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT owner_id, collection, document FROM snapshots`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	out := make(map[string]core.Snapshot)
	for rows.Next() {
		var owner, collection string
		var doc []byte
		if err := rows.Scan(&owner, &collection, &doc); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		snap := out[owner]
		if err := decodeInto(&snap, collection, doc); err != nil {
			return nil, err
		}
		out[owner] = snap
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}
