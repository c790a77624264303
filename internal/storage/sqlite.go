package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dompet/internal/core"
	applog "dompet/internal/log"
	"dompet/internal/metrics"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps snapshots in a local sqlite database, one row per
// (owner, collection).
type SQLiteStore struct {
	db  *sql.DB
	log *applog.Logger
}

func NewSQLiteStore(dbPath string, logger *applog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, log: logger.WithComponent(applog.ComponentStorage)}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save upserts the owner's collection documents in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, ownerID string, snap core.Snapshot) error {
	started := time.Now()
	defer func() {
		metrics.SnapshotFlushSeconds.Observe(time.Since(started).Seconds())
	}()

	docs, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}

	dbtx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer dbtx.Rollback()

	for collection, doc := range docs {
		_, err := dbtx.ExecContext(ctx, `
			INSERT INTO snapshots (owner_id, collection, document, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (owner_id, collection)
			DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
			ownerID, collection, string(doc), time.Now().UTC().Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("upsert %s: %w", collection, err)
		}
	}
	if err := dbtx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.log.DebugContext(ctx, "snapshot flushed",
		applog.FieldOwnerID, ownerID,
		applog.FieldOperation, applog.OpFlush)
	return nil
}

// Load reads every stored snapshot.
func (s *SQLiteStore) Load(ctx context.Context) (map[string]core.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT owner_id, collection, document FROM snapshots`)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	out := make(map[string]core.Snapshot)
	for rows.Next() {
		var owner, collection, doc string
		if err := rows.Scan(&owner, &collection, &doc); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		snap := out[owner]
		if err := decodeInto(&snap, collection, []byte(doc)); err != nil {
			return nil, err
		}
		out[owner] = snap
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}
