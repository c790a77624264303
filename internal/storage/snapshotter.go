// Package storage implements the persistence collaborator: after each
// successful mutation the tracker hands it one owner's full collections
// and it writes them as JSON documents, one per collection. The storage
// medium is interchangeable (sqlite or postgres); the core never depends
// on which one is configured, and a nil Snapshotter is a valid memory-only
// configuration.
package storage

import (
	"context"

	"dompet/internal/core"
)

// Collection names used as document keys.
const (
	ColWallets      = "wallets"
	ColTransactions = "transactions"
	ColCategories   = "categories"
	ColBudgets      = "budgets"
	ColDebts        = "debts"
	ColAssets       = "assets"
)

// Snapshotter persists and restores per-owner snapshots.
type Snapshotter interface {
	// Save replaces the stored documents for one owner.
	Save(ctx context.Context, ownerID string, snap core.Snapshot) error
	// Load returns every stored snapshot keyed by owner.
	Load(ctx context.Context) (map[string]core.Snapshot, error)
	Close() error
}
