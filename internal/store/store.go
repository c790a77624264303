// Package store owns the in-memory entity collections. Every read and
// write goes through a View or Update closure so callers never observe a
// half-applied ledger mutation.
package store

import (
	"sync"

	"dompet/internal/core"
)

// Entity is anything the store can hold.
type Entity interface {
	EntityID() string
	EntityOwner() string
}

// Store holds the per-owner collections behind a single RW lock.
type Store struct {
	mu           sync.RWMutex
	wallets      *Collection[core.Wallet]
	transactions *Collection[core.Transaction]
	categories   *Collection[core.Category]
	budgets      *Collection[core.Budget]
	debts        *Collection[core.Debt]
	assets       *Collection[core.Asset]
}

func New() *Store {
	s := &Store{
		wallets:      newCollection[core.Wallet](nil),
		transactions: newCollection[core.Transaction](nil),
		budgets:      newCollection[core.Budget](nil),
		debts:        newCollection[core.Debt](nil),
		assets:       newCollection[core.Asset](nil),
	}
	// Default categories are shared: visible to every owner.
	s.categories = newCollection[core.Category](func(c core.Category) bool {
		return c.IsDefault
	})
	return s
}

// Tx grants access to the collections while the store lock is held. It is
// only valid inside the View/Update closure that produced it.
type Tx struct {
	s *Store
}

func (tx *Tx) Wallets() *Collection[core.Wallet]           { return tx.s.wallets }
func (tx *Tx) Transactions() *Collection[core.Transaction] { return tx.s.transactions }
func (tx *Tx) Categories() *Collection[core.Category]      { return tx.s.categories }
func (tx *Tx) Budgets() *Collection[core.Budget]           { return tx.s.budgets }
func (tx *Tx) Debts() *Collection[core.Debt]               { return tx.s.debts }
func (tx *Tx) Assets() *Collection[core.Asset]             { return tx.s.assets }

// View runs fn under the read lock.
func (s *Store) View(fn func(tx *Tx)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&Tx{s: s})
}

// Update runs fn under the write lock. fn is responsible for leaving the
// collections consistent when it returns an error; the ledger engine does
// its own compensation (reverse, rollback) inside a single Update.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Tx{s: s})
}

// SeedDefaultCategories inserts the shared category seed, skipping ids that
// are already present (restores include them).
func (s *Store) SeedDefaultCategories() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range core.DefaultCategories() {
		if _, ok := s.categories.items[c.ID]; !ok {
			s.categories.insert(c)
		}
	}
}

// Snapshot copies one owner's state for the persistence collaborator.
// Shared default categories are excluded; they are reseeded at boot.
func (s *Store) Snapshot(ownerID string) core.Snapshot {
	var snap core.Snapshot
	s.View(func(tx *Tx) {
		snap = core.Snapshot{
			Wallets:      tx.Wallets().ListByOwner(ownerID),
			Transactions: tx.Transactions().ListByOwner(ownerID),
			Categories:   tx.Categories().listOwned(ownerID),
			Budgets:      tx.Budgets().ListByOwner(ownerID),
			Debts:        tx.Debts().ListByOwner(ownerID),
			Assets:       tx.Assets().ListByOwner(ownerID),
		}
	})
	return snap
}

// Owners returns every owner id that has at least one record, in first
// encounter order.
func (s *Store) Owners() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(owner string) {
		if owner == "" {
			return
		}
		if _, ok := seen[owner]; ok {
			return
		}
		seen[owner] = struct{}{}
		out = append(out, owner)
	}
	s.View(func(tx *Tx) {
		for _, w := range tx.Wallets().All() {
			add(w.OwnerID)
		}
		for _, t := range tx.Transactions().All() {
			add(t.OwnerID)
		}
		for _, b := range tx.Budgets().All() {
			add(b.OwnerID)
		}
		for _, d := range tx.Debts().All() {
			add(d.OwnerID)
		}
		for _, a := range tx.Assets().All() {
			add(a.OwnerID)
		}
		for _, c := range tx.Categories().All() {
			add(c.OwnerID)
		}
	})
	return out
}

// Restore loads a persisted snapshot. Records carry their own owner ids;
// existing records with the same ids are overwritten.
func (s *Store) Restore(snap core.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range snap.Wallets {
		s.wallets.put(w)
	}
	for _, t := range snap.Transactions {
		s.transactions.put(t)
	}
	for _, c := range snap.Categories {
		s.categories.put(c)
	}
	for _, b := range snap.Budgets {
		s.budgets.put(b)
	}
	for _, d := range snap.Debts {
		s.debts.put(d)
	}
	for _, a := range snap.Assets {
		s.assets.put(a)
	}
}
