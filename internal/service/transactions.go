package service

import (
	"context"
	"fmt"

	"dompet/internal/core"
	applog "dompet/internal/log"
	"dompet/internal/smart"
	"dompet/internal/store"
)

// TransactionInput is a transaction draft from the transport layer.
type TransactionInput struct {
	WalletID    string
	ToWalletID  string
	Date        core.Date
	Description string
	Amount      core.Money
	Kind        core.TransactionKind
	Category    string
}

func (in TransactionInput) build(ownerID, id string) core.Transaction {
	return core.Transaction{
		ID:          id,
		OwnerID:     ownerID,
		WalletID:    in.WalletID,
		ToWalletID:  in.ToWalletID,
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Kind:        in.Kind,
		Category:    in.Category,
	}
}

// CreateTransaction applies a new transaction through the ledger engine.
func (t *Tracker) CreateTransaction(ctx context.Context, ownerID string, in TransactionInput) (core.Transaction, error) {
	txn := in.build(ownerID, t.newID())
	if err := t.engine.Apply(ctx, ownerID, txn); err != nil {
		return core.Transaction{}, err
	}
	return txn, nil
}

// EditTransaction atomically replaces an existing transaction's fields.
func (t *Tracker) EditTransaction(ctx context.Context, ownerID, id string, in TransactionInput) (core.Transaction, error) {
	next := in.build(ownerID, id)
	if err := t.engine.Edit(ctx, ownerID, id, next); err != nil {
		return core.Transaction{}, err
	}
	return next, nil
}

// DeleteTransaction reverses and removes a transaction.
func (t *Tracker) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	return t.engine.Delete(ctx, ownerID, id)
}

// Transactions lists the owner's transactions in insertion order.
func (t *Tracker) Transactions(ownerID string) []core.Transaction {
	var out []core.Transaction
	t.store.View(func(tx *store.Tx) {
		out = tx.Transactions().ListByOwner(ownerID)
	})
	return out
}

// SmartEntry parses free text into drafts and applies them as one atomic
// batch against the given wallet. The parse call resolves fully before
// anything touches the ledger, so cancelling it never leaves partial
// state.
func (t *Tracker) SmartEntry(ctx context.Context, ownerID, walletID, text string) ([]core.Transaction, error) {
	if t.parser == nil {
		return nil, fmt.Errorf("smart entry not configured: %w", core.ErrServiceUnavailable)
	}
	drafts, err := t.parser.Parse(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(drafts) == 0 {
		return nil, nil
	}

	txns := make([]core.Transaction, 0, len(drafts))
	for _, d := range drafts {
		txns = append(txns, core.Transaction{
			ID:          t.newID(),
			OwnerID:     ownerID,
			WalletID:    walletID,
			Date:        d.Date,
			Description: d.Description,
			Amount:      d.Amount,
			Kind:        d.Kind,
			Category:    t.resolveCategory(ownerID, d),
		})
	}
	if err := t.engine.BatchApply(ctx, ownerID, txns); err != nil {
		return nil, err
	}
	t.log.InfoContext(ctx, "smart entry applied",
		applog.FieldOwnerID, ownerID,
		applog.FieldBatchSize, len(txns))
	return txns, nil
}

// resolveCategory keeps the parser's category when it matches a visible
// one and falls back to the catch-all otherwise, so one odd label cannot
// sink a whole batch.
func (t *Tracker) resolveCategory(ownerID string, d smart.Draft) string {
	known := false
	t.store.View(func(tx *store.Tx) {
		for _, c := range tx.Categories().ListByOwner(ownerID) {
			if c.Name == d.Category {
				known = true
				return
			}
		}
	})
	if known {
		return d.Category
	}
	return "Lainnya"
}
