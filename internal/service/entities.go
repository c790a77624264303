package service

import (
	"context"
	"fmt"

	"dompet/internal/core"
	"dompet/internal/store"
)

// CreateWallet adds a wallet with a zero balance. Opening balances are
// modeled as an INCOME transaction so the balance invariant holds from
// day one.
func (t *Tracker) CreateWallet(ctx context.Context, ownerID, name string, kind core.WalletKind) (core.Wallet, error) {
	w := core.Wallet{ID: t.newID(), OwnerID: ownerID, Name: name, Kind: kind}
	if err := w.Validate(); err != nil {
		return core.Wallet{}, err
	}
	err := t.store.Update(func(tx *store.Tx) error {
		return tx.Wallets().Insert(ownerID, w)
	})
	if err != nil {
		return core.Wallet{}, err
	}
	t.flush(ctx, ownerID)
	return w, nil
}

// DeleteWallet removes a wallet. Wallets referenced by any transaction
// cannot be deleted; dangling ledger references are never allowed.
func (t *Tracker) DeleteWallet(ctx context.Context, ownerID, id string) error {
	err := t.store.Update(func(tx *store.Tx) error {
		if _, err := tx.Wallets().Find(ownerID, id); err != nil {
			return err
		}
		for _, txn := range tx.Transactions().ListByOwner(ownerID) {
			if txn.WalletID == id || txn.ToWalletID == id {
				return fmt.Errorf("wallet %s: %w", id, core.ErrWalletInUse)
			}
		}
		return tx.Wallets().Remove(ownerID, id)
	})
	if err != nil {
		return err
	}
	t.flush(ctx, ownerID)
	return nil
}

// Wallets lists the owner's wallets.
func (t *Tracker) Wallets(ownerID string) []core.Wallet {
	var out []core.Wallet
	t.store.View(func(tx *store.Tx) {
		out = tx.Wallets().ListByOwner(ownerID)
	})
	return out
}

// Categories lists the categories visible to the owner: shared defaults
// plus their own.
func (t *Tracker) Categories(ownerID string) []core.Category {
	var out []core.Category
	t.store.View(func(tx *store.Tx) {
		out = tx.Categories().ListByOwner(ownerID)
	})
	return out
}

// CreateCategory adds a private category.
func (t *Tracker) CreateCategory(ctx context.Context, ownerID, name string, kind core.TransactionKind) (core.Category, error) {
	c := core.NewUserCategory(t.newID(), ownerID, name, kind)
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	err := t.store.Update(func(tx *store.Tx) error {
		return tx.Categories().Insert(ownerID, c)
	})
	if err != nil {
		return core.Category{}, err
	}
	t.flush(ctx, ownerID)
	return c, nil
}

// DeleteCategory removes a private category. Defaults are read-only.
func (t *Tracker) DeleteCategory(ctx context.Context, ownerID, id string) error {
	err := t.store.Update(func(tx *store.Tx) error {
		c, err := tx.Categories().Find(ownerID, id)
		if err != nil {
			return err
		}
		if c.IsDefault {
			return core.ErrCategoryReadOnly
		}
		return tx.Categories().Remove(ownerID, id)
	})
	if err != nil {
		return err
	}
	t.flush(ctx, ownerID)
	return nil
}

// CreateBudget adds a spending cap for a category.
func (t *Tracker) CreateBudget(ctx context.Context, ownerID, category string, limit core.Money, freq core.BudgetFrequency) (core.Budget, error) {
	b := core.Budget{ID: t.newID(), OwnerID: ownerID, Category: category, Limit: limit, Frequency: freq}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	err := t.store.Update(func(tx *store.Tx) error {
		return tx.Budgets().Insert(ownerID, b)
	})
	if err != nil {
		return core.Budget{}, err
	}
	t.flush(ctx, ownerID)
	return b, nil
}

// DeleteBudget removes a budget.
func (t *Tracker) DeleteBudget(ctx context.Context, ownerID, id string) error {
	err := t.store.Update(func(tx *store.Tx) error {
		return tx.Budgets().Remove(ownerID, id)
	})
	if err != nil {
		return err
	}
	t.flush(ctx, ownerID)
	return nil
}

// Budgets lists the owner's budgets.
func (t *Tracker) Budgets(ownerID string) []core.Budget {
	var out []core.Budget
	t.store.View(func(tx *store.Tx) {
		out = tx.Budgets().ListByOwner(ownerID)
	})
	return out
}

// CreateDebt records an obligation, receivable or bill.
func (t *Tracker) CreateDebt(ctx context.Context, ownerID string, d core.Debt) (core.Debt, error) {
	d.ID = t.newID()
	d.OwnerID = ownerID
	d.IsPaid = false
	if err := d.Validate(); err != nil {
		return core.Debt{}, err
	}
	err := t.store.Update(func(tx *store.Tx) error {
		return tx.Debts().Insert(ownerID, d)
	})
	if err != nil {
		return core.Debt{}, err
	}
	t.flush(ctx, ownerID)
	return d, nil
}

// SetDebtPaid toggles the only field that changes outside a full edit.
func (t *Tracker) SetDebtPaid(ctx context.Context, ownerID, id string, paid bool) error {
	err := t.store.Update(func(tx *store.Tx) error {
		d, err := tx.Debts().Find(ownerID, id)
		if err != nil {
			return err
		}
		d.IsPaid = paid
		return tx.Debts().Update(ownerID, d)
	})
	if err != nil {
		return err
	}
	t.flush(ctx, ownerID)
	return nil
}

// DeleteDebt removes a debt record.
func (t *Tracker) DeleteDebt(ctx context.Context, ownerID, id string) error {
	err := t.store.Update(func(tx *store.Tx) error {
		return tx.Debts().Remove(ownerID, id)
	})
	if err != nil {
		return err
	}
	t.flush(ctx, ownerID)
	return nil
}

// Debts lists the owner's debts.
func (t *Tracker) Debts(ownerID string) []core.Debt {
	var out []core.Debt
	t.store.View(func(tx *store.Tx) {
		out = tx.Debts().ListByOwner(ownerID)
	})
	return out
}

// CreateAsset records a non-ledger asset.
func (t *Tracker) CreateAsset(ctx context.Context, ownerID, name string, value core.Money, kind core.AssetKind) (core.Asset, error) {
	a := core.Asset{ID: t.newID(), OwnerID: ownerID, Name: name, Value: value, Kind: kind}
	if err := a.Validate(); err != nil {
		return core.Asset{}, err
	}
	err := t.store.Update(func(tx *store.Tx) error {
		return tx.Assets().Insert(ownerID, a)
	})
	if err != nil {
		return core.Asset{}, err
	}
	t.flush(ctx, ownerID)
	return a, nil
}

// DeleteAsset removes an asset.
func (t *Tracker) DeleteAsset(ctx context.Context, ownerID, id string) error {
	err := t.store.Update(func(tx *store.Tx) error {
		return tx.Assets().Remove(ownerID, id)
	})
	if err != nil {
		return err
	}
	t.flush(ctx, ownerID)
	return nil
}

// Assets lists the owner's assets.
func (t *Tracker) Assets(ownerID string) []core.Asset {
	var out []core.Asset
	t.store.View(func(tx *store.Tx) {
		out = tx.Assets().ListByOwner(ownerID)
	})
	return out
}
