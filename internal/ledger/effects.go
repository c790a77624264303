package ledger

import (
	"errors"
	"fmt"

	"dompet/internal/core"
	"dompet/internal/store"
)

// validate runs the full pre-mutation check: field validity plus wallet
// resolution against the current store state.
func validate(tx *store.Tx, ownerID string, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, err := tx.Wallets().Find(ownerID, t.WalletID); err != nil {
		return fmt.Errorf("source %s: %w", t.WalletID, core.ErrUnknownWallet)
	}
	if t.Kind == core.Transfer {
		if _, err := tx.Wallets().Find(ownerID, t.ToWalletID); err != nil {
			return fmt.Errorf("destination %s: %w", t.ToWalletID, core.ErrUnknownWallet)
		}
	}
	if !categoryExists(tx, ownerID, t.Category) {
		return fmt.Errorf("category %q: %w", t.Category, core.ErrUnknownCategory)
	}
	return nil
}

// categoryExists matches by name against the categories visible to the
// owner (their own plus the shared defaults).
func categoryExists(tx *store.Tx, ownerID, name string) bool {
	for _, c := range tx.Categories().ListByOwner(ownerID) {
		if c.Name == name {
			return true
		}
	}
	return false
}

// applyEffects adds t's signed effects to the touched wallet balances.
// Wallets must already be validated to resolve.
func applyEffects(tx *store.Tx, ownerID string, t core.Transaction) error {
	if err := adjustBalance(tx, ownerID, t.WalletID, Effect(t, Source)); err != nil {
		return err
	}
	if t.Kind == core.Transfer {
		if err := adjustBalance(tx, ownerID, t.ToWalletID, Effect(t, Destination)); err != nil {
			// Compensate the source half.
			_ = adjustBalance(tx, ownerID, t.WalletID, -Effect(t, Source))
			return err
		}
	}
	return nil
}

// reverseEffects applies the negated effects without touching the record.
func reverseEffects(tx *store.Tx, ownerID string, t core.Transaction) {
	_ = adjustBalance(tx, ownerID, t.WalletID, -Effect(t, Source))
	if t.Kind == core.Transfer {
		_ = adjustBalance(tx, ownerID, t.ToWalletID, -Effect(t, Destination))
	}
}

func adjustBalance(tx *store.Tx, ownerID, walletID string, delta int64) error {
	w, err := tx.Wallets().Find(ownerID, walletID)
	if err != nil {
		return err
	}
	w.Balance = core.NewMoney(w.Balance.Units + delta)
	return tx.Wallets().Update(ownerID, w)
}

// checkInvariant re-derives the balance of every wallet touched by the
// given transactions from the stored ledger and compares it to the cached
// balance. A mismatch means a bug in this package, never bad user input.
func checkInvariant(tx *store.Tx, ownerID string, touched ...core.Transaction) error {
	ids := make(map[string]struct{})
	for _, t := range touched {
		ids[t.WalletID] = struct{}{}
		if t.ToWalletID != "" {
			ids[t.ToWalletID] = struct{}{}
		}
	}
	all := tx.Transactions().ListByOwner(ownerID)
	for id := range ids {
		w, err := tx.Wallets().Find(ownerID, id)
		if err != nil {
			// Wallet may legitimately be gone only if nothing references it.
			continue
		}
		var sum int64
		for _, t := range all {
			if t.WalletID == id {
				sum += Effect(t, Source)
			}
			if t.ToWalletID == id {
				sum += Effect(t, Destination)
			}
		}
		if sum != w.Balance.Units {
			return fmt.Errorf("wallet %s: cached %d, derived %d: %w",
				id, w.Balance.Units, sum, core.ErrInvariant)
		}
	}
	return nil
}

func isValidation(err error) bool { return errors.Is(err, core.ErrValidation) }
func isInvariant(err error) bool  { return errors.Is(err, core.ErrInvariant) }
