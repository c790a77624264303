// Package ledger is the single authority for wallet-balance mutation.
//
// Every operation is all-or-nothing: validation happens before the first
// balance touch, edits reverse-then-reapply with compensation on failure,
// and batches roll back already-applied entries in reverse order. After
// each mutation the engine re-derives the touched balances from the stored
// transactions and fails loudly if the cached balance drifted.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"dompet/internal/core"
	applog "dompet/internal/log"
	"dompet/internal/metrics"
	"dompet/internal/store"
)

// WalletRole distinguishes the two sides a transaction can touch.
type WalletRole int

const (
	Source WalletRole = iota
	Destination
)

// Effect is the signed minor-unit delta a transaction contributes to a
// wallet playing the given role.
func Effect(t core.Transaction, role WalletRole) int64 {
	switch role {
	case Source:
		switch t.Kind {
		case core.Income:
			return t.Amount.Units
		case core.Expense, core.Transfer:
			return -t.Amount.Units
		}
	case Destination:
		if t.Kind == core.Transfer {
			return t.Amount.Units
		}
	}
	return 0
}

// MutationFunc is invoked after each successful mutation, outside the
// store lock. The surrounding application hangs persistence flushes and
// event publishing off it.
type MutationFunc func(ctx context.Context, ownerID, op string, applied []core.Transaction)

// Engine applies, edits and deletes transactions against a store.
type Engine struct {
	store *store.Store
	log   *applog.Logger

	mu     sync.Mutex
	owners map[string]*sync.Mutex

	onMutation MutationFunc
}

func New(st *store.Store, logger *applog.Logger) *Engine {
	return &Engine{
		store:  st,
		log:    logger.WithComponent(applog.ComponentLedger),
		owners: make(map[string]*sync.Mutex),
	}
}

// OnMutation registers the post-mutation hook. Must be called before the
// engine is shared.
func (e *Engine) OnMutation(fn MutationFunc) { e.onMutation = fn }

// ownerLock serializes mutations per owner so concurrent callers cannot
// interleave between reverse and reapply.
func (e *Engine) ownerLock(ownerID string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.owners[ownerID]
	if !ok {
		l = &sync.Mutex{}
		e.owners[ownerID] = l
	}
	return l
}

// Apply validates t and applies its balance effects, then inserts it.
func (e *Engine) Apply(ctx context.Context, ownerID string, t core.Transaction) error {
	l := e.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	err := e.store.Update(func(tx *store.Tx) error {
		if err := validate(tx, ownerID, t); err != nil {
			return err
		}
		if err := applyEffects(tx, ownerID, t); err != nil {
			return err
		}
		if err := tx.Transactions().Insert(ownerID, t); err != nil {
			// Undo the balance changes; duplicate ids are a validation error.
			reverseEffects(tx, ownerID, t)
			return err
		}
		return checkInvariant(tx, ownerID, t)
	})
	if err != nil {
		e.observeFailure(err)
		return err
	}

	metrics.LedgerApplies.WithLabelValues(string(t.Kind)).Inc()
	e.log.InfoContext(ctx, "transaction applied",
		applog.FieldOwnerID, ownerID,
		applog.FieldTxID, t.ID,
		applog.FieldKind, string(t.Kind),
		applog.FieldAmountUnits, t.Amount.Units)
	e.notify(ctx, ownerID, applog.OpApply, []core.Transaction{t})
	return nil
}

// Edit atomically replaces the transaction oldID with next. On validation
// failure the original is re-applied and the store is byte-identical to
// its pre-call state.
func (e *Engine) Edit(ctx context.Context, ownerID, oldID string, next core.Transaction) error {
	l := e.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	next.ID = oldID
	next.OwnerID = ownerID

	err := e.store.Update(func(tx *store.Tx) error {
		old, err := tx.Transactions().Find(ownerID, oldID)
		if err != nil {
			return err
		}
		reverseEffects(tx, ownerID, old)
		if err := validate(tx, ownerID, next); err != nil {
			// Restore the pre-edit state before surfacing the error.
			if aerr := applyEffects(tx, ownerID, old); aerr != nil {
				return fmt.Errorf("restore after failed edit: %w", core.ErrInvariant)
			}
			return err
		}
		if err := applyEffects(tx, ownerID, next); err != nil {
			if aerr := applyEffects(tx, ownerID, old); aerr != nil {
				return fmt.Errorf("restore after failed edit: %w", core.ErrInvariant)
			}
			return err
		}
		if err := tx.Transactions().Update(ownerID, next); err != nil {
			return err
		}
		return checkInvariant(tx, ownerID, old, next)
	})
	if err != nil {
		e.observeFailure(err)
		return err
	}

	metrics.LedgerEdits.Inc()
	e.log.InfoContext(ctx, "transaction edited",
		applog.FieldOwnerID, ownerID,
		applog.FieldTxID, oldID)
	e.notify(ctx, ownerID, applog.OpEdit, []core.Transaction{next})
	return nil
}

// Delete reverses the transaction's effects and removes the record.
func (e *Engine) Delete(ctx context.Context, ownerID, id string) error {
	l := e.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	var removed core.Transaction
	err := e.store.Update(func(tx *store.Tx) error {
		t, err := tx.Transactions().Find(ownerID, id)
		if err != nil {
			return err
		}
		reverseEffects(tx, ownerID, t)
		if err := tx.Transactions().Remove(ownerID, id); err != nil {
			return err
		}
		removed = t
		return checkInvariant(tx, ownerID, t)
	})
	if err != nil {
		e.observeFailure(err)
		return err
	}

	metrics.LedgerDeletes.Inc()
	e.log.InfoContext(ctx, "transaction deleted",
		applog.FieldOwnerID, ownerID,
		applog.FieldTxID, id)
	e.notify(ctx, ownerID, applog.OpDelete, []core.Transaction{removed})
	return nil
}

// BatchApply applies ts in order. If any entry fails validation the whole
// batch is rolled back and no wallet reflects any of it.
func (e *Engine) BatchApply(ctx context.Context, ownerID string, ts []core.Transaction) error {
	if len(ts) == 0 {
		return nil
	}
	l := e.ownerLock(ownerID)
	l.Lock()
	defer l.Unlock()

	err := e.store.Update(func(tx *store.Tx) error {
		applied := 0
		var failure error
		for _, t := range ts {
			if err := validate(tx, ownerID, t); err != nil {
				failure = fmt.Errorf("batch entry %d: %w", applied, err)
				break
			}
			if err := applyEffects(tx, ownerID, t); err != nil {
				failure = fmt.Errorf("batch entry %d: %w", applied, err)
				break
			}
			if err := tx.Transactions().Insert(ownerID, t); err != nil {
				reverseEffects(tx, ownerID, t)
				failure = fmt.Errorf("batch entry %d: %w", applied, err)
				break
			}
			applied++
		}
		if failure == nil {
			return checkInvariant(tx, ownerID, ts...)
		}
		// Roll back in reverse order.
		for i := applied - 1; i >= 0; i-- {
			reverseEffects(tx, ownerID, ts[i])
			if err := tx.Transactions().Remove(ownerID, ts[i].ID); err != nil {
				return fmt.Errorf("batch rollback: %w", core.ErrInvariant)
			}
		}
		metrics.LedgerRollbacks.Inc()
		return failure
	})
	if err != nil {
		e.observeFailure(err)
		return err
	}

	for _, t := range ts {
		metrics.LedgerApplies.WithLabelValues(string(t.Kind)).Inc()
	}
	e.log.InfoContext(ctx, "batch applied",
		applog.FieldOwnerID, ownerID,
		applog.FieldBatchSize, len(ts))
	e.notify(ctx, ownerID, applog.OpBatch, ts)
	return nil
}

func (e *Engine) notify(ctx context.Context, ownerID, op string, applied []core.Transaction) {
	if e.onMutation != nil {
		e.onMutation(ctx, ownerID, op, applied)
	}
}

func (e *Engine) observeFailure(err error) {
	switch {
	case isInvariant(err):
		metrics.InvariantViolations.Inc()
		e.log.Error("balance invariant violated", applog.FieldError, err.Error())
	case isValidation(err):
		metrics.ValidationFailures.Inc()
	}
}
