// Package service wires the store, ledger engine, cycle resolver and
// aggregation functions into the API the transport layer consumes, and
// fans successful mutations out to the persistence, event and mirror
// collaborators.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dompet/internal/core"
	"dompet/internal/cycle"
	"dompet/internal/ledger"
	applog "dompet/internal/log"
	"dompet/internal/smart"
	"dompet/internal/storage"
	"dompet/internal/store"
)

// Publisher is what the tracker needs from the event collaborator.
type Publisher interface {
	PublishLedgerEvent(ctx context.Context, ownerID, op string, txIDs []string) error
}

// Mirror is what the tracker needs from the spreadsheet mirror.
type Mirror interface {
	Append(ctx context.Context, ownerID string, txns []core.Transaction) error
}

// Tracker is the application service. Every collaborator except the store
// and engine may be nil; a bare in-memory tracker is fully functional.
type Tracker struct {
	store   *store.Store
	engine  *ledger.Engine
	snaps   storage.Snapshotter
	events  Publisher
	mirror  Mirror
	parser  smart.Parser
	policy  cycle.Policy
	horizon int
	log     *applog.Logger
	now     func() time.Time
	newID   func() string
}

// Options carries the optional collaborators.
type Options struct {
	Snapshotter storage.Snapshotter
	Events      Publisher
	Mirror      Mirror
	Parser      smart.Parser
	Policy      cycle.Policy
	// HorizonDays bounds the dashboard's upcoming-debt window.
	HorizonDays int
	Now         func() time.Time
	NewID       func() string
}

func New(st *store.Store, engine *ledger.Engine, logger *applog.Logger, opts Options) *Tracker {
	t := &Tracker{
		store:   st,
		engine:  engine,
		snaps:   opts.Snapshotter,
		events:  opts.Events,
		mirror:  opts.Mirror,
		parser:  opts.Parser,
		policy:  opts.Policy,
		horizon: opts.HorizonDays,
		log:     logger.WithComponent(applog.ComponentTracker),
		now:     opts.Now,
		newID:   opts.NewID,
	}
	if t.policy.Kind == "" {
		t.policy = cycle.Policy{Kind: cycle.Monthly}
	}
	if t.horizon <= 0 {
		t.horizon = defaultHorizonDays
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	engine.OnMutation(t.ledgerMutated)
	return t
}

// ledgerMutated runs after every successful engine mutation, outside the
// store lock.
func (t *Tracker) ledgerMutated(ctx context.Context, ownerID, op string, applied []core.Transaction) {
	t.flush(ctx, ownerID)
	if t.events != nil {
		ids := make([]string, 0, len(applied))
		for _, tr := range applied {
			ids = append(ids, tr.ID)
		}
		if err := t.events.PublishLedgerEvent(ctx, ownerID, op, ids); err != nil {
			t.log.WarnContext(ctx, "event publish failed",
				applog.FieldOwnerID, ownerID,
				applog.FieldError, err.Error())
		}
	}
	if t.mirror != nil && (op == applog.OpApply || op == applog.OpBatch) {
		if err := t.mirror.Append(ctx, ownerID, applied); err != nil {
			t.log.WarnContext(ctx, "mirror append failed",
				applog.FieldOwnerID, ownerID,
				applog.FieldError, err.Error())
		}
	}
}

// flush hands the owner's snapshot to the persistence collaborator.
// Persistence failures are logged, not propagated: the in-memory state is
// already consistent and the next mutation retries the full snapshot.
func (t *Tracker) flush(ctx context.Context, ownerID string) {
	if t.snaps == nil {
		return
	}
	if err := t.snaps.Save(ctx, ownerID, t.store.Snapshot(ownerID)); err != nil {
		t.log.ErrorContext(ctx, "snapshot flush failed",
			applog.FieldOwnerID, ownerID,
			applog.FieldError, err.Error())
	}
}

// EnsureOwner seeds starter wallets for an owner with none. Idempotent.
func (t *Tracker) EnsureOwner(ctx context.Context, ownerID string) error {
	created := false
	err := t.store.Update(func(tx *store.Tx) error {
		if len(tx.Wallets().ListByOwner(ownerID)) > 0 {
			return nil
		}
		for _, w := range core.DefaultWallets(ownerID, t.newID) {
			if err := tx.Wallets().Insert(ownerID, w); err != nil {
				return err
			}
		}
		created = true
		return nil
	})
	if err != nil {
		return err
	}
	if created {
		t.flush(ctx, ownerID)
	}
	return nil
}

// ActivePeriod resolves the configured cycle policy against now.
func (t *Tracker) ActivePeriod() (cycle.Period, error) {
	return cycle.Resolve(t.policy, t.now())
}
