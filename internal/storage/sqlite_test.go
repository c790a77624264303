package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"dompet/internal/core"
	applog "dompet/internal/log"
)

func testSnapshot() core.Snapshot {
	return core.Snapshot{
		Wallets: []core.Wallet{
			{ID: "w-1", OwnerID: "alice", Name: "Tunai", Kind: core.WalletCash, Balance: core.NewMoney(500000)},
		},
		Transactions: []core.Transaction{
			{ID: "t-1", OwnerID: "alice", WalletID: "w-1",
				Date: core.NewDate(2026, time.June, 25), Description: "makan siang",
				Amount: core.NewMoney(5000000), Kind: core.Expense, Category: "Makanan"},
		},
		Categories: []core.Category{
			core.NewUserCategory("c-1", "alice", "Kopi", core.Expense),
		},
		Budgets: []core.Budget{
			{ID: "b-1", OwnerID: "alice", Category: "Makanan",
				Limit: core.NewMoney(100000000), Frequency: core.FrequencyMonthly},
		},
		Debts: []core.Debt{
			{ID: "d-1", OwnerID: "alice", Kind: core.DebtBill, Counterparty: "PLN",
				Amount: core.NewMoney(25000000), DueDate: core.NewDate(2026, time.July, 1)},
		},
		Assets: []core.Asset{
			{ID: "a-1", OwnerID: "alice", Name: "Emas", Value: core.NewMoney(1200000000), Kind: core.AssetGold},
		},
	}
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "dompet.db"), applog.Discard())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "alice", testSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	snap, ok := got["alice"]
	if !ok {
		t.Fatalf("owner missing from load, got %v owners", len(got))
	}
	if len(snap.Wallets) != 1 || snap.Wallets[0].Balance.Units != 500000 {
		t.Errorf("wallets = %+v", snap.Wallets)
	}
	if len(snap.Transactions) != 1 {
		t.Fatalf("transactions = %+v", snap.Transactions)
	}
	tr := snap.Transactions[0]
	if tr.Date.String() != "2026-06-25" || tr.Amount.Units != 5000000 {
		t.Errorf("transaction round trip = %+v", tr)
	}
	if len(snap.Categories) != 1 || snap.Categories[0].Name != "Kopi" {
		t.Errorf("categories = %+v", snap.Categories)
	}
	if len(snap.Budgets) != 1 || len(snap.Debts) != 1 || len(snap.Assets) != 1 {
		t.Errorf("counts: %d budgets, %d debts, %d assets",
			len(snap.Budgets), len(snap.Debts), len(snap.Assets))
	}
}

func TestSQLiteSaveReplacesPreviousSnapshot(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "alice", testSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	next := testSnapshot()
	next.Transactions = nil
	next.Wallets[0].Balance = core.NewMoney(0)
	if err := s.Save(ctx, "alice", next); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	snap := got["alice"]
	if len(snap.Transactions) != 0 {
		t.Errorf("transactions = %d, want 0 after replacement", len(snap.Transactions))
	}
	if snap.Wallets[0].Balance.Units != 0 {
		t.Errorf("balance = %d, want 0", snap.Wallets[0].Balance.Units)
	}
}

func TestSQLiteLoadMultipleOwners(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "alice", testSnapshot()); err != nil {
		t.Fatalf("save alice: %v", err)
	}
	bob := core.Snapshot{
		Wallets: []core.Wallet{{ID: "w-9", OwnerID: "bob", Name: "Bank", Kind: core.WalletBank}},
	}
	if err := s.Save(ctx, "bob", bob); err != nil {
		t.Fatalf("save bob: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("owner count = %d, want 2", len(got))
	}
	if got["bob"].Wallets[0].ID != "w-9" {
		t.Errorf("bob wallets = %+v", got["bob"].Wallets)
	}
}

func TestSQLiteLoadEmptyDatabase(t *testing.T) {
	s := newTestStore(t)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("owner count = %d, want 0", len(got))
	}
}
