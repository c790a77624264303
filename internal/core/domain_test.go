package core

import (
	"errors"
	"testing"
	"time"
)

func validTransaction() Transaction {
	return Transaction{
		ID:          "tx-1",
		OwnerID:     "owner-1",
		WalletID:    "w-1",
		Date:        NewDate(2026, time.June, 25),
		Description: "makan siang",
		Amount:      NewMoney(5000000),
		Kind:        Expense,
		Category:    "Makanan",
	}
}

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "valid expense", mutate: func(tr *Transaction) {}},
		{name: "valid transfer", mutate: func(tr *Transaction) {
			tr.Kind = Transfer
			tr.ToWalletID = "w-2"
		}},
		{name: "zero amount", mutate: func(tr *Transaction) {
			tr.Amount = Money{}
		}, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(tr *Transaction) {
			tr.Amount = NewMoney(-100)
		}, wantErr: ErrInvalidAmount},
		{name: "unknown kind", mutate: func(tr *Transaction) {
			tr.Kind = "REFUND"
		}, wantErr: ErrInvalidKind},
		{name: "zero date", mutate: func(tr *Transaction) {
			tr.Date = Date{}
		}, wantErr: ErrInvalidDate},
		{name: "missing wallet", mutate: func(tr *Transaction) {
			tr.WalletID = ""
		}, wantErr: ErrUnknownWallet},
		{name: "transfer without destination", mutate: func(tr *Transaction) {
			tr.Kind = Transfer
		}, wantErr: ErrMissingDestination},
		{name: "transfer to itself", mutate: func(tr *Transaction) {
			tr.Kind = Transfer
			tr.ToWalletID = tr.WalletID
		}, wantErr: ErrTransferToSelf},
		{name: "destination on non-transfer", mutate: func(tr *Transaction) {
			tr.ToWalletID = "w-2"
		}, wantErr: ErrMissingDestination},
		{name: "blank category", mutate: func(tr *Transaction) {
			tr.Category = "   "
		}, wantErr: ErrEmptyCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTransaction()
			tt.mutate(&tr)
			err := tr.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("error %v should wrap ErrValidation", err)
			}
		})
	}
}

func TestWallet_Validate(t *testing.T) {
	w := Wallet{ID: "w-1", OwnerID: "o", Name: "Tunai", Kind: WalletCash}
	if err := w.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	w.Name = " "
	if err := w.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("blank name error = %v, want ErrEmptyName", err)
	}
	w.Name = "Tunai"
	w.Kind = "SOCK_DRAWER"
	if err := w.Validate(); !errors.Is(err, ErrInvalidKind) {
		t.Errorf("bad kind error = %v, want ErrInvalidKind", err)
	}
}

func TestDebt_Validate(t *testing.T) {
	d := Debt{
		ID:           "d-1",
		OwnerID:      "o",
		Kind:         DebtOwed,
		Counterparty: "Budi",
		Amount:       NewMoney(25000000),
		DueDate:      NewDate(2026, time.July, 1),
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d.DueDate = Date{}
	if err := d.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("zero due date error = %v, want ErrInvalidDate", err)
	}
}

func TestDefaultCategories(t *testing.T) {
	cats := DefaultCategories()
	if len(cats) == 0 {
		t.Fatal("expected seed categories")
	}
	seen := make(map[string]bool)
	for _, c := range cats {
		if !c.IsDefault {
			t.Errorf("category %s should be marked default", c.Name)
		}
		if c.OwnerID != "" {
			t.Errorf("category %s should have no owner", c.Name)
		}
		if seen[c.ID] {
			t.Errorf("duplicate seed id %s", c.ID)
		}
		seen[c.ID] = true
	}
	// The catch-all must exist for every kind the smart adapter produces.
	for _, kind := range []TransactionKind{Income, Expense} {
		found := false
		for _, c := range cats {
			if c.Name == "Lainnya" && c.Kind == kind {
				found = true
			}
		}
		if !found {
			t.Errorf("missing Lainnya seed for kind %s", kind)
		}
	}
}
