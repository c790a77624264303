package core

import "strconv"

// Default category seed set, shared read-only across owners.
var defaultCategorySeed = []struct {
	name string
	kind TransactionKind
}{
	{"Gaji", Income},
	{"Bonus", Income},
	{"Investasi", Income},
	{"Lainnya", Income},
	{"Makanan", Expense},
	{"Transportasi", Expense},
	{"Belanja", Expense},
	{"Tagihan", Expense},
	{"Hiburan", Expense},
	{"Kesehatan", Expense},
	{"Pendidikan", Expense},
	{"Lainnya", Expense},
	{"Transfer Antar Dompet", Transfer},
	{"Top Up E-Wallet", Transfer},
	{"Tarik Tunai", Transfer},
	{"Lainnya", Transfer},
}

// DefaultCategories returns the shared seed categories. IDs are stable
// across runs so reseeding after a restore is idempotent.
func DefaultCategories() []Category {
	out := make([]Category, 0, len(defaultCategorySeed))
	for i, s := range defaultCategorySeed {
		id := "default-" + strconv.Itoa(i) + "-" + string(s.kind)
		out = append(out, NewDefaultCategory(id, s.name, s.kind))
	}
	return out
}

// DefaultWallets returns the starter wallets created for a new owner.
func DefaultWallets(ownerID string, newID func() string) []Wallet {
	return []Wallet{
		{ID: newID(), OwnerID: ownerID, Name: "Tunai", Kind: WalletCash},
		{ID: newID(), OwnerID: ownerID, Name: "Bank BCA", Kind: WalletBank},
	}
}
