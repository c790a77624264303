package core

import "strings"

type (
	TransactionKind string
	WalletKind      string
	DebtKind        string
	AssetKind       string
	BudgetFrequency string
)

const (
	Income   TransactionKind = "INCOME"
	Expense  TransactionKind = "EXPENSE"
	Transfer TransactionKind = "TRANSFER"
)

const (
	WalletCash   WalletKind = "CASH"
	WalletBank   WalletKind = "BANK"
	WalletEMoney WalletKind = "E_WALLET"
)

const (
	DebtOwed       DebtKind = "DEBT"
	DebtReceivable DebtKind = "RECEIVABLE"
	DebtBill       DebtKind = "BILL"
)

const (
	AssetGold     AssetKind = "GOLD"
	AssetStock    AssetKind = "STOCK"
	AssetCrypto   AssetKind = "CRYPTO"
	AssetProperty AssetKind = "PROPERTY"
	AssetOther    AssetKind = "OTHER"
)

const (
	FrequencyDaily   BudgetFrequency = "DAILY"
	FrequencyWeekly  BudgetFrequency = "WEEKLY"
	FrequencyMonthly BudgetFrequency = "MONTHLY"
	FrequencyYearly  BudgetFrequency = "YEARLY"
)

func (k TransactionKind) Valid() bool {
	switch k {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

func (k WalletKind) Valid() bool {
	switch k {
	case WalletCash, WalletBank, WalletEMoney:
		return true
	}
	return false
}

func (k DebtKind) Valid() bool {
	switch k {
	case DebtOwed, DebtReceivable, DebtBill:
		return true
	}
	return false
}

func (k AssetKind) Valid() bool {
	switch k {
	case AssetGold, AssetStock, AssetCrypto, AssetProperty, AssetOther:
		return true
	}
	return false
}

func (f BudgetFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Wallet is a named balance-holding account. Balance is derived-but-cached:
// it must always equal the sum of effects of the stored transactions that
// reference the wallet, and only the ledger engine may change it.
type Wallet struct {
	ID      string     `json:"id"`
	OwnerID string     `json:"owner_id"`
	Name    string     `json:"name"`
	Kind    WalletKind `json:"kind"`
	Balance Money      `json:"balance"`
}

func (w Wallet) EntityID() string    { return w.ID }
func (w Wallet) EntityOwner() string { return w.OwnerID }

func (w Wallet) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyName
	}
	if !w.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

// Transaction is one ledger entry. Amount is always stored positive; the
// sign a wallet sees is derived from Kind at application time. ToWalletID
// is set iff Kind is TRANSFER.
type Transaction struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id"`
	WalletID    string          `json:"wallet_id"`
	ToWalletID  string          `json:"to_wallet_id,omitempty"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Amount      Money           `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Category    string          `json:"category"`
}

func (t Transaction) EntityID() string    { return t.ID }
func (t Transaction) EntityOwner() string { return t.OwnerID }

// Validate checks the fields that do not require store lookups. Wallet
// resolution happens in the ledger engine.
func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Kind.Valid() {
		return ErrInvalidKind
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if t.WalletID == "" {
		return ErrUnknownWallet
	}
	if t.Kind == Transfer {
		if t.ToWalletID == "" {
			return ErrMissingDestination
		}
		if t.ToWalletID == t.WalletID {
			return ErrTransferToSelf
		}
	} else if t.ToWalletID != "" {
		return ErrMissingDestination
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Category labels transactions. Default categories are shared seed data
// visible to every owner and immutable; user categories are private.
type Category struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id,omitempty"`
	Name      string          `json:"name"`
	Kind      TransactionKind `json:"kind"`
	IsDefault bool            `json:"is_default"`
}

// NewDefaultCategory builds a shared seed category with no owner.
func NewDefaultCategory(id, name string, kind TransactionKind) Category {
	return Category{ID: id, Name: name, Kind: kind, IsDefault: true}
}

// NewUserCategory builds a private category for one owner.
func NewUserCategory(id, ownerID, name string, kind TransactionKind) Category {
	return Category{ID: id, OwnerID: ownerID, Name: name, Kind: kind}
}

func (c Category) EntityID() string    { return c.ID }
func (c Category) EntityOwner() string { return c.OwnerID }

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}

// Budget caps spending for one category. Transactions never mutate it;
// consumption is computed on read.
type Budget struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	Category  string          `json:"category"`
	Limit     Money           `json:"limit"`
	Frequency BudgetFrequency `json:"frequency"`
}

func (b Budget) EntityID() string    { return b.ID }
func (b Budget) EntityOwner() string { return b.OwnerID }

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Limit.Validate(); err != nil {
		return err
	}
	if !b.Frequency.Valid() {
		return ErrInvalidKind
	}
	return nil
}

// Debt is an obligation or receivable with a due date. IsPaid is the only
// field toggled outside a full edit.
type Debt struct {
	ID           string   `json:"id"`
	OwnerID      string   `json:"owner_id"`
	Kind         DebtKind `json:"kind"`
	Counterparty string   `json:"counterparty"`
	Amount       Money    `json:"amount"`
	Description  string   `json:"description"`
	DueDate      Date     `json:"due_date"`
	IsPaid       bool     `json:"is_paid"`
}

func (d Debt) EntityID() string    { return d.ID }
func (d Debt) EntityOwner() string { return d.OwnerID }

func (d Debt) Validate() error {
	if !d.Kind.Valid() {
		return ErrInvalidKind
	}
	if strings.TrimSpace(d.Counterparty) == "" {
		return ErrEmptyName
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	return d.DueDate.Validate()
}

// Asset is independent of the ledger; it only contributes to net worth.
type Asset struct {
	ID      string    `json:"id"`
	OwnerID string    `json:"owner_id"`
	Name    string    `json:"name"`
	Value   Money     `json:"value"`
	Kind    AssetKind `json:"kind"`
}

func (a Asset) EntityID() string    { return a.ID }
func (a Asset) EntityOwner() string { return a.OwnerID }

func (a Asset) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Kind.Valid() {
		return ErrInvalidKind
	}
	return a.Value.Validate()
}

// Snapshot is the full persisted state of one owner, handed to the
// persistence collaborator after each mutation.
type Snapshot struct {
	Wallets      []Wallet      `json:"wallets"`
	Transactions []Transaction `json:"transactions"`
	Categories   []Category    `json:"categories"`
	Budgets      []Budget      `json:"budgets"`
	Debts        []Debt        `json:"debts"`
	Assets       []Asset       `json:"assets"`
}
