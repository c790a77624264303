package analytics

import "dompet/internal/core"

// Summary is the headline figure set for one owner.
type Summary struct {
	TotalIncome  core.Money `json:"total_income"`
	TotalExpense core.Money `json:"total_expense"`
	Balance      core.Money `json:"balance"`
}

// Summarize totals income and expense over the whole log and sums wallet
// balances. Transfers move money between wallets and touch neither total.
func Summarize(txns []core.Transaction, wallets []core.Wallet) Summary {
	var s Summary
	for _, t := range txns {
		switch t.Kind {
		case core.Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case core.Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	for _, w := range wallets {
		s.Balance = s.Balance.Add(w.Balance)
	}
	return s
}

// NetWorth sums wallet balances and asset values.
func NetWorth(wallets []core.Wallet, assets []core.Asset) core.Money {
	var total core.Money
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}
	for _, a := range assets {
		total = total.Add(a.Value)
	}
	return total
}

// AdminOverview aggregates across every owner.
type AdminOverview struct {
	OwnerCount       int        `json:"owner_count"`
	TransactionCount int        `json:"transaction_count"`
	SystemVolume     core.Money `json:"system_volume"`
}

// Overview computes the admin aggregate: system volume is total income
// minus total expense over all owners.
func Overview(allTxns []core.Transaction, ownerCount int) AdminOverview {
	var volume int64
	for _, t := range allTxns {
		switch t.Kind {
		case core.Income:
			volume += t.Amount.Units
		case core.Expense:
			volume -= t.Amount.Units
		}
	}
	return AdminOverview{
		OwnerCount:       ownerCount,
		TransactionCount: len(allTxns),
		SystemVolume:     core.NewMoney(volume),
	}
}
