package service

import (
	"dompet/internal/analytics"
	"dompet/internal/core"
	"dompet/internal/cycle"
	"dompet/internal/store"
)

// Dashboard is the composite read model behind the main screen.
type Dashboard struct {
	Period       cycle.Period             `json:"period"`
	Summary      analytics.Summary        `json:"summary"`
	Trend        []analytics.TrendBucket  `json:"trend"`
	Distribution []analytics.CategorySum  `json:"distribution"`
	TopBudgets   []analytics.BudgetStatus `json:"top_budgets"`
	Upcoming     []core.Debt              `json:"upcoming"`
	Recent       []core.Transaction       `json:"recent"`
	NetWorth     core.Money               `json:"net_worth"`
}

const (
	dashboardTopBudgets  = 3
	dashboardRecentCount = 5
	defaultHorizonDays   = 7
)

// Dashboard assembles every headline read for one owner in a single
// consistent view of the store.
func (t *Tracker) Dashboard(ownerID string) (Dashboard, error) {
	period, err := t.ActivePeriod()
	if err != nil {
		return Dashboard{}, err
	}
	now := t.now()
	today := core.DateOf(now)

	var d Dashboard
	t.store.View(func(tx *store.Tx) {
		txns := tx.Transactions().ListByOwner(ownerID)
		wallets := tx.Wallets().ListByOwner(ownerID)
		budgets := tx.Budgets().ListByOwner(ownerID)
		debts := tx.Debts().ListByOwner(ownerID)
		assets := tx.Assets().ListByOwner(ownerID)

		statuses := analytics.BudgetStatuses(budgets, txns, period, func(b core.Budget) cycle.Period {
			return cycle.ForFrequency(b.Frequency, now)
		})

		d = Dashboard{
			Period:       period,
			Summary:      analytics.Summarize(txns, wallets),
			Trend:        analytics.Trend(txns, period.Start, period.End, analytics.Auto, analytics.AllCategories),
			Distribution: analytics.Distribution(txns, period.Start, period.End),
			TopBudgets:   analytics.TopBudgets(statuses, dashboardTopBudgets),
			Upcoming:     analytics.Upcoming(debts, today, t.horizon),
			Recent:       analytics.Recent(txns, dashboardRecentCount),
			NetWorth:     analytics.NetWorth(wallets, assets),
		}
	})
	return d, nil
}

// TrendSeries computes a trend over an explicit range.
func (t *Tracker) TrendSeries(ownerID string, start, end core.Date, g analytics.Granularity, category string) []analytics.TrendBucket {
	var out []analytics.TrendBucket
	t.store.View(func(tx *store.Tx) {
		out = analytics.Trend(tx.Transactions().ListByOwner(ownerID), start, end, g, category)
	})
	return out
}

// DistributionFor computes the expense distribution over a range.
func (t *Tracker) DistributionFor(ownerID string, start, end core.Date) []analytics.CategorySum {
	var out []analytics.CategorySum
	t.store.View(func(tx *store.Tx) {
		out = analytics.Distribution(tx.Transactions().ListByOwner(ownerID), start, end)
	})
	return out
}

// BudgetReport computes consumption for all of the owner's budgets, each
// scoped to the period its own frequency selects.
func (t *Tracker) BudgetReport(ownerID string) ([]analytics.BudgetStatus, error) {
	period, err := t.ActivePeriod()
	if err != nil {
		return nil, err
	}
	now := t.now()
	var out []analytics.BudgetStatus
	t.store.View(func(tx *store.Tx) {
		out = analytics.BudgetStatuses(
			tx.Budgets().ListByOwner(ownerID),
			tx.Transactions().ListByOwner(ownerID),
			period,
			func(b core.Budget) cycle.Period {
				return cycle.ForFrequency(b.Frequency, now)
			})
	})
	return out, nil
}

// UpcomingDebts lists unpaid obligations due within horizonDays of today.
// A non-positive horizon falls back to the configured one.
func (t *Tracker) UpcomingDebts(ownerID string, horizonDays int) []core.Debt {
	if horizonDays <= 0 {
		horizonDays = t.horizon
	}
	today := core.DateOf(t.now())
	var out []core.Debt
	t.store.View(func(tx *store.Tx) {
		out = analytics.Upcoming(tx.Debts().ListByOwner(ownerID), today, horizonDays)
	})
	return out
}

// Summary returns the owner's headline totals.
func (t *Tracker) Summary(ownerID string) analytics.Summary {
	var out analytics.Summary
	t.store.View(func(tx *store.Tx) {
		out = analytics.Summarize(
			tx.Transactions().ListByOwner(ownerID),
			tx.Wallets().ListByOwner(ownerID))
	})
	return out
}

// AdminOverview aggregates across all owners. Only the ADMIN role may
// call it; the identity collaborator supplies the role.
func (t *Tracker) AdminOverview(role string) (analytics.AdminOverview, error) {
	if role != RoleAdmin {
		return analytics.AdminOverview{}, core.ErrForbidden
	}
	owners := t.store.Owners()
	var out analytics.AdminOverview
	t.store.View(func(tx *store.Tx) {
		out = analytics.Overview(tx.Transactions().All(), len(owners))
	})
	return out, nil
}

// Roles supplied by the identity collaborator.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)
