// Package analytics turns the raw transaction log into display-ready
// series. Every function here is pure: inputs are never mutated, outputs
// are deterministic, and empty results are valid, not errors.
package analytics

import (
	"sort"

	"dompet/internal/core"
	"dompet/internal/cycle"
)

// Granularity selects the trend bucket width. Auto picks daily for ranges
// up to 31 days and monthly beyond that.
type Granularity string

const (
	Auto    Granularity = "AUTO"
	Daily   Granularity = "DAILY"
	Weekly  Granularity = "WEEKLY"
	Monthly Granularity = "MONTHLY"
)

// AllCategories disables the trend category filter.
const AllCategories = ""

// TrendBucket is one time-aligned slot in a trend series.
type TrendBucket struct {
	// Key is the bucket label: YYYY-MM-DD for daily and weekly (the
	// week's Monday) buckets, YYYY-MM for monthly.
	Key     string     `json:"key"`
	Start   core.Date  `json:"start"`
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
}

// Trend produces the ordered, gap-free bucket series covering [start, end].
// Weekly buckets align to Monday-start weeks and monthly buckets to
// calendar months; a bucket appears whenever it overlaps the range. Only
// transactions dated inside [start, end] are counted, filtered by category
// when one is given.
func Trend(txns []core.Transaction, start, end core.Date, g Granularity, category string) []TrendBucket {
	if start.After(end) {
		return nil
	}
	if g == Auto || g == "" {
		if start.DaysUntil(end) < 31 {
			g = Daily
		} else {
			g = Monthly
		}
	}

	buckets, index := makeBuckets(start, end, g)
	for _, t := range txns {
		if t.Kind != core.Income && t.Kind != core.Expense {
			continue
		}
		if category != AllCategories && t.Category != category {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		i, ok := index[bucketKey(t.Date, g)]
		if !ok {
			continue
		}
		if t.Kind == core.Income {
			buckets[i].Income = buckets[i].Income.Add(t.Amount)
		} else {
			buckets[i].Expense = buckets[i].Expense.Add(t.Amount)
		}
	}
	return buckets
}

func makeBuckets(start, end core.Date, g Granularity) ([]TrendBucket, map[string]int) {
	var out []TrendBucket
	index := make(map[string]int)
	add := func(d core.Date) {
		key := bucketKey(d, g)
		index[key] = len(out)
		out = append(out, TrendBucket{Key: key, Start: d})
	}
	switch g {
	case Daily:
		for d := start; !d.After(end); d = d.AddDays(1) {
			add(d)
		}
	case Weekly:
		for d := cycle.MondayOf(start); !d.After(end); d = d.AddDays(7) {
			add(d)
		}
	default:
		for d := core.NewDate(start.Year(), start.Month(), 1); !d.After(end); d = d.AddMonths(1) {
			add(d)
		}
	}
	return out, index
}

func bucketKey(d core.Date, g Granularity) string {
	switch g {
	case Daily:
		return d.String()
	case Weekly:
		return cycle.MondayOf(d).String()
	default:
		return d.MonthKey()
	}
}

// CategorySum is one slice of the expense distribution.
type CategorySum struct {
	Category string     `json:"category"`
	Total    core.Money `json:"total"`
}

// Distribution sums EXPENSE transactions dated in [start, end] by
// category, descending by total. Ties keep first-encounter order.
func Distribution(txns []core.Transaction, start, end core.Date) []CategorySum {
	totals := make(map[string]int64)
	var order []string
	for _, t := range txns {
		if t.Kind != core.Expense {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		if _, ok := totals[t.Category]; !ok {
			order = append(order, t.Category)
		}
		totals[t.Category] += t.Amount.Units
	}
	out := make([]CategorySum, 0, len(order))
	for _, cat := range order {
		out = append(out, CategorySum{Category: cat, Total: core.NewMoney(totals[cat])})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.Units > out[j].Total.Units
	})
	return out
}

// BudgetStatus annotates a budget with its consumption over a period.
type BudgetStatus struct {
	core.Budget
	Spent   core.Money `json:"spent"`
	Percent float64    `json:"percent"`
}

// BudgetStatuses computes spent and percent for each budget over its
// period, descending by percent. periodFor lets the caller scope each
// budget by its own frequency; a nil periodFor uses the fixed period.
func BudgetStatuses(budgets []core.Budget, txns []core.Transaction, period cycle.Period, periodFor func(core.Budget) cycle.Period) []BudgetStatus {
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		p := period
		if periodFor != nil {
			p = periodFor(b)
		}
		var spent int64
		for _, t := range txns {
			if t.Kind != core.Expense || t.Category != b.Category {
				continue
			}
			if p.Contains(t.Date) {
				spent += t.Amount.Units
			}
		}
		status := BudgetStatus{Budget: b, Spent: core.NewMoney(spent)}
		if b.Limit.Units > 0 {
			// Percent is display-only; this is the one place floats appear.
			status.Percent = float64(spent) / float64(b.Limit.Units) * 100
		}
		out = append(out, status)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percent > out[j].Percent
	})
	return out
}

// TopBudgets truncates a status list for summary widgets.
func TopBudgets(statuses []BudgetStatus, n int) []BudgetStatus {
	if n < 0 || n >= len(statuses) {
		return statuses
	}
	return statuses[:n]
}

// Upcoming filters unpaid DEBT and BILL obligations due within horizonDays
// of ref (both ends inclusive), ascending by due date.
func Upcoming(debts []core.Debt, ref core.Date, horizonDays int) []core.Debt {
	limit := ref.AddDays(horizonDays)
	var out []core.Debt
	for _, d := range debts {
		if d.IsPaid {
			continue
		}
		if d.Kind != core.DebtOwed && d.Kind != core.DebtBill {
			continue
		}
		if d.DueDate.Before(ref) || d.DueDate.After(limit) {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

// Recent returns the n most recent transactions, descending by date.
// Same-day entries keep their stored order.
func Recent(txns []core.Transaction, n int) []core.Transaction {
	out := make([]core.Transaction, len(txns))
	copy(out, txns)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
