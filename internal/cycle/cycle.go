// Package cycle computes the active accounting period for a cycle policy.
// Bounds are inclusive calendar days in the caller's local calendar; no
// instant is ever converted through UTC.
package cycle

import (
	"fmt"
	"time"

	"dompet/internal/core"
)

// PolicyKind selects how periods are anchored.
type PolicyKind string

const (
	Monthly PolicyKind = "MONTHLY"
	Weekly  PolicyKind = "WEEKLY"
	Custom  PolicyKind = "CUSTOM"
)

// Policy is a recurring period definition. StartDay is only meaningful for
// Custom and is clamped to the anchor month's length at resolution time,
// so 31 behaves as "last day" in short months.
type Policy struct {
	Kind     PolicyKind `toml:"kind"`
	StartDay int        `toml:"start_day"`
}

// Period is an inclusive day range.
type Period struct {
	Start core.Date `json:"start"`
	End   core.Date `json:"end"`
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d core.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

func (p Policy) Validate() error {
	switch p.Kind {
	case Monthly, Weekly:
		return nil
	case Custom:
		if p.StartDay < 1 || p.StartDay > 31 {
			return fmt.Errorf("%w: cycle start day %d", core.ErrValidation, p.StartDay)
		}
		return nil
	default:
		return fmt.Errorf("%w: cycle kind %q", core.ErrValidation, p.Kind)
	}
}

// Resolve computes the active period containing now.
func Resolve(p Policy, now time.Time) (Period, error) {
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	today := core.DateOf(now)
	switch p.Kind {
	case Monthly:
		return monthOf(today), nil
	case Weekly:
		start := MondayOf(today)
		return Period{Start: start, End: start.AddDays(6)}, nil
	default:
		return customPeriod(today, p.StartDay), nil
	}
}

// ForFrequency maps a budget frequency onto the period containing now.
// DAILY is just today; YEARLY is the calendar year.
func ForFrequency(freq core.BudgetFrequency, now time.Time) Period {
	today := core.DateOf(now)
	switch freq {
	case core.FrequencyDaily:
		return Period{Start: today, End: today}
	case core.FrequencyWeekly:
		start := MondayOf(today)
		return Period{Start: start, End: start.AddDays(6)}
	case core.FrequencyYearly:
		return Period{
			Start: core.NewDate(today.Year(), time.January, 1),
			End:   core.NewDate(today.Year(), time.December, 31),
		}
	default:
		return monthOf(today)
	}
}

// MondayOf returns the most recent Monday on or before d.
func MondayOf(d core.Date) core.Date {
	// Weekday is Sunday=0; shift so Monday=0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

func monthOf(d core.Date) Period {
	start := core.NewDate(d.Year(), d.Month(), 1)
	end := core.NewDate(d.Year(), d.Month(), core.DaysInMonth(d.Year(), d.Month()))
	return Period{Start: start, End: end}
}

// customPeriod anchors the period on startDay. On or after the anchor the
// period runs to the day before next month's anchor; before it, from last
// month's anchor.
func customPeriod(today core.Date, startDay int) Period {
	anchor := anchorDate(today.Year(), today.Month(), startDay)
	if today.Before(anchor) {
		prevMonthEnd := core.NewDate(today.Year(), today.Month(), 1).AddDays(-1)
		start := anchorDate(prevMonthEnd.Year(), prevMonthEnd.Month(), startDay)
		return Period{Start: start, End: anchor.AddDays(-1)}
	}
	nextMonth := core.NewDate(today.Year(), today.Month(), 1).AddMonths(1)
	next := anchorDate(nextMonth.Year(), nextMonth.Month(), startDay)
	return Period{Start: anchor, End: next.AddDays(-1)}
}

// anchorDate clamps startDay into the month before building the date.
func anchorDate(year int, month time.Month, startDay int) core.Date {
	if max := core.DaysInMonth(year, month); startDay > max {
		startDay = max
	}
	return core.NewDate(year, month, startDay)
}
