// Package analytics derives time-windowed and category-windowed sums
// from transaction records. All functions are pure and operate on
// amounts in kobo (cents); conversion to decimal display values is the
// caller's concern.
package analytics

import (
	"sort"
	"time"

	"github.com/osadebe/kobo/internal/transaction"
)

// DayTotal is the income and expense sum for one calendar day.
type DayTotal struct {
	Date    time.Time
	Income  int64
	Expense int64
}

// Summary holds overall income, expense and net sums.
type Summary struct {
	Income  int64
	Expense int64
	Net     int64
}

// AggregateByDay groups transactions into per-day income/expense sums
// over the closed window [start, end], sorted ascending by day. A zero
// end means end of the current UTC day. Days are UTC calendar days.
func AggregateByDay(txs []*transaction.Transaction, start, end time.Time) []DayTotal {
	if end.IsZero() {
		end = endOfDay(time.Now().UTC())
	}

	grouped := make(map[time.Time]*DayTotal)

	for _, tx := range txs {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}

		day := truncateToDay(tx.Date)

		dt, ok := grouped[day]
		if !ok {
			dt = &DayTotal{Date: day}
			grouped[day] = dt
		}

		switch tx.Type {
		case transaction.TypeIncome:
			dt.Income += tx.Amount
		case transaction.TypeExpense:
			dt.Expense += tx.Amount
		}
	}

	out := make([]DayTotal, 0, len(grouped))
	for _, dt := range grouped {
		out = append(out, *dt)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}

// Totals sums income and expense amounts over all given transactions.
// Net is income minus expense; amounts are accumulated as-is, no sign
// inversion is stored on the records.
func Totals(txs []*transaction.Transaction) Summary {
	var s Summary

	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			s.Income += tx.Amount
		case transaction.TypeExpense:
			s.Expense += tx.Amount
		}
	}

	s.Net = s.Income - s.Expense

	return s
}

// ExpensesByCategory sums expense amounts per category for the given
// calendar month (UTC).
func ExpensesByCategory(txs []*transaction.Transaction, month time.Month, year int) map[string]int64 {
	out := make(map[string]int64)

	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}

		d := tx.Date.UTC()
		if d.Month() != month || d.Year() != year {
			continue
		}

		out[tx.Category] += tx.Amount
	}

	return out
}

// MonthExpenseTotal sums all expense amounts in the given calendar
// month (UTC). Used for budget progress.
func MonthExpenseTotal(txs []*transaction.Transaction, month time.Month, year int) int64 {
	var total int64

	for _, amount := range ExpensesByCategory(txs, month, year) {
		total += amount
	}

	return total
}

func truncateToDay(t time.Time) time.Time {
	d := t.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
}
