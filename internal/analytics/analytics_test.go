package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadebe/kobo/internal/analytics"
	"github.com/osadebe/kobo/internal/transaction"
)

func tx(t transaction.Type, amount int64, category string, date time.Time) *transaction.Transaction {
	return &transaction.Transaction{
		Type:     t,
		Amount:   amount,
		Category: category,
		Date:     date,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregateByDay(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, 50000, "groceries", day(2024, time.March, 1)),
		tx(transaction.TypeIncome, 100000, "salary", day(2024, time.March, 2)),
		tx(transaction.TypeExpense, 20000, "food", day(2024, time.April, 1)),
	}

	got := analytics.AggregateByDay(txs, day(2024, time.March, 1), day(2024, time.March, 31))

	require.Len(t, got, 2)
	assert.Equal(t, day(2024, time.March, 1), got[0].Date)
	assert.Equal(t, int64(50000), got[0].Expense)
	assert.Zero(t, got[0].Income)
	assert.Equal(t, day(2024, time.March, 2), got[1].Date)
	assert.Equal(t, int64(100000), got[1].Income)
	assert.Zero(t, got[1].Expense)
}

func TestAggregateByDay_WindowInclusive(t *testing.T) {
	start := day(2024, time.March, 10)
	end := day(2024, time.March, 20)

	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, 100, "bills", day(2024, time.March, 9)),
		tx(transaction.TypeExpense, 200, "bills", start),
		tx(transaction.TypeExpense, 300, "bills", end),
		tx(transaction.TypeExpense, 400, "bills", day(2024, time.March, 21)),
	}

	got := analytics.AggregateByDay(txs, start, end)

	require.Len(t, got, 2)

	for _, dt := range got {
		assert.False(t, dt.Date.Before(start))
		assert.False(t, dt.Date.After(end))
	}
}

func TestAggregateByDay_GroupsSameDay(t *testing.T) {
	d := day(2024, time.March, 5)
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, 150, "food", d.Add(8*time.Hour)),
		tx(transaction.TypeExpense, 250, "food", d.Add(20*time.Hour)),
		tx(transaction.TypeIncome, 1000, "salary", d.Add(12*time.Hour)),
	}

	got := analytics.AggregateByDay(txs, d, day(2024, time.March, 6))

	require.Len(t, got, 1)
	assert.Equal(t, d, got[0].Date)
	assert.Equal(t, int64(400), got[0].Expense)
	assert.Equal(t, int64(1000), got[0].Income)
}

func TestAggregateByDay_ZeroEndDefaultsToToday(t *testing.T) {
	now := time.Now().UTC()
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, 500, "food", now),
		tx(transaction.TypeExpense, 900, "food", now.AddDate(0, 0, 2)),
	}

	got := analytics.AggregateByDay(txs, now.AddDate(0, 0, -1), time.Time{})

	require.Len(t, got, 1)
	assert.Equal(t, int64(500), got[0].Expense)
}

func TestTotals(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeIncome, 100000, "salary", day(2024, time.March, 2)),
		tx(transaction.TypeIncome, 2500, "freelance", day(2024, time.March, 9)),
		tx(transaction.TypeExpense, 50000, "groceries", day(2024, time.March, 1)),
		tx(transaction.TypeExpense, 199, "food", day(2024, time.March, 3)),
	}

	got := analytics.Totals(txs)

	assert.Equal(t, int64(102500), got.Income)
	assert.Equal(t, int64(50199), got.Expense)
	assert.Equal(t, got.Income-got.Expense, got.Net)
}

func TestTotals_Empty(t *testing.T) {
	got := analytics.Totals(nil)
	assert.Equal(t, analytics.Summary{}, got)
}

func TestExpensesByCategory(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, 50000, "groceries", day(2024, time.March, 1)),
		tx(transaction.TypeExpense, 12000, "groceries", day(2024, time.March, 15)),
		tx(transaction.TypeExpense, 8000, "food", day(2024, time.March, 20)),
		// Outside the month or not an expense:
		tx(transaction.TypeExpense, 99999, "food", day(2024, time.April, 1)),
		tx(transaction.TypeIncome, 77777, "salary", day(2024, time.March, 10)),
	}

	got := analytics.ExpensesByCategory(txs, time.March, 2024)

	assert.Equal(t, map[string]int64{
		"groceries": 62000,
		"food":      8000,
	}, got)
}

func TestMonthExpenseTotal(t *testing.T) {
	txs := []*transaction.Transaction{
		tx(transaction.TypeExpense, 100, "a", day(2024, time.March, 1)),
		tx(transaction.TypeExpense, 200, "b", day(2024, time.March, 2)),
		tx(transaction.TypeExpense, 400, "c", day(2024, time.February, 2)),
	}

	assert.Equal(t, int64(300), analytics.MonthExpenseTotal(txs, time.March, 2024))
}
