package transaction_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osadebe/kobo/internal/transaction"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNextOccurrence(t *testing.T) {
	type testCase struct {
		name     string
		date     time.Time
		interval transaction.Interval
		want     time.Time
	}

	tests := []testCase{
		{
			name:     "Daily",
			date:     date(2024, time.March, 15),
			interval: transaction.IntervalDaily,
			want:     date(2024, time.March, 16),
		},
		{
			name:     "DailyAcrossMonthEnd",
			date:     date(2024, time.January, 31),
			interval: transaction.IntervalDaily,
			want:     date(2024, time.February, 1),
		},
		{
			name:     "Weekly",
			date:     date(2024, time.March, 28),
			interval: transaction.IntervalWeekly,
			want:     date(2024, time.April, 4),
		},
		{
			name:     "Monthly",
			date:     date(2024, time.March, 15),
			interval: transaction.IntervalMonthly,
			want:     date(2024, time.April, 15),
		},
		{
			name:     "MonthlyFromJan31ClampsToFeb29",
			date:     date(2024, time.January, 31),
			interval: transaction.IntervalMonthly,
			want:     date(2024, time.February, 29),
		},
		{
			name:     "MonthlyFromJan31ClampsToFeb28",
			date:     date(2023, time.January, 31),
			interval: transaction.IntervalMonthly,
			want:     date(2023, time.February, 28),
		},
		{
			name:     "MonthlyFromMay31ClampsToJun30",
			date:     date(2024, time.May, 31),
			interval: transaction.IntervalMonthly,
			want:     date(2024, time.June, 30),
		},
		{
			name:     "MonthlyAcrossYearEnd",
			date:     date(2024, time.December, 31),
			interval: transaction.IntervalMonthly,
			want:     date(2025, time.January, 31),
		},
		{
			name:     "Yearly",
			date:     date(2024, time.March, 15),
			interval: transaction.IntervalYearly,
			want:     date(2025, time.March, 15),
		},
		{
			name:     "YearlyFromLeapDayClampsToFeb28",
			date:     date(2024, time.February, 29),
			interval: transaction.IntervalYearly,
			want:     date(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := transaction.NextOccurrence(tt.date, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextOccurrence_PreservesTimeOfDay(t *testing.T) {
	d := time.Date(2024, time.January, 31, 9, 30, 0, 0, time.UTC)

	got, err := transaction.NextOccurrence(d, transaction.IntervalMonthly)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.February, 29, 9, 30, 0, 0, time.UTC), got)
}

func TestNextOccurrence_InvalidInterval(t *testing.T) {
	_, err := transaction.NextOccurrence(date(2024, time.March, 15), transaction.Interval("FORTNIGHTLY"))
	assert.ErrorIs(t, err, transaction.ErrInvalidInterval)
}
