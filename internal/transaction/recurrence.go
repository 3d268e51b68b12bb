package transaction

import (
	"fmt"
	"time"
)

// NextOccurrence returns the date exactly one interval after d, using
// calendar arithmetic. Month and year steps clamp to the last valid day
// of the target month, so MONTHLY from Jan 31 lands on Feb 28 (or 29 in
// a leap year) and YEARLY from Feb 29 lands on Feb 28.
func NextOccurrence(d time.Time, interval Interval) (time.Time, error) {
	switch interval {
	case IntervalDaily:
		return d.AddDate(0, 0, 1), nil
	case IntervalWeekly:
		return d.AddDate(0, 0, 7), nil
	case IntervalMonthly:
		return addMonthsClamped(d, 1), nil
	case IntervalYearly:
		return addYearsClamped(d, 1), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidInterval, interval)
}

// addMonthsClamped advances d by n months, clamping the day of month to
// the last day of the target month. time.AddDate alone would normalize
// Jan 31 + 1 month to Mar 3.
func addMonthsClamped(d time.Time, n int) time.Time {
	year, month, day := d.Date()

	first := time.Date(year, month+time.Month(n), 1, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}

	return first.AddDate(0, 0, day-1)
}

func addYearsClamped(d time.Time, n int) time.Time {
	year, month, day := d.Date()

	if last := daysIn(year+n, month); day > last {
		day = last
	}

	return time.Date(year+n, month, day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
