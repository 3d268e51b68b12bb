package view

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an amount stored in kobo as naira.
func FormatAmount(kobo int64) string {
	return fmt.Sprintf("₦%.2f", float64(kobo)/100.0)
}

// ParseAmount parses a naira amount entered by the user into kobo.
func ParseAmount(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount")
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// FormatDate formats a time.Time into YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}
