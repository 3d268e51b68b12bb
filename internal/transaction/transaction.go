package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the type of transaction (income or expense).
type Type string

const (
	TypeIncome  Type = "INCOME"
	TypeExpense Type = "EXPENSE"
)

// Interval is the cadence at which a recurring transaction repeats.
type Interval string

const (
	IntervalDaily   Interval = "DAILY"
	IntervalWeekly  Interval = "WEEKLY"
	IntervalMonthly Interval = "MONTHLY"
	IntervalYearly  Interval = "YEARLY"
)

var (
	ErrNotFound        = errors.New("transaction not found")
	ErrInvalidInterval = errors.New("invalid recurrence interval")
)

// Transaction represents a financial transaction on an account.
// RecurringInterval and NextRecurringDate are set if and only if
// IsRecurring is true.
type Transaction struct {
	ID                uuid.UUID
	OwnerID           uuid.UUID
	AccountID         uuid.UUID
	Amount            int64 // Amount in kobo (cents)
	Type              Type
	Category          string
	Description       string
	Date              time.Time
	IsRecurring       bool
	RecurringInterval *Interval
	NextRecurringDate *time.Time
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
}
