package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Type represents the kind of account.
type Type string

const (
	TypeCurrent Type = "CURRENT"
	TypeSavings Type = "SAVINGS"
)

var (
	ErrNotFound = errors.New("account not found")

	// ErrLastDefault is returned when an operation would leave the
	// owner with accounts but no default account.
	ErrLastDefault = errors.New("at least one default account is required")
)

// Account represents a financial account belonging to one owner.
// For a given owner at most one account has IsDefault set; as long as
// the owner has any account, exactly one is the default.
type Account struct {
	ID               uuid.UUID
	OwnerID          uuid.UUID
	Name             string
	Type             Type
	Balance          int64 // Balance in kobo (cents)
	IsDefault        bool
	TransactionCount int64
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}
