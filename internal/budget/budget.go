package budget

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("budget not found")

// Budget is an owner's monthly expense ceiling. One budget per owner.
type Budget struct {
	OwnerID   uuid.UUID
	Amount    int64 // Ceiling in kobo (cents)
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Level classifies how close spending is to the ceiling.
type Level string

const (
	LevelNormal   Level = "normal"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Evaluation is the outcome of comparing month-to-date expenses against
// a budget. Configured is false when no budget is set; PercentUsed and
// Level are only meaningful when it is true.
type Evaluation struct {
	Configured    bool
	Amount        int64
	MonthExpenses int64
	PercentUsed   float64
	Level         Level
}

// Evaluate computes the percentage of the budget consumed by the given
// current-month expense total. A nil budget yields the unconfigured
// sentinel rather than an error, so callers can render "no budget set"
// directly. Thresholds: critical at 90% and warning at 75%, both
// inclusive.
func Evaluate(b *Budget, monthExpenses int64) Evaluation {
	if b == nil {
		return Evaluation{}
	}

	percent := float64(monthExpenses) / float64(b.Amount) * 100

	level := LevelNormal

	switch {
	case percent >= 90:
		level = LevelCritical
	case percent >= 75:
		level = LevelWarning
	}

	return Evaluation{
		Configured:    true,
		Amount:        b.Amount,
		MonthExpenses: monthExpenses,
		PercentUsed:   percent,
		Level:         level,
	}
}
