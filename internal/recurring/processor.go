// Package recurring materializes due recurring transactions: for every
// transaction whose next occurrence date has passed, it records the
// occurrence and advances the date by one interval.
package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/osadebe/kobo/internal/transaction"
)

//go:generate mockgen -source=processor.go -destination=repository_mock.go -package=recurring
type Repository interface {
	// ListDue returns recurring transactions with a next occurrence
	// date at or before now.
	ListDue(ctx context.Context, now time.Time) ([]*transaction.Transaction, error)

	// Materialize inserts the occurrence and moves the template's next
	// occurrence date to next in one storage transaction. It reports
	// false without inserting when the template's date no longer equals
	// occurrence.Date, i.e. another worker already advanced it.
	Materialize(ctx context.Context, template, occurrence *transaction.Transaction, next time.Time) (bool, error)
}

type Processor struct {
	repo Repository
}

func NewProcessor(repo Repository) *Processor {
	return &Processor{repo: repo}
}

// Run processes all due recurring transactions as of now and returns
// how many occurrences were created. Individual failures are logged
// and skipped so one broken row cannot stall the rest.
func (p *Processor) Run(ctx context.Context, now time.Time) (int, error) {
	due, err := p.repo.ListDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("listing due recurring transactions: %w", err)
	}

	created := 0

	for _, t := range due {
		if t.RecurringInterval == nil || t.NextRecurringDate == nil {
			slog.Warn("skipping recurring transaction with missing recurrence fields", "id", t.ID)
			continue
		}

		occurrenceDate := *t.NextRecurringDate

		next, err := transaction.NextOccurrence(occurrenceDate, *t.RecurringInterval)
		if err != nil {
			slog.Error("failed to compute next occurrence", "id", t.ID, "error", err)
			continue
		}

		occurrence := &transaction.Transaction{
			OwnerID:     t.OwnerID,
			AccountID:   t.AccountID,
			Amount:      t.Amount,
			Type:        t.Type,
			Category:    t.Category,
			Description: t.Description,
			Date:        occurrenceDate,
		}

		advanced, err := p.repo.Materialize(ctx, t, occurrence, next)
		if err != nil {
			slog.Error("failed to materialize recurring transaction", "id", t.ID, "error", err)
			continue
		}

		if !advanced {
			continue
		}

		created++
	}

	return created, nil
}
