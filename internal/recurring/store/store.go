package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/osadebe/kobo/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListDue(ctx context.Context, now time.Time) ([]*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.owner_id, t.account_id, t.amount, t.type, t.category, t.description,
			t.date, t.is_recurring, t.recurring_interval, t.next_recurring_date,
			t.created_at, t.updated_at, t.deleted_at
		FROM transactions t
		WHERE t.is_recurring AND t.deleted_at IS NULL AND t.next_recurring_date <= $1
		ORDER BY t.next_recurring_date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("listing due recurring transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		var tx transaction.Transaction

		var typeStr string

		var interval sql.NullString

		var nextDate sql.NullTime

		if err := rows.Scan(
			&tx.ID, &tx.OwnerID, &tx.AccountID, &tx.Amount, &typeStr, &tx.Category,
			&tx.Description, &tx.Date, &tx.IsRecurring, &interval, &nextDate,
			&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning recurring transaction: %w", err)
		}

		tx.Type = transaction.Type(typeStr)

		if interval.Valid {
			iv := transaction.Interval(interval.String)
			tx.RecurringInterval = &iv
		}

		if nextDate.Valid {
			tx.NextRecurringDate = &nextDate.Time
		}

		txs = append(txs, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating due rows: %w", err)
	}

	return txs, nil
}

// Materialize advances the template's next occurrence date and inserts
// the occurrence row in one database transaction. The date advance is
// conditional on the stored date still matching occurrence.Date, so a
// concurrent worker that already rolled the template over causes this
// call to report false instead of inserting a duplicate.
func (s *Store) Materialize(ctx context.Context, template, occurrence *transaction.Transaction, next time.Time) (bool, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("beginning rollover tx: %w", err)
	}
	defer dbTx.Rollback()

	advanceQuery := `
		UPDATE transactions
		SET next_recurring_date = $1, updated_at = NOW()
		WHERE id = $2 AND is_recurring AND deleted_at IS NULL AND next_recurring_date = $3
	`

	res, err := dbTx.ExecContext(ctx, advanceQuery, next, template.ID, occurrence.Date)
	if err != nil {
		return false, fmt.Errorf("advancing next occurrence date: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return false, nil
	}

	insertQuery := `
		INSERT INTO transactions (owner_id, account_id, amount, type, category, description, date,
			is_recurring, recurring_interval, next_recurring_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, NULL, NULL, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, insertQuery,
		occurrence.OwnerID,
		occurrence.AccountID,
		occurrence.Amount,
		occurrence.Type,
		occurrence.Category,
		occurrence.Description,
		occurrence.Date,
	).Scan(&occurrence.ID, &occurrence.CreatedAt, &occurrence.UpdatedAt)
	if err != nil {
		return false, fmt.Errorf("inserting occurrence: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return false, fmt.Errorf("committing rollover: %w", err)
	}

	template.NextRecurringDate = &next

	return true, nil
}
