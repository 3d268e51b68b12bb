package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/budget"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetBudget(ctx context.Context, ownerID uuid.UUID) (*budget.Budget, error) {
	query := `
		SELECT owner_id, amount, created_at, updated_at
		FROM budgets
		WHERE owner_id = $1
	`

	var b budget.Budget

	err := s.db.QueryRowContext(ctx, query, ownerID).Scan(&b.OwnerID, &b.Amount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return &b, nil
}

func (s *Store) UpsertBudget(ctx context.Context, b *budget.Budget) error {
	query := `
		INSERT INTO budgets (owner_id, amount, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (owner_id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query, b.OwnerID, b.Amount).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}

	return nil
}
