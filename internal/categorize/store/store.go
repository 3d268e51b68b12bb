package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// FindCategory returns the category of the longest rule whose pattern
// is contained in the description, most recent rule winning ties.
func (s *Store) FindCategory(ctx context.Context, ownerID uuid.UUID, description string) (string, error) {
	query := `
		SELECT category_id
		FROM category_rules
		WHERE owner_id = $1 AND $2 ILIKE '%' || pattern || '%'
		ORDER BY LENGTH(pattern) DESC, created_at DESC
		LIMIT 1
	`

	var categoryID string

	err := s.db.QueryRowContext(ctx, query, ownerID, description).Scan(&categoryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}

		return "", fmt.Errorf("finding category rule: %w", err)
	}

	return categoryID, nil
}

func (s *Store) CreateRule(ctx context.Context, ownerID uuid.UUID, pattern, categoryID string) error {
	query := `
		INSERT INTO category_rules (owner_id, pattern, category_id, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	_, err := s.db.ExecContext(ctx, query, ownerID, pattern, categoryID)
	if err != nil {
		return fmt.Errorf("creating category rule: %w", err)
	}

	return nil
}
