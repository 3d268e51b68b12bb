package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/account"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, owner_id, name, type, balance, is_default,
// transaction_count, created_at, updated_at
func scanAccount(s scanner) (*account.Account, error) {
	var a account.Account

	var typeStr string

	if err := s.Scan(
		&a.ID, &a.OwnerID, &a.Name, &typeStr, &a.Balance, &a.IsDefault,
		&a.TransactionCount, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}

	a.Type = account.Type(typeStr)

	return &a, nil
}

const selectAccountColumns = `
	a.id, a.owner_id, a.name, a.type, a.balance, a.is_default,
	(SELECT COUNT(*) FROM transactions t WHERE t.account_id = a.id AND t.deleted_at IS NULL) AS transaction_count,
	a.created_at, a.updated_at
`

// CreateAccount inserts the account. The default flag is decided inside
// the statement: an owner's first account takes it, so two concurrent
// first inserts cannot both claim it from a stale read.
func (s *Store) CreateAccount(ctx context.Context, a *account.Account) error {
	query := `
		INSERT INTO accounts (owner_id, name, type, balance, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOT EXISTS (SELECT 1 FROM accounts WHERE owner_id = $1), NOW(), NOW())
		RETURNING id, is_default, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		a.OwnerID,
		a.Name,
		a.Type,
		a.Balance,
	).Scan(&a.ID, &a.IsDefault, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating account: %w", err)
	}

	return nil
}

func (s *Store) GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		WHERE a.id = $1 AND a.owner_id = $2`

	a, err := scanAccount(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}

		return nil, fmt.Errorf("getting account: %w", err)
	}

	return a, nil
}

func (s *Store) ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*account.Account, error) {
	query := `SELECT ` + selectAccountColumns + `
		FROM accounts a
		WHERE a.owner_id = $1
		ORDER BY a.created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account

	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		accounts = append(accounts, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return accounts, nil
}

// SwapDefault moves the default flag to the given account. Clearing the
// previous default and setting the new one happen in one database
// transaction, so concurrent calls serialize on the owner's rows and
// the owner always ends up with exactly one default.
func (s *Store) SwapDefault(ctx context.Context, ownerID, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning swap default tx: %w", err)
	}
	defer dbTx.Rollback()

	setQuery := `
		UPDATE accounts
		SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1 AND owner_id = $2
	`

	res, err := dbTx.ExecContext(ctx, setQuery, id, ownerID)
	if err != nil {
		return fmt.Errorf("setting default account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	clearQuery := `
		UPDATE accounts
		SET is_default = FALSE, updated_at = NOW()
		WHERE owner_id = $1 AND id <> $2 AND is_default
	`

	if _, err := dbTx.ExecContext(ctx, clearQuery, ownerID, id); err != nil {
		return fmt.Errorf("clearing previous default: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing swap default: %w", err)
	}

	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `DELETE FROM accounts WHERE id = $1 AND owner_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting account: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return account.ErrNotFound
	}

	return nil
}
