package store

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a transaction row from the scanner.
// Expected column order: id, owner_id, account_id, amount, type, category,
// description, date, is_recurring, recurring_interval, next_recurring_date,
// created_at, updated_at, deleted_at
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var typeStr string

	var interval sql.NullString

	var nextDate sql.NullTime

	if err := s.Scan(
		&tx.ID, &tx.OwnerID, &tx.AccountID, &tx.Amount, &typeStr, &tx.Category,
		&tx.Description, &tx.Date, &tx.IsRecurring, &interval, &nextDate,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.DeletedAt,
	); err != nil {
		return nil, err
	}

	tx.Type = transaction.Type(typeStr)

	if interval.Valid {
		iv := transaction.Interval(interval.String)
		tx.RecurringInterval = &iv
	}

	if nextDate.Valid {
		tx.NextRecurringDate = &nextDate.Time
	}

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.owner_id, t.account_id, t.amount, t.type, t.category, t.description,
	t.date, t.is_recurring, t.recurring_interval, t.next_recurring_date,
	t.created_at, t.updated_at, t.deleted_at
`

const insertTransactionQuery = `
	INSERT INTO transactions (owner_id, account_id, amount, type, category, description, date,
		is_recurring, recurring_interval, next_recurring_date, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
	RETURNING id, created_at, updated_at
`

func intervalArg(tx *transaction.Transaction) any {
	if tx.RecurringInterval == nil {
		return nil
	}

	return string(*tx.RecurringInterval)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	err := s.db.QueryRowContext(ctx, insertTransactionQuery,
		tx.OwnerID,
		tx.AccountID,
		tx.Amount,
		tx.Type,
		tx.Category,
		tx.Description,
		tx.Date,
		tx.IsRecurring,
		intervalArg(tx),
		tx.NextRecurringDate,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.id = $1 AND t.owner_id = $2 AND t.deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.owner_id = $1 AND t.deleted_at IS NULL`

	args := []any{filter.OwnerID}

	argIdx := 2

	if filter.AccountID != nil {
		query += fmt.Sprintf(" AND t.account_id = $%d", argIdx)

		args = append(args, *filter.AccountID)
		argIdx++
	}

	if filter.Type != nil {
		query += fmt.Sprintf(" AND t.type = $%d", argIdx)

		args = append(args, *filter.Type)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.date ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		UPDATE transactions
		SET account_id = $1, amount = $2, type = $3, category = $4, description = $5, date = $6,
			is_recurring = $7, recurring_interval = $8, next_recurring_date = $9, updated_at = NOW()
		WHERE id = $10 AND owner_id = $11 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query,
		tx.AccountID,
		tx.Amount,
		tx.Type,
		tx.Category,
		tx.Description,
		tx.Date,
		tx.IsRecurring,
		intervalArg(tx),
		tx.NextRecurringDate,
		tx.ID,
		tx.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE id = $1 AND owner_id = $2 AND deleted_at IS NULL
	`

	res, err := s.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteTransactions(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	query := `
		UPDATE transactions
		SET deleted_at = NOW()
		WHERE owner_id = $1 AND id = ANY($2::uuid[]) AND deleted_at IS NULL
	`

	idStrs := make([]string, len(ids))
	for i, id := range ids {
		idStrs[i] = id.String()
	}

	res, err := s.db.ExecContext(ctx, query, ownerID, idStrs)
	if err != nil {
		return 0, fmt.Errorf("bulk deleting transactions: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted transactions: %w", err)
	}

	return n, nil
}

func importLockKey(ownerID uuid.UUID, minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(ownerID.String()))
	h.Write([]byte{0})
	h.Write([]byte(minDate.Format("2006-01-02")))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format("2006-01-02")))

	return int64(h.Sum64())
}

type importTx struct {
	tx      *sql.Tx
	ownerID uuid.UUID
}

func (s *Store) BeginImport(ctx context.Context, ownerID uuid.UUID, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	lockKey := importLockKey(ownerID, minDate, maxDate)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, ownerID: ownerID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date        string
		Amount      int64
		Type        transaction.Type
		Description string
	}

	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[lookupKey{
			Date:        p.Date.Format("2006-01-02"),
			Amount:      p.Amount,
			Type:        p.Type,
			Description: p.Description,
		}] = struct{}{}
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		WHERE t.owner_id = $1 AND t.deleted_at IS NULL AND t.date >= $2 AND t.date <= $3
		ORDER BY t.date ASC`

	rows, err := itx.tx.QueryContext(ctx, query, itx.ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		k := lookupKey{
			Date:        tx.Date.Format("2006-01-02"),
			Amount:      tx.Amount,
			Type:        tx.Type,
			Description: tx.Description,
		}

		_, found := keySet[k]
		if !found {
			continue
		}

		duplicates = append(duplicates, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		err := itx.tx.QueryRowContext(ctx, insertTransactionQuery,
			tx.OwnerID,
			tx.AccountID,
			tx.Amount,
			tx.Type,
			tx.Category,
			tx.Description,
			tx.Date,
			tx.IsRecurring,
			intervalArg(tx),
			tx.NextRecurringDate,
		).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
		if err != nil {
			return fmt.Errorf("creating transaction: %w", err)
		}
	}

	return nil
}
