package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error

	ListTransactions(ctx context.Context, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id uuid.UUID) error
	DeleteTransactions(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error)

	BeginImport(ctx context.Context, ownerID uuid.UUID, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID           uuid.UUID
	AccountID         uuid.UUID
	Amount            int64
	Type              Type
	Category          string
	Description       string
	Date              time.Time
	IsRecurring       bool
	RecurringInterval Interval
}

type ListFilter struct {
	OwnerID   uuid.UUID
	AccountID *uuid.UUID
	Type      *Type
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx := &Transaction{
		OwnerID:     params.OwnerID,
		AccountID:   params.AccountID,
		Amount:      params.Amount,
		Type:        params.Type,
		Category:    params.Category,
		Description: params.Description,
		Date:        params.Date,
		IsRecurring: params.IsRecurring,
	}

	if params.IsRecurring {
		next, err := NextOccurrence(params.Date, params.RecurringInterval)
		if err != nil {
			return nil, err
		}

		interval := params.RecurringInterval
		tx.RecurringInterval = &interval
		tx.NextRecurringDate = &next
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Transaction, error) {
	return s.repo.GetTransaction(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, filter)
}

// Update persists tx after re-establishing the recurrence invariant: a
// recurring transaction always carries an interval and a next date, a
// one-off carries neither.
func (s *Service) Update(ctx context.Context, tx *Transaction) error {
	if tx.IsRecurring {
		if tx.RecurringInterval == nil {
			return fmt.Errorf("%w: recurring transaction without interval", ErrInvalidInterval)
		}

		next, err := NextOccurrence(tx.Date, *tx.RecurringInterval)
		if err != nil {
			return err
		}

		tx.NextRecurringDate = &next
	} else {
		tx.RecurringInterval = nil
		tx.NextRecurringDate = nil
	}

	return s.repo.UpdateTransaction(ctx, tx)
}

func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, ownerID, id)
}

// BulkDelete removes the given transactions of one owner and returns
// how many were actually deleted.
func (s *Service) BulkDelete(ctx context.Context, ownerID uuid.UUID, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	return s.repo.DeleteTransactions(ctx, ownerID, ids)
}

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

// ImportBatch inserts a batch of parsed statement rows, skipping the
// whole batch when duplicates of existing transactions are detected so
// the caller can review the conflicts first.
func (s *Service) ImportBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	type dupKey struct {
		Date        string
		Amount      int64
		Type        Type
		Description string
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))

	for _, d := range duplicates {
		k := dupKey{
			Date:        d.Date.Format(time.DateOnly),
			Amount:      d.Amount,
			Type:        d.Type,
			Description: d.Description,
		}
		lookup[k] = d
	}

	var newParams []CreateParams

	var conflicts []Conflict

	for _, p := range params {
		k := dupKey{
			Date:        p.Date.Format(time.DateOnly),
			Amount:      p.Amount,
			Type:        p.Type,
			Description: p.Description,
		}

		existing, found := lookup[k]
		if found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs := paramsToTransactions(ownerID, newParams)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch inserts a batch without duplicate detection, used when
// the caller has already reviewed conflicts.
func (s *Service) CreateBatch(ctx context.Context, ownerID uuid.UUID, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, ownerID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	txs := paramsToTransactions(ownerID, params)
	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return txs, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}

func paramsToTransactions(ownerID uuid.UUID, params []CreateParams) []*Transaction {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = &Transaction{
			OwnerID:     ownerID,
			AccountID:   p.AccountID,
			Amount:      p.Amount,
			Type:        p.Type,
			Category:    p.Category,
			Description: p.Description,
			Date:        p.Date,
		}
	}

	return txs
}
