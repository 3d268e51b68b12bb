package budget

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/analytics"
	"github.com/osadebe/kobo/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=budget
type Repository interface {
	GetBudget(ctx context.Context, ownerID uuid.UUID) (*Budget, error)
	UpsertBudget(ctx context.Context, b *Budget) error
}

// TransactionLister is satisfied by transaction.Service.
type TransactionLister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.Transaction, error)
}

type Service struct {
	repo         Repository
	transactions TransactionLister
}

func NewService(repo Repository, transactions TransactionLister) *Service {
	return &Service{repo: repo, transactions: transactions}
}

func (s *Service) Get(ctx context.Context, ownerID uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, ownerID)
}

// Upsert creates or replaces the owner's budget ceiling.
func (s *Service) Upsert(ctx context.Context, ownerID uuid.UUID, amount int64) (*Budget, error) {
	b := &Budget{OwnerID: ownerID, Amount: amount}
	if err := s.repo.UpsertBudget(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// Progress evaluates the owner's budget against the current calendar
// month's expenses as of now. A missing budget yields the unconfigured
// evaluation, not an error.
func (s *Service) Progress(ctx context.Context, ownerID uuid.UUID, now time.Time) (Evaluation, error) {
	b, err := s.repo.GetBudget(ctx, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Evaluation{}, nil
		}

		return Evaluation{}, err
	}

	now = now.UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	expenseType := transaction.TypeExpense

	txs, err := s.transactions.List(ctx, transaction.ListFilter{
		OwnerID:   ownerID,
		Type:      &expenseType,
		StartDate: &monthStart,
		EndDate:   &monthEnd,
	})
	if err != nil {
		return Evaluation{}, err
	}

	return Evaluate(b, analytics.MonthExpenseTotal(txs, now.Month(), now.Year())), nil
}
