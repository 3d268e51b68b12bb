package account

import (
	"context"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	// CreateAccount inserts a and fills its generated fields. The
	// owner's first account comes back with IsDefault set; the store
	// decides the flag atomically with the insert.
	CreateAccount(ctx context.Context, a *Account) error
	GetAccount(ctx context.Context, ownerID, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, ownerID uuid.UUID) ([]*Account, error)
	DeleteAccount(ctx context.Context, ownerID, id uuid.UUID) error

	// SwapDefault clears the previous default and sets id as the new
	// default for ownerID in a single storage transaction, so callers
	// never observe zero or two defaults. Returns ErrNotFound when id
	// does not belong to ownerID.
	SwapDefault(ctx context.Context, ownerID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID        uuid.UUID
	Name           string
	Type           Type
	OpeningBalance int64
}

// Create opens a new account. The storage layer makes an owner's first
// account the default.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	a := &Account{
		OwnerID: params.OwnerID,
		Name:    params.Name,
		Type:    params.Type,
		Balance: params.OpeningBalance,
	}

	if err := s.repo.CreateAccount(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) Get(ctx context.Context, ownerID, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, ownerID, id)
}

func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]*Account, error) {
	return s.repo.ListAccounts(ctx, ownerID)
}

// SetDefault makes id the owner's default account and returns the
// refreshed account set. The flag transfer happens atomically at the
// storage layer.
func (s *Service) SetDefault(ctx context.Context, ownerID, id uuid.UUID) ([]*Account, error) {
	if err := s.repo.SwapDefault(ctx, ownerID, id); err != nil {
		return nil, err
	}

	return s.repo.ListAccounts(ctx, ownerID)
}

// Delete removes an account. The default account can only be deleted
// when it is the owner's last account; otherwise the caller must move
// the default flag first.
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	a, err := s.repo.GetAccount(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if a.IsDefault {
		accounts, err := s.repo.ListAccounts(ctx, ownerID)
		if err != nil {
			return err
		}

		if len(accounts) > 1 {
			return ErrLastDefault
		}
	}

	return s.repo.DeleteAccount(ctx, ownerID, id)
}
