package account_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/osadebe/kobo/internal/account"
)

func TestService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	owner := uuid.New()

	// The repository decides the default flag atomically with the
	// insert; the service passes it through untouched.
	repo.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *account.Account) error {
			a.ID = uuid.New()
			a.IsDefault = true
			a.CreatedAt = time.Now()
			return nil
		})

	got, err := svc.Create(context.Background(), account.CreateParams{
		OwnerID:        owner,
		Name:           "Everyday",
		Type:           account.TypeCurrent,
		OpeningBalance: 250000,
	})
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.Equal(t, int64(250000), got.Balance)
	assert.Equal(t, owner, got.OwnerID)
}

func TestService_Create_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	repo.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(errors.New("db error"))

	_, err := svc.Create(context.Background(), account.CreateParams{
		OwnerID: uuid.New(),
		Name:    "Rainy Day",
		Type:    account.TypeSavings,
	})
	assert.Error(t, err)
}

func TestService_SetDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	owner := uuid.New()
	target := uuid.New()
	after := []*account.Account{
		{ID: uuid.New(), OwnerID: owner},
		{ID: target, OwnerID: owner, IsDefault: true},
	}

	repo.EXPECT().SwapDefault(gomock.Any(), owner, target).Return(nil)
	repo.EXPECT().ListAccounts(gomock.Any(), owner).Return(after, nil)

	got, err := svc.SetDefault(context.Background(), owner, target)
	require.NoError(t, err)
	assert.Equal(t, after, got)
}

func TestService_SetDefault_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	owner := uuid.New()
	target := uuid.New()

	repo.EXPECT().SwapDefault(gomock.Any(), owner, target).Return(account.ErrNotFound)

	_, err := svc.SetDefault(context.Background(), owner, target)
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestService_Delete_DefaultWithSiblingsRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	owner := uuid.New()
	target := &account.Account{ID: uuid.New(), OwnerID: owner, IsDefault: true}
	sibling := &account.Account{ID: uuid.New(), OwnerID: owner}

	repo.EXPECT().GetAccount(gomock.Any(), owner, target.ID).Return(target, nil)
	repo.EXPECT().ListAccounts(gomock.Any(), owner).Return([]*account.Account{target, sibling}, nil)

	err := svc.Delete(context.Background(), owner, target.ID)
	assert.ErrorIs(t, err, account.ErrLastDefault)
}

func TestService_Delete_LastAccountAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	owner := uuid.New()
	target := &account.Account{ID: uuid.New(), OwnerID: owner, IsDefault: true}

	repo.EXPECT().GetAccount(gomock.Any(), owner, target.ID).Return(target, nil)
	repo.EXPECT().ListAccounts(gomock.Any(), owner).Return([]*account.Account{target}, nil)
	repo.EXPECT().DeleteAccount(gomock.Any(), owner, target.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), owner, target.ID))
}

func TestService_Delete_NonDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	owner := uuid.New()
	target := &account.Account{ID: uuid.New(), OwnerID: owner}

	repo.EXPECT().GetAccount(gomock.Any(), owner, target.ID).Return(target, nil)
	repo.EXPECT().DeleteAccount(gomock.Any(), owner, target.ID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), owner, target.ID))
}
