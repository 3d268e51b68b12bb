package transaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/osadebe/kobo/internal/transaction"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params transaction.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *transaction.MockRepository)
		check     func(t *testing.T, tx *transaction.Transaction)
		wantErr   error
	}

	txDate := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: transaction.CreateParams{
					Amount:      50000,
					Type:        transaction.TypeExpense,
					Category:    "groceries",
					Description: "Weekly shop",
					Date:        txDate,
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
						tx.ID = uuid.New()
						tx.CreatedAt = time.Now()
						return nil
					})
			},
			check: func(t *testing.T, tx *transaction.Transaction) {
				assert.Nil(t, tx.RecurringInterval)
				assert.Nil(t, tx.NextRecurringDate)
			},
		},
		{
			name: "RecurringComputesNextDate",
			args: args{
				params: transaction.CreateParams{
					Amount:            120000,
					Type:              transaction.TypeExpense,
					Category:          "housing",
					Description:       "Rent",
					Date:              txDate,
					IsRecurring:       true,
					RecurringInterval: transaction.IntervalMonthly,
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, tx *transaction.Transaction) {
				require.NotNil(t, tx.RecurringInterval)
				assert.Equal(t, transaction.IntervalMonthly, *tx.RecurringInterval)
				require.NotNil(t, tx.NextRecurringDate)
				// Jan 31 monthly clamps to the end of February.
				assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), *tx.NextRecurringDate)
			},
		},
		{
			name: "RecurringWithoutInterval",
			args: args{
				params: transaction.CreateParams{
					Amount:      1000,
					Type:        transaction.TypeExpense,
					Category:    "bills",
					Date:        txDate,
					IsRecurring: true,
				},
			},
			setupMock: nil,
			wantErr:   transaction.ErrInvalidInterval,
		},
		{
			name: "RepoError",
			args: args{
				params: transaction.CreateParams{
					Amount:   500,
					Type:     transaction.TypeIncome,
					Category: "salary",
					Date:     txDate,
				},
			},
			setupMock: func(m *transaction.MockRepository) {
				m.EXPECT().
					CreateTransaction(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := transaction.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := transaction.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)

			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestService_Update_RecurrenceInvariant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	interval := transaction.IntervalWeekly
	stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	tx := &transaction.Transaction{
		ID:                uuid.New(),
		Amount:            2500,
		Type:              transaction.TypeExpense,
		Category:          "entertainment",
		Date:              time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		IsRecurring:       true,
		RecurringInterval: &interval,
		NextRecurringDate: &stale,
	}

	repo.EXPECT().UpdateTransaction(gomock.Any(), tx).Return(nil)

	require.NoError(t, svc.Update(context.Background(), tx))
	require.NotNil(t, tx.NextRecurringDate)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), *tx.NextRecurringDate)
}

func TestService_Update_ClearsRecurrenceFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	interval := transaction.IntervalMonthly
	next := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	tx := &transaction.Transaction{
		ID:                uuid.New(),
		Amount:            2500,
		Type:              transaction.TypeExpense,
		Category:          "bills",
		Date:              time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		IsRecurring:       false,
		RecurringInterval: &interval,
		NextRecurringDate: &next,
	}

	repo.EXPECT().UpdateTransaction(gomock.Any(), tx).Return(nil)

	require.NoError(t, svc.Update(context.Background(), tx))
	assert.Nil(t, tx.RecurringInterval)
	assert.Nil(t, tx.NextRecurringDate)
}

func TestService_BulkDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	owner := uuid.New()
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	repo.EXPECT().DeleteTransactions(gomock.Any(), owner, ids).Return(int64(2), nil)

	n, err := svc.BulkDelete(context.Background(), owner, ids)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestService_BulkDelete_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	n, err := svc.BulkDelete(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_ImportBatch_NoConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	owner := uuid.New()
	account := uuid.New()
	txDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []transaction.CreateParams{
		{
			AccountID:   account,
			Amount:      1000,
			Type:        transaction.TypeExpense,
			Category:    "food",
			Description: "COFFEE SHOP",
			Date:        txDate,
		},
	}

	repo.EXPECT().BeginImport(gomock.Any(), owner, txDate, txDate).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
	itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
	itx.EXPECT().Commit().Return(nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), owner, params)
	require.NoError(t, err)
	assert.Len(t, result.Imported, 1)
	assert.Equal(t, owner, result.Imported[0].OwnerID)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}

func TestService_ImportBatch_WithConflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	svc := transaction.NewService(repo)

	owner := uuid.New()
	txDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	params := []transaction.CreateParams{
		{
			Amount:      1000,
			Type:        transaction.TypeExpense,
			Category:    "food",
			Description: "COFFEE SHOP",
			Date:        txDate,
		},
		{
			Amount:      2000,
			Type:        transaction.TypeExpense,
			Category:    "food",
			Description: "LUNCH PLACE",
			Date:        txDate,
		},
	}

	existing := &transaction.Transaction{
		ID:          uuid.New(),
		Amount:      1000,
		Type:        transaction.TypeExpense,
		Description: "COFFEE SHOP",
		Date:        txDate,
	}

	repo.EXPECT().BeginImport(gomock.Any(), owner, txDate, txDate).Return(itx, nil)
	itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*transaction.Transaction{existing}, nil)
	itx.EXPECT().Rollback().Return(nil)

	result, err := svc.ImportBatch(context.Background(), owner, params)
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Len(t, result.New, 1)
	assert.Len(t, result.Conflicts, 1)
	assert.Equal(t, params[0], result.Conflicts[0].Incoming)
	assert.Equal(t, existing, result.Conflicts[0].Existing)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	svc := transaction.NewService(repo)

	result, err := svc.ImportBatch(context.Background(), uuid.New(), []transaction.CreateParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Imported)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.New)
}
