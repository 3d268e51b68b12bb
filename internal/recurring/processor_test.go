package recurring_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/osadebe/kobo/internal/recurring"
	"github.com/osadebe/kobo/internal/transaction"
)

func recurringTx(next time.Time, interval transaction.Interval) *transaction.Transaction {
	return &transaction.Transaction{
		ID:                uuid.New(),
		OwnerID:           uuid.New(),
		AccountID:         uuid.New(),
		Amount:            250000,
		Type:              transaction.TypeExpense,
		Category:          "bills",
		Description:       "Internet subscription",
		Date:              next.AddDate(0, -1, 0),
		IsRecurring:       true,
		RecurringInterval: &interval,
		NextRecurringDate: &next,
	}
}

func TestProcessor_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := recurring.NewMockRepository(ctrl)
	proc := recurring.NewProcessor(repo)

	now := time.Date(2024, 3, 15, 6, 0, 0, 0, time.UTC)
	due := recurringTx(time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC), transaction.IntervalMonthly)

	repo.EXPECT().ListDue(gomock.Any(), now).Return([]*transaction.Transaction{due}, nil)
	repo.EXPECT().
		Materialize(gomock.Any(), due, gomock.Any(), time.Date(2024, 4, 14, 0, 0, 0, 0, time.UTC)).
		DoAndReturn(func(_ context.Context, template, occurrence *transaction.Transaction, _ time.Time) (bool, error) {
			require.Equal(t, template.OwnerID, occurrence.OwnerID)
			require.Equal(t, template.AccountID, occurrence.AccountID)
			assert.Equal(t, template.Amount, occurrence.Amount)
			assert.Equal(t, template.Category, occurrence.Category)
			assert.Equal(t, *template.NextRecurringDate, occurrence.Date)
			assert.False(t, occurrence.IsRecurring)
			return true, nil
		})

	created, err := proc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestProcessor_Run_SkipsAlreadyAdvanced(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := recurring.NewMockRepository(ctrl)
	proc := recurring.NewProcessor(repo)

	now := time.Now().UTC()
	due := recurringTx(now.AddDate(0, 0, -1), transaction.IntervalWeekly)

	repo.EXPECT().ListDue(gomock.Any(), now).Return([]*transaction.Transaction{due}, nil)
	repo.EXPECT().Materialize(gomock.Any(), due, gomock.Any(), gomock.Any()).Return(false, nil)

	created, err := proc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestProcessor_Run_ContinuesPastFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := recurring.NewMockRepository(ctrl)
	proc := recurring.NewProcessor(repo)

	now := time.Now().UTC()
	broken := recurringTx(now.AddDate(0, 0, -2), transaction.IntervalDaily)
	healthy := recurringTx(now.AddDate(0, 0, -1), transaction.IntervalDaily)

	repo.EXPECT().ListDue(gomock.Any(), now).Return([]*transaction.Transaction{broken, healthy}, nil)
	repo.EXPECT().Materialize(gomock.Any(), broken, gomock.Any(), gomock.Any()).Return(false, errors.New("db error"))
	repo.EXPECT().Materialize(gomock.Any(), healthy, gomock.Any(), gomock.Any()).Return(true, nil)

	created, err := proc.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestProcessor_Run_ListError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := recurring.NewMockRepository(ctrl)
	proc := recurring.NewProcessor(repo)

	repo.EXPECT().ListDue(gomock.Any(), gomock.Any()).Return(nil, errors.New("db error"))

	_, err := proc.Run(context.Background(), time.Now())
	assert.Error(t, err)
}
