package categorize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/osadebe/kobo/internal/categorize"
)

func TestService_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := categorize.NewMockRepository(ctrl)
	svc := categorize.NewService(repo)

	owner := uuid.New()

	repo.EXPECT().FindCategory(gomock.Any(), owner, "NETFLIX.COM AMSTERDAM").Return("entertainment", nil)

	got, err := svc.Suggest(context.Background(), owner, "NETFLIX.COM AMSTERDAM")
	require.NoError(t, err)
	assert.Equal(t, "entertainment", got)
}

func TestService_Suggest_NoMatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := categorize.NewMockRepository(ctrl)
	svc := categorize.NewService(repo)

	repo.EXPECT().FindCategory(gomock.Any(), gomock.Any(), gomock.Any()).Return("", nil)

	got, err := svc.Suggest(context.Background(), uuid.New(), "UNKNOWN MERCHANT")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Suggest_StaleCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := categorize.NewMockRepository(ctrl)
	svc := categorize.NewService(repo)

	// A rule pointing at a category that no longer exists in the
	// catalog is ignored rather than surfaced.
	repo.EXPECT().FindCategory(gomock.Any(), gomock.Any(), gomock.Any()).Return("retired-category", nil)

	got, err := svc.Suggest(context.Background(), uuid.New(), "SOME MERCHANT")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Suggest_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := categorize.NewMockRepository(ctrl)
	svc := categorize.NewService(repo)

	repo.EXPECT().FindCategory(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("db error"))

	_, err := svc.Suggest(context.Background(), uuid.New(), "SOME MERCHANT")
	assert.Error(t, err)
}

func TestService_Learn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := categorize.NewMockRepository(ctrl)
	svc := categorize.NewService(repo)

	owner := uuid.New()

	repo.EXPECT().CreateRule(gomock.Any(), owner, "NETFLIX", "entertainment").Return(nil)

	err := svc.Learn(context.Background(), owner, "NETFLIX", "entertainment")
	require.NoError(t, err)
}
