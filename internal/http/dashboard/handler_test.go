package dashboard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	dashboardhttp "github.com/osadebe/kobo/internal/http/dashboard"
	"github.com/osadebe/kobo/internal/http/middleware"
	"github.com/osadebe/kobo/internal/transaction"
)

func getByDay(t *testing.T, h *dashboardhttp.Handler, owner uuid.UUID, query string) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Route("/dashboard", h.Routes)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/by-day"+query, nil)
	req = req.WithContext(middleware.WithOwnerID(req.Context(), owner))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	return rec
}

func TestHandler_ByDay_ExplicitStartDateWins(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	h := dashboardhttp.NewHandler(transaction.NewService(repo))

	owner := uuid.New()

	var got transaction.ListFilter

	repo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
			got = f
			return nil, nil
		})

	rec := getByDay(t, h, owner, "?days=7&start_date=2024-01-10")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, got.StartDate)
	assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), *got.StartDate)
	assert.Equal(t, owner, got.OwnerID)
}

func TestHandler_ByDay_DaysWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	h := dashboardhttp.NewHandler(transaction.NewService(repo))

	var got transaction.ListFilter

	repo.EXPECT().
		ListTransactions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f transaction.ListFilter) ([]*transaction.Transaction, error) {
			got = f
			return nil, nil
		})

	rec := getByDay(t, h, uuid.New(), "?days=7")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, got.StartDate)

	now := time.Now().UTC()
	want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -6)
	assert.Equal(t, want, *got.StartDate)
}

func TestHandler_ByDay_InvalidDays(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := transaction.NewMockRepository(ctrl)
	h := dashboardhttp.NewHandler(transaction.NewService(repo))

	rec := getByDay(t, h, uuid.New(), "?days=0")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
