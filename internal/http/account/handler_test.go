package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/osadebe/kobo/internal/account"
	accounthttp "github.com/osadebe/kobo/internal/http/account"
	"github.com/osadebe/kobo/internal/http/middleware"
)

func newRouter(h *accounthttp.Handler) chi.Router {
	r := chi.NewRouter()
	r.Route("/accounts", h.Routes)

	return r
}

func TestHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	h := accounthttp.NewHandler(account.NewService(repo))

	owner := uuid.New()
	id := uuid.New()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	repo.EXPECT().GetAccount(gomock.Any(), owner, id).Return(&account.Account{
		ID:               id,
		OwnerID:          owner,
		Name:             "Everyday",
		Type:             account.TypeCurrent,
		Balance:          1250000,
		IsDefault:        true,
		TransactionCount: 7,
		CreatedAt:        created,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/"+id.String(), nil)
	req = req.WithContext(middleware.WithOwnerID(req.Context(), owner))

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID               uuid.UUID `json:"id"`
		Name             string    `json:"name"`
		Balance          int64     `json:"balance"`
		IsDefault        bool      `json:"is_default"`
		TransactionCount int64     `json:"transaction_count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "Everyday", resp.Name)
	assert.Equal(t, int64(1250000), resp.Balance)
	assert.True(t, resp.IsDefault)
	assert.Equal(t, int64(7), resp.TransactionCount)
}

func TestHandler_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	h := accounthttp.NewHandler(account.NewService(repo))

	owner := uuid.New()
	id := uuid.New()

	repo.EXPECT().GetAccount(gomock.Any(), owner, id).Return(nil, account.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/accounts/"+id.String(), nil)
	req = req.WithContext(middleware.WithOwnerID(req.Context(), owner))

	rec := httptest.NewRecorder()
	newRouter(h).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
