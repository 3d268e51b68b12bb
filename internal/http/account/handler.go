package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/account"
	"github.com/osadebe/kobo/internal/http/middleware"
)

type Handler struct {
	svc *account.Service
}

func NewHandler(svc *account.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/default", h.setDefault)
	r.Delete("/{id}", h.delete)
}

type accountResponse struct {
	ID               uuid.UUID    `json:"id"`
	Name             string       `json:"name"`
	Type             account.Type `json:"type"`
	Balance          int64        `json:"balance"`
	IsDefault        bool         `json:"is_default"`
	TransactionCount int64        `json:"transaction_count"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        *time.Time   `json:"updated_at,omitempty"`
}

func toResponse(a *account.Account) accountResponse {
	return accountResponse{
		ID:               a.ID,
		Name:             a.Name,
		Type:             a.Type,
		Balance:          a.Balance,
		IsDefault:        a.IsDefault,
		TransactionCount: a.TransactionCount,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toResponseList(accs []*account.Account) []accountResponse {
	resp := make([]accountResponse, len(accs))
	for i, a := range accs {
		resp[i] = toResponse(a)
	}

	return resp
}

type createAccountRequest struct {
	Name           string       `json:"name"`
	Type           account.Type `json:"type"`
	OpeningBalance int64        `json:"opening_balance"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if req.Type != account.TypeCurrent && req.Type != account.TypeSavings {
		http.Error(w, "invalid account type", http.StatusBadRequest)
		return
	}

	acc, err := h.svc.Create(r.Context(), account.CreateParams{
		OwnerID:        ownerID,
		Name:           req.Name,
		Type:           req.Type,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	accs, err := h.svc.List(r.Context(), ownerID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(accs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	acc, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(acc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) setDefault(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	accs, err := h.svc.SetDefault(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			http.Error(w, "account not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(accs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), ownerID, id); err != nil {
		switch {
		case errors.Is(err, account.ErrNotFound):
			http.Error(w, "account not found", http.StatusNotFound)
		case errors.Is(err, account.ErrLastDefault):
			http.Error(w, "cannot delete the default account", http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
