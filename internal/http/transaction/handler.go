package transaction

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/category"
	"github.com/osadebe/kobo/internal/http/middleware"
	"github.com/osadebe/kobo/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Post("/bulk-delete", h.bulkDelete)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	AccountID         uuid.UUID            `json:"account_id"`
	Amount            int64                `json:"amount"`
	Type              transaction.Type     `json:"type"`
	Category          string               `json:"category"`
	Description       string               `json:"description"`
	Date              time.Time            `json:"date"`
	IsRecurring       bool                 `json:"is_recurring"`
	RecurringInterval transaction.Interval `json:"recurring_interval,omitempty"`
}

// validCategory reports whether the category exists and matches the
// transaction type.
func validCategory(id string, txType transaction.Type) bool {
	cat, ok := category.ByID(id)
	return ok && string(cat.Type) == string(txType)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	if !validCategory(req.Category, req.Type) {
		http.Error(w, "unknown category for transaction type", http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		OwnerID:           ownerID,
		AccountID:         req.AccountID,
		Amount:            req.Amount,
		Type:              req.Type,
		Category:          req.Category,
		Description:       req.Description,
		Date:              req.Date,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: req.RecurringInterval,
	})
	if err != nil {
		if errors.Is(err, transaction.ErrInvalidInterval) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter := transaction.ListFilter{OwnerID: ownerID}

	if s := r.URL.Query().Get("account_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return
		}

		filter.AccountID = new(id)
	}

	if s := r.URL.Query().Get("type"); s != "" {
		filter.Type = new(transaction.Type(s))
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(txs)); err != nil {
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

	tx, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTransactionRequest struct {
	AccountID         *uuid.UUID            `json:"account_id,omitempty"`
	Amount            *int64                `json:"amount,omitempty"`
	Type              *transaction.Type     `json:"type,omitempty"`
	Category          *string               `json:"category,omitempty"`
	Description       *string               `json:"description,omitempty"`
	Date              *time.Time            `json:"date,omitempty"`
	IsRecurring       *bool                 `json:"is_recurring,omitempty"`
	RecurringInterval *transaction.Interval `json:"recurring_interval,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
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

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Get(r.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.AccountID != nil {
		tx.AccountID = *req.AccountID
	}

	if req.Amount != nil {
		tx.Amount = *req.Amount
	}

	if req.Type != nil {
		tx.Type = *req.Type
	}

	if req.Category != nil {
		tx.Category = *req.Category
	}

	if req.Description != nil {
		tx.Description = *req.Description
	}

	if req.Date != nil {
		tx.Date = *req.Date
	}

	if req.IsRecurring != nil {
		tx.IsRecurring = *req.IsRecurring
	}

	if req.RecurringInterval != nil {
		tx.RecurringInterval = req.RecurringInterval
	}

	if !validCategory(tx.Category, tx.Type) {
		http.Error(w, "unknown category for transaction type", http.StatusBadRequest)
		return
	}

	if err := h.svc.Update(r.Context(), tx); err != nil {
		if errors.Is(err, transaction.ErrInvalidInterval) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(tx)); err != nil {
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
		if errors.Is(err, transaction.ErrNotFound) {
			http.Error(w, "transaction not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type bulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

type bulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

func (h *Handler) bulkDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	deleted, err := h.svc.BulkDelete(r.Context(), ownerID, req.IDs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(bulkDeleteResponse{Deleted: deleted}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
