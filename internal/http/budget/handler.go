package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/osadebe/kobo/internal/budget"
	"github.com/osadebe/kobo/internal/http/middleware"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.upsert)
	r.Get("/progress", h.progress)
}

type budgetResponse struct {
	Amount    int64      `json:"amount"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	b, err := h.svc.Get(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, budget.ErrNotFound) {
			http.Error(w, "no budget configured", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := budgetResponse{Amount: b.Amount, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type upsertBudgetRequest struct {
	Amount int64 `json:"amount"`
}

func (h *Handler) upsert(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req upsertBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Amount <= 0 {
		http.Error(w, "amount must be positive", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Upsert(r.Context(), ownerID, req.Amount)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	resp := budgetResponse{Amount: b.Amount, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type progressResponse struct {
	Configured    bool         `json:"configured"`
	Amount        int64        `json:"amount"`
	MonthExpenses int64        `json:"month_expenses"`
	PercentUsed   float64      `json:"percent_used"`
	Level         budget.Level `json:"level"`
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	eval, err := h.svc.Progress(r.Context(), ownerID, time.Now().UTC())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := progressResponse{
		Configured:    eval.Configured,
		Amount:        eval.Amount,
		MonthExpenses: eval.MonthExpenses,
		PercentUsed:   eval.PercentUsed,
		Level:         eval.Level,
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
