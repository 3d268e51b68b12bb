package category

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osadebe/kobo/internal/categorize"
	"github.com/osadebe/kobo/internal/category"
	"github.com/osadebe/kobo/internal/http/middleware"
)

// Handler serves the static category catalog and the learned
// categorization rules built on top of it.
type Handler struct {
	catSvc *categorize.Service
}

func NewHandler(catSvc *categorize.Service) *Handler {
	return &Handler{catSvc: catSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/rules", h.createRule)
}

type categoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type catalogResponse struct {
	Income  []categoryResponse `json:"income"`
	Expense []categoryResponse `json:"expense"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	resp := catalogResponse{
		Income:  toResponseList(category.List(category.TypeIncome)),
		Expense: toResponseList(category.List(category.TypeExpense)),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type suggestResponse struct {
	Category string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	description := r.URL.Query().Get("description")
	if description == "" {
		http.Error(w, "description is required", http.StatusBadRequest)
		return
	}

	suggested, err := h.catSvc.Suggest(r.Context(), ownerID, description)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{Category: suggested}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createRuleRequest struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

func (h *Handler) createRule(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Pattern == "" {
		http.Error(w, "pattern is required", http.StatusBadRequest)
		return
	}

	if _, ok := category.ByID(req.Category); !ok {
		http.Error(w, "unknown category", http.StatusBadRequest)
		return
	}

	if err := h.catSvc.Learn(r.Context(), ownerID, req.Pattern, req.Category); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func toResponseList(cats []category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = categoryResponse{
			ID:    c.ID,
			Name:  c.Name,
			Type:  string(c.Type),
			Color: c.Color,
			Icon:  c.Icon,
		}
	}

	return resp
}
