package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/analytics"
	"github.com/osadebe/kobo/internal/category"
	"github.com/osadebe/kobo/internal/http/middleware"
	"github.com/osadebe/kobo/internal/transaction"
)

// Handler serves the aggregated views behind the dashboard: overall
// totals, the per-day chart series and the category breakdown.
type Handler struct {
	txSvc *transaction.Service
}

func NewHandler(txSvc *transaction.Service) *Handler {
	return &Handler{txSvc: txSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/by-day", h.byDay)
	r.Get("/categories", h.categories)
}

type summaryResponse struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
	Net     int64 `json:"net"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	filter, ok := listFilter(w, r, ownerID)
	if !ok {
		return
	}

	txs, err := h.txSvc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s := analytics.Totals(txs)

	w.Header().Set("Content-Type", "application/json")

	resp := summaryResponse{Income: s.Income, Expense: s.Expense, Net: s.Net}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type dayTotalResponse struct {
	Date    string `json:"date"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
}

func (h *Handler) byDay(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	days := 30

	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 366 {
			http.Error(w, "days must be between 1 and 366", http.StatusBadRequest)
			return
		}

		days = n
	}

	filter, ok := listFilter(w, r, ownerID)
	if !ok {
		return
	}

	// An explicit start_date takes precedence over the days window.
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))

	if filter.StartDate != nil {
		start = *filter.StartDate
	} else {
		filter.StartDate = new(start)
	}

	txs, err := h.txSvc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	series := analytics.AggregateByDay(txs, start, time.Time{})

	resp := make([]dayTotalResponse, len(series))
	for i, d := range series {
		resp[i] = dayTotalResponse{
			Date:    d.Date.Format(time.DateOnly),
			Income:  d.Income,
			Expense: d.Expense,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type categoryTotalResponse struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Amount   int64  `json:"amount"`
}

func (h *Handler) categories(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	now := time.Now().UTC()
	month, year := now.Month(), now.Year()

	if s := r.URL.Query().Get("month"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 12 {
			http.Error(w, "month must be between 1 and 12", http.StatusBadRequest)
			return
		}

		month = time.Month(n)
	}

	if s := r.URL.Query().Get("year"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			http.Error(w, "invalid year", http.StatusBadRequest)
			return
		}

		year = n
	}

	filter, ok := listFilter(w, r, ownerID)
	if !ok {
		return
	}

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0).Add(-time.Nanosecond)
	filter.StartDate = new(monthStart)
	filter.EndDate = new(monthEnd)

	txs, err := h.txSvc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	byCategory := analytics.ExpensesByCategory(txs, month, year)

	resp := make([]categoryTotalResponse, 0, len(byCategory))

	for id, amount := range byCategory {
		entry := categoryTotalResponse{
			Category: id,
			Name:     id,
			Color:    category.ColorOf(id),
			Amount:   amount,
		}

		if cat, ok := category.ByID(id); ok {
			entry.Name = cat.Name
		}

		resp = append(resp, entry)
	}

	// Largest spend first, id as tiebreak for stable output.
	sort.Slice(resp, func(i, j int) bool {
		if resp[i].Amount != resp[j].Amount {
			return resp[i].Amount > resp[j].Amount
		}

		return resp[i].Category < resp[j].Category
	})

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// listFilter builds the owner-scoped filter shared by the dashboard
// endpoints, honoring an optional account_id query param. Reports
// false after writing an error response.
func listFilter(w http.ResponseWriter, r *http.Request, ownerID uuid.UUID) (transaction.ListFilter, bool) {
	filter := transaction.ListFilter{OwnerID: ownerID}

	if s := r.URL.Query().Get("account_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return filter, false
		}

		filter.AccountID = new(id)
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

	return filter, true
}
