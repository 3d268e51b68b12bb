package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/categorize"
	"github.com/osadebe/kobo/internal/http/middleware"
	"github.com/osadebe/kobo/internal/importer"
	"github.com/osadebe/kobo/internal/transaction"
)

type Handler struct {
	importSvc *importer.Service
	txSvc     *transaction.Service
	catSvc    *categorize.Service
}

func NewHandler(importSvc *importer.Service, txSvc *transaction.Service, catSvc *categorize.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		txSvc:     txSvc,
		catSvc:    catSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type transactionResponse struct {
	ID          uuid.UUID        `json:"id"`
	AccountID   uuid.UUID        `json:"account_id"`
	Amount      int64            `json:"amount"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	CreatedAt   time.Time        `json:"created_at"`
}

type importSuccessResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

type createParamsDTO struct {
	AccountID   uuid.UUID        `json:"account_id"`
	Amount      int64            `json:"amount"`
	Type        transaction.Type `json:"type"`
	Category    string           `json:"category"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
}

type conflictDTO struct {
	Incoming createParamsDTO     `json:"incoming"`
	Existing transactionResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	accountID, err := uuid.Parse(r.FormValue("account_id"))
	if err != nil {
		http.Error(w, "account_id field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	for i := range params {
		params[i].AccountID = accountID
		params[i].Category = h.suggestCategory(r, params[i])
	}

	result, err := h.txSvc.ImportBatch(r.Context(), ownerID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toTxResponse(c.Existing),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(result.Imported)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// suggestCategory asks the learned rules for a category and falls back
// to the catch-all for the transaction type.
func (h *Handler) suggestCategory(r *http.Request, p transaction.CreateParams) string {
	ownerID, _ := middleware.OwnerID(r.Context())

	suggested, err := h.catSvc.Suggest(r.Context(), ownerID, p.Description)
	if err == nil && suggested != "" {
		return suggested
	}

	if p.Type == transaction.TypeIncome {
		return "other-income"
	}

	return "other-expense"
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.OwnerID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]transaction.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, transaction.CreateParams{
			AccountID:   p.AccountID,
			Amount:      p.Amount,
			Type:        p.Type,
			Category:    p.Category,
			Description: p.Description,
			Date:        p.Date,
		})
	}

	txs, err := h.txSvc.CreateBatch(r.Context(), ownerID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(txs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	responses := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		responses = append(responses, toTxResponse(tx))
	}

	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: responses,
	}
}

func toTxResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		AccountID:   tx.AccountID,
		Amount:      tx.Amount,
		Type:        tx.Type,
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date,
		CreatedAt:   tx.CreatedAt,
	}
}

func toParamsDTO(p transaction.CreateParams) createParamsDTO {
	return createParamsDTO{
		AccountID:   p.AccountID,
		Amount:      p.Amount,
		Type:        p.Type,
		Category:    p.Category,
		Description: p.Description,
		Date:        p.Date,
	}
}
