package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/osadebe/kobo/internal/transaction"
)

type transactionResponse struct {
	ID                uuid.UUID             `json:"id"`
	AccountID         uuid.UUID             `json:"account_id"`
	Amount            int64                 `json:"amount"`
	Type              transaction.Type      `json:"type"`
	Category          string                `json:"category"`
	Description       string                `json:"description"`
	Date              time.Time             `json:"date"`
	IsRecurring       bool                  `json:"is_recurring"`
	RecurringInterval *transaction.Interval `json:"recurring_interval,omitempty"`
	NextRecurringDate *time.Time            `json:"next_recurring_date,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         *time.Time            `json:"updated_at,omitempty"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:                tx.ID,
		AccountID:         tx.AccountID,
		Amount:            tx.Amount,
		Type:              tx.Type,
		Category:          tx.Category,
		Description:       tx.Description,
		Date:              tx.Date,
		IsRecurring:       tx.IsRecurring,
		RecurringInterval: tx.RecurringInterval,
		NextRecurringDate: tx.NextRecurringDate,
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
