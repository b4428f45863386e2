package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/usecase/transaction"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// CreateTransactionRequest is the payload for POST /transactions.
type CreateTransactionRequest struct {
	Type              string  `json:"type" binding:"required"`
	Amount            string  `json:"amount" binding:"required"`
	AccountID         string  `json:"accountId" binding:"required"`
	ToAccountID       *string `json:"toAccountId"`
	Date              string  `json:"date" binding:"required"`
	Description       string  `json:"description"`
	IsRecurring       bool    `json:"isRecurring"`
	RecurringInterval *string `json:"recurringInterval"`
}

// UpdateTransactionRequest is the payload for PUT /transactions/:id.
type UpdateTransactionRequest struct {
	Type              string  `json:"type" binding:"required"`
	Amount            string  `json:"amount" binding:"required"`
	AccountID         string  `json:"accountId" binding:"required"`
	ToAccountID       *string `json:"toAccountId"`
	Date              string  `json:"date" binding:"required"`
	Description       string  `json:"description"`
	IsRecurring       bool    `json:"isRecurring"`
	RecurringInterval *string `json:"recurringInterval"`
}

// BulkDeleteTransactionsRequest is the payload for POST /transactions/bulk-delete.
type BulkDeleteTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIds" binding:"required"`
}

// TransactionResponse is the API representation of a transaction.
type TransactionResponse struct {
	ID                string  `json:"id"`
	Type              string  `json:"type"`
	Amount            string  `json:"amount"`
	AccountID         string  `json:"accountId"`
	ToAccountID       *string `json:"toAccountId,omitempty"`
	Date              string  `json:"date"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
	IsRecurring       bool    `json:"isRecurring"`
	RecurringInterval *string `json:"recurringInterval,omitempty"`
	NextRecurrence    *string `json:"nextRecurrence,omitempty"`
	LastRecurrence    *string `json:"lastRecurrence,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// TransactionWithWarningsResponse attaches warnings to a transaction response.
type TransactionWithWarningsResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Warnings    []WarningResponse   `json:"warnings,omitempty"`
}

// TransactionListResponse is the response for GET /transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// BulkDeleteTransactionsResponse is the response for POST /transactions/bulk-delete.
type BulkDeleteTransactionsResponse struct {
	DeletedCount int64             `json:"deletedCount"`
	Warnings     []WarningResponse `json:"warnings,omitempty"`
}

// DeleteTransactionResponse is the response for DELETE /transactions/:id.
type DeleteTransactionResponse struct {
	Warnings []WarningResponse `json:"warnings,omitempty"`
}

// ToTransactionResponse converts a transaction entity to its API representation.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:          tx.ID.String(),
		Type:        string(tx.Type),
		Amount:      tx.Amount.String(),
		AccountID:   tx.AccountID.String(),
		Date:        tx.Date.Format("2006-01-02"),
		Description: tx.Description,
		Status:      string(tx.Status),
		IsRecurring: tx.IsRecurring,
		CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   tx.UpdatedAt.Format(time.RFC3339),
	}

	if tx.ToAccountID != nil {
		toAccountID := tx.ToAccountID.String()
		response.ToAccountID = &toAccountID
	}
	if tx.RecurringInterval != nil {
		interval := string(*tx.RecurringInterval)
		response.RecurringInterval = &interval
	}
	if tx.NextRecurrence != nil {
		next := tx.NextRecurrence.Format(time.RFC3339)
		response.NextRecurrence = &next
	}
	if tx.LastRecurrence != nil {
		last := tx.LastRecurrence.Format(time.RFC3339)
		response.LastRecurrence = &last
	}

	return response
}

// ToTransactionListResponse converts a list result to its API representation.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	transactions := make([]TransactionResponse, len(output.Transactions))
	for i, tx := range output.Transactions {
		transactions[i] = ToTransactionResponse(tx)
	}
	return TransactionListResponse{Transactions: transactions}
}

// ToWarningResponses converts partial-consistency warnings to their API representation.
func ToWarningResponses(warnings []*domainerror.PartialConsistencyWarning) []WarningResponse {
	if len(warnings) == 0 {
		return nil
	}

	responses := make([]WarningResponse, len(warnings))
	for i, w := range warnings {
		responses[i] = WarningResponse{
			AccountID: w.AccountID.String(),
			Reason:    w.Reason,
		}
		if w.TransactionID != uuid.Nil {
			responses[i].TransactionID = w.TransactionID.String()
		}
	}
	return responses
}
