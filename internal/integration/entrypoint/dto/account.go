package dto

import (
	"time"

	"github.com/wealthflow/backend/internal/domain/entity"
)

// CreateAccountRequest is the payload for POST /accounts.
type CreateAccountRequest struct {
	Name           string `json:"name" binding:"required"`
	Type           string `json:"type" binding:"required"`
	InitialBalance string `json:"initialBalance"`
	IsDefault      bool   `json:"isDefault"`
}

// AccountResponse is the API representation of an account.
type AccountResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Balance   string `json:"balance"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AccountWithTotalsResponse adds income/expense totals to an account.
type AccountWithTotalsResponse struct {
	AccountResponse
	TotalIncome  string `json:"totalIncome"`
	TotalExpense string `json:"totalExpense"`
}

// AccountListResponse is the response for GET /accounts.
type AccountListResponse struct {
	Accounts []AccountWithTotalsResponse `json:"accounts"`
}

// DeleteAccountResponse is the response for DELETE /accounts/:id.
type DeleteAccountResponse struct {
	RemovedTransactions int64 `json:"removedTransactions"`
}

// ToAccountResponse converts an account entity to its API representation.
func ToAccountResponse(account *entity.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID.String(),
		Name:      account.Name,
		Type:      string(account.Type),
		Balance:   account.Balance.String(),
		IsDefault: account.IsDefault,
		CreatedAt: account.CreatedAt.Format(time.RFC3339),
		UpdatedAt: account.UpdatedAt.Format(time.RFC3339),
	}
}

// ToAccountListResponse converts accounts with totals to their API representation.
func ToAccountListResponse(accounts []*entity.AccountWithTotals) AccountListResponse {
	responses := make([]AccountWithTotalsResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = AccountWithTotalsResponse{
			AccountResponse: ToAccountResponse(a.Account),
			TotalIncome:     a.TotalIncome.String(),
			TotalExpense:    a.TotalExpense.String(),
		}
	}
	return AccountListResponse{Accounts: responses}
}
