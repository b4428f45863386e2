package dto

import (
	"time"

	"github.com/wealthflow/backend/internal/application/usecase/budget"
)

// UpdateBudgetRequest is the payload for PUT /budgets.
type UpdateBudgetRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// BudgetResponse is the API representation of a budget with current spending.
type BudgetResponse struct {
	ID              *string `json:"id,omitempty"`
	Amount          *string `json:"amount,omitempty"`
	LastAlertSent   *string `json:"lastAlertSent,omitempty"`
	CurrentExpenses string  `json:"currentExpenses"`
}

// ToBudgetResponse converts the current-budget output to its API representation.
func ToBudgetResponse(output *budget.GetCurrentBudgetOutput) BudgetResponse {
	response := BudgetResponse{
		CurrentExpenses: output.CurrentExpenses.String(),
	}

	if output.Budget != nil {
		id := output.Budget.ID.String()
		amount := output.Budget.Amount.String()
		response.ID = &id
		response.Amount = &amount
		if output.Budget.LastAlertSent != nil {
			sent := output.Budget.LastAlertSent.Format(time.RFC3339)
			response.LastAlertSent = &sent
		}
	}

	return response
}
