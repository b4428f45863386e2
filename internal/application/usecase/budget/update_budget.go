package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// UpdateBudgetInput represents the input for setting a budget.
type UpdateBudgetInput struct {
	UserID uuid.UUID
	Amount decimal.Decimal
}

// UpdateBudgetOutput represents the output of setting a budget.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase creates or updates the user's single budget row.
// Changing the amount does not reset lastAlertSent; the once-per-month
// gate is about notification noise, not about the threshold value.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute sets the budget amount.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	if input.Amount.IsZero() || input.Amount.IsNegative() {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be positive",
			domainerror.ErrInvalidBudgetAmount,
		)
	}

	existing, err := uc.budgetRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, fmt.Errorf("failed to find budget: %w", err)
		}

		budget := entity.NewBudget(input.UserID, input.Amount)
		if err := uc.budgetRepo.Create(ctx, budget); err != nil {
			return nil, fmt.Errorf("failed to create budget: %w", err)
		}
		return &UpdateBudgetOutput{Budget: budget}, nil
	}

	existing.Amount = input.Amount
	existing.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateBudgetOutput{Budget: existing}, nil
}
