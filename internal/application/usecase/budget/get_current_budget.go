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

// GetCurrentBudgetInput represents the input for fetching the current budget.
type GetCurrentBudgetInput struct {
	UserID uuid.UUID
	Now    time.Time
}

// GetCurrentBudgetOutput represents the budget alongside the current month's
// spending on the user's default account.
type GetCurrentBudgetOutput struct {
	Budget          *entity.Budget // Nil when the user has not set one
	CurrentExpenses decimal.Decimal
}

// GetCurrentBudgetUseCase fetches a user's budget and month-to-date expenses.
type GetCurrentBudgetUseCase struct {
	budgetRepo      adapter.BudgetRepository
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
}

// NewGetCurrentBudgetUseCase creates a new GetCurrentBudgetUseCase instance.
func NewGetCurrentBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
) *GetCurrentBudgetUseCase {
	return &GetCurrentBudgetUseCase{
		budgetRepo:      budgetRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute fetches the budget and current expenses.
func (uc *GetCurrentBudgetUseCase) Execute(ctx context.Context, input GetCurrentBudgetInput) (*GetCurrentBudgetOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	output := &GetCurrentBudgetOutput{CurrentExpenses: decimal.Zero}

	budget, err := uc.budgetRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		if !errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, fmt.Errorf("failed to find budget: %w", err)
		}
	} else {
		output.Budget = budget
	}

	defaultAccount, err := uc.accountRepo.FindDefaultByUser(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return output, nil
		}
		return nil, fmt.Errorf("failed to find default account: %w", err)
	}

	monthStart, monthEnd := entity.MonthRange(now)
	spent, err := uc.transactionRepo.SumExpensesForAccountInRange(ctx, defaultAccount.ID, monthStart, monthEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses: %w", err)
	}
	output.CurrentExpenses = spent

	return output, nil
}
