package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
)

// ListAccountsInput represents the input for listing accounts.
type ListAccountsInput struct {
	UserID uuid.UUID
}

// ListAccountsOutput represents the output of listing accounts.
type ListAccountsOutput struct {
	Accounts []*entity.AccountWithTotals
}

// ListAccountsUseCase lists a user's accounts with their income and
// expense totals.
type ListAccountsUseCase struct {
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
}

// NewListAccountsUseCase creates a new ListAccountsUseCase instance.
func NewListAccountsUseCase(
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
) *ListAccountsUseCase {
	return &ListAccountsUseCase{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Execute lists the accounts.
func (uc *ListAccountsUseCase) Execute(ctx context.Context, input ListAccountsInput) (*ListAccountsOutput, error) {
	accounts, err := uc.accountRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	result := make([]*entity.AccountWithTotals, 0, len(accounts))
	for _, account := range accounts {
		totals, err := uc.transactionRepo.GetTotalsByAccount(ctx, account.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get totals for account %s: %w", account.ID, err)
		}

		result = append(result, &entity.AccountWithTotals{
			Account:      account,
			TotalIncome:  totals.IncomeTotal.Add(totals.TransferIn),
			TotalExpense: totals.ExpenseTotal.Add(totals.TransferOut),
		})
	}

	return &ListAccountsOutput{Accounts: result}, nil
}
