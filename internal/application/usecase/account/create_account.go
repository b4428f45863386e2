// Package account contains account-related use cases.
package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// CreateAccountInput represents the input for account creation.
type CreateAccountInput struct {
	UserID         uuid.UUID
	Name           string
	Type           entity.AccountType
	InitialBalance decimal.Decimal
	IsDefault      bool
}

// CreateAccountOutput represents the output of account creation.
type CreateAccountOutput struct {
	Account *entity.Account
}

// CreateAccountUseCase handles account creation. A user's first account is
// always the default; requesting default on a later account demotes the
// previous default in the same atomic unit, keeping exactly one default per
// owner.
type CreateAccountUseCase struct {
	uow adapter.UnitOfWork
}

// NewCreateAccountUseCase creates a new CreateAccountUseCase instance.
func NewCreateAccountUseCase(uow adapter.UnitOfWork) *CreateAccountUseCase {
	return &CreateAccountUseCase{
		uow: uow,
	}
}

// Execute performs the account creation.
func (uc *CreateAccountUseCase) Execute(ctx context.Context, input CreateAccountInput) (*CreateAccountOutput, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeAccountNameRequired,
			"account name is required",
			domainerror.ErrAccountNameRequired,
		)
	}

	if input.Type != entity.AccountTypeCurrent && input.Type != entity.AccountTypeSavings {
		return nil, domainerror.NewAccountError(
			domainerror.ErrCodeInvalidAccountType,
			"account type must be 'CURRENT' or 'SAVINGS'",
			domainerror.ErrInvalidAccountType,
		)
	}

	var account *entity.Account

	err := uc.uow.Do(ctx, func(stores adapter.Stores) error {
		count, err := stores.Accounts().CountByUser(ctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to count accounts: %w", err)
		}

		isDefault := input.IsDefault
		if count == 0 {
			isDefault = true
		}

		if isDefault && count > 0 {
			if err := stores.Accounts().ClearDefaultByUser(ctx, input.UserID); err != nil {
				return fmt.Errorf("failed to clear previous default: %w", err)
			}
		}

		account = entity.NewAccount(input.UserID, input.Name, input.Type, input.InitialBalance, isDefault)
		if err := stores.Accounts().Create(ctx, account); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateAccountOutput{Account: account}, nil
}
