// Package account contains account-related use cases.
package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// SetDefaultAccountInput represents the input for changing the default account.
type SetDefaultAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// SetDefaultAccountOutput represents the output of changing the default account.
type SetDefaultAccountOutput struct {
	Account *entity.Account
}

// SetDefaultAccountUseCase promotes one account to default. Demotion of the
// current default and promotion of the target happen in one atomic unit so
// the single-default invariant is never observable as violated.
type SetDefaultAccountUseCase struct {
	uow adapter.UnitOfWork
}

// NewSetDefaultAccountUseCase creates a new SetDefaultAccountUseCase instance.
func NewSetDefaultAccountUseCase(uow adapter.UnitOfWork) *SetDefaultAccountUseCase {
	return &SetDefaultAccountUseCase{
		uow: uow,
	}
}

// Execute performs the default change.
func (uc *SetDefaultAccountUseCase) Execute(ctx context.Context, input SetDefaultAccountInput) (*SetDefaultAccountOutput, error) {
	var account *entity.Account

	err := uc.uow.Do(ctx, func(stores adapter.Stores) error {
		target, err := stores.Accounts().FindByIDAndUser(ctx, input.AccountID, input.UserID)
		if err != nil {
			if errors.Is(err, domainerror.ErrAccountNotFound) {
				return domainerror.NewAccountError(
					domainerror.ErrCodeAccountNotFound,
					"account not found",
					domainerror.ErrAccountNotFound,
				)
			}
			return fmt.Errorf("failed to find account: %w", err)
		}

		if err := stores.Accounts().ClearDefaultByUser(ctx, input.UserID); err != nil {
			return fmt.Errorf("failed to clear previous default: %w", err)
		}

		if err := stores.Accounts().SetDefault(ctx, target.ID, true); err != nil {
			return fmt.Errorf("failed to set default account: %w", err)
		}

		target.IsDefault = true
		account = target
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &SetDefaultAccountOutput{Account: account}, nil
}
