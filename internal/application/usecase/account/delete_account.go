// Package account contains account-related use cases.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	AccountID uuid.UUID
	UserID    uuid.UUID
}

// DeleteAccountOutput represents the output of account deletion.
type DeleteAccountOutput struct {
	RemovedTransactions int64
}

// DeleteAccountUseCase removes an account. The last remaining account of an
// owner cannot be deleted; when the deleted account is the default, default
// status moves to another owned account inside the same atomic unit as the
// deletion and its transaction cascade.
type DeleteAccountUseCase struct {
	uow adapter.UnitOfWork
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(uow adapter.UnitOfWork) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		uow: uow,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	output := &DeleteAccountOutput{}

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

		owned, err := stores.Accounts().FindByUser(ctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to list accounts: %w", err)
		}
		if len(owned) <= 1 {
			return domainerror.NewAccountError(
				domainerror.ErrCodeCannotDeleteLastAccount,
				"cannot delete the last account; create another account first",
				domainerror.ErrCannotDeleteLastAccount,
			)
		}

		if target.IsDefault {
			for _, other := range owned {
				if other.ID != target.ID {
					if err := stores.Accounts().SetDefault(ctx, other.ID, true); err != nil {
						return fmt.Errorf("failed to reassign default account: %w", err)
					}
					break
				}
			}
		}

		// Transactions sourced on this account go with it. Transfers on
		// other accounts that pointed here become dangling and are handled
		// by the reconciliation engine's warning policy when next touched.
		removed, err := stores.Transactions().DeleteByAccount(ctx, target.ID)
		if err != nil {
			return fmt.Errorf("failed to cascade transactions: %w", err)
		}
		output.RemovedTransactions = removed

		if err := stores.Accounts().Delete(ctx, target.ID); err != nil {
			return fmt.Errorf("failed to delete account: %w", err)
		}

		slog.Info("Account deleted",
			"account_id", target.ID,
			"user_id", input.UserID,
			"cascaded_transactions", removed,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}
