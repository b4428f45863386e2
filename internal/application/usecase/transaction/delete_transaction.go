// Package transaction contains the ledger transaction use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
}

// DeleteTransactionOutput represents the output of transaction deletion.
type DeleteTransactionOutput struct {
	Warnings []*domainerror.PartialConsistencyWarning
}

// DeleteTransactionUseCase removes a transaction and applies the inverse of
// its effect to the affected account(s) in one atomic unit.
type DeleteTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	uow             adapter.UnitOfWork
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(transactionRepo adapter.TransactionRepository, uow adapter.UnitOfWork) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		transactionRepo: transactionRepo,
		uow:             uow,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	existing, err := uc.transactionRepo.FindByID(ctx, input.TransactionID)
	if err != nil {
		if errors.Is(err, domainerror.ErrTransactionNotFound) {
			return nil, domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"transaction not found",
				domainerror.ErrTransactionNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}

	if existing.UserID != input.UserID {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeNotAuthorizedTransaction,
			"not authorized to delete this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	var warnings []*domainerror.PartialConsistencyWarning

	err = uc.uow.Do(ctx, func(stores adapter.Stores) error {
		current, err := stores.Transactions().FindByIDForUpdate(ctx, input.TransactionID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				// Already gone; nothing to reverse.
				return nil
			}
			return fmt.Errorf("failed to lock transaction: %w", err)
		}

		deltas := NewDeltaSet()
		deltas.AddEffect(current, EffectOf(current.Type, current.Amount).Inverse())

		if err := stores.Transactions().Delete(ctx, current.ID); err != nil {
			return fmt.Errorf("failed to delete transaction: %w", err)
		}

		warnings, err = ApplyDeltas(ctx, stores, current.ID, deltas, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &DeleteTransactionOutput{Warnings: warnings}, nil
}
