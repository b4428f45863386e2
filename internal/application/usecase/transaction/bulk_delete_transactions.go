// Package transaction contains the ledger transaction use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// BulkDeleteTransactionsInput represents the input for bulk transaction deletion.
type BulkDeleteTransactionsInput struct {
	TransactionIDs []uuid.UUID
	UserID         uuid.UUID
}

// BulkDeleteTransactionsOutput represents the output of bulk transaction deletion.
type BulkDeleteTransactionsOutput struct {
	DeletedCount int64
	Warnings     []*domainerror.PartialConsistencyWarning
}

// BulkDeleteTransactionsUseCase deletes a batch of transactions. The batch's
// inverse effects are netted per account first, so the unit performs exactly
// one balance write per affected account and the store is never observable
// in a state between "all deleted" and "none deleted".
type BulkDeleteTransactionsUseCase struct {
	uow adapter.UnitOfWork
}

// NewBulkDeleteTransactionsUseCase creates a new BulkDeleteTransactionsUseCase instance.
func NewBulkDeleteTransactionsUseCase(uow adapter.UnitOfWork) *BulkDeleteTransactionsUseCase {
	return &BulkDeleteTransactionsUseCase{
		uow: uow,
	}
}

// Execute performs the bulk transaction deletion.
func (uc *BulkDeleteTransactionsUseCase) Execute(ctx context.Context, input BulkDeleteTransactionsInput) (*BulkDeleteTransactionsOutput, error) {
	if len(input.TransactionIDs) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyTransactionIDs,
			"transaction IDs list cannot be empty",
			domainerror.ErrEmptyTransactionIDs,
		)
	}

	output := &BulkDeleteTransactionsOutput{}

	err := uc.uow.Do(ctx, func(stores adapter.Stores) error {
		// Only rows owned by the caller participate; foreign or unknown IDs
		// are silently absent from the fetch and therefore never deleted.
		transactions, err := stores.Transactions().FindByIDsAndUser(ctx, input.TransactionIDs, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to fetch transactions: %w", err)
		}
		if len(transactions) == 0 {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeTransactionNotFound,
				"no matching transactions found",
				domainerror.ErrTransactionNotFound,
			)
		}

		deltas := NetInverseDeltas(transactions)

		ids := make([]uuid.UUID, len(transactions))
		for i, tx := range transactions {
			ids[i] = tx.ID
		}

		deleted, err := stores.Transactions().DeleteByIDs(ctx, ids, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to delete transactions: %w", err)
		}
		output.DeletedCount = deleted

		// Warnings from a netted batch carry no single transaction identity.
		output.Warnings, err = ApplyDeltas(ctx, stores, uuid.Nil, deltas, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}
