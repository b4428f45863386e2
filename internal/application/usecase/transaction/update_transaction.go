// Package transaction contains the ledger transaction use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Draft         TransactionDraft
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
	Warnings    []*domainerror.PartialConsistencyWarning
}

// UpdateTransactionUseCase rewrites a posted transaction. Both the effect
// magnitude/direction and the accounts it touches may change between the
// old and new version, so the old effect's inverse and the new effect are
// netted into one adjustment per affected account: an account that only
// loses its role receives just the reversal, an account that keeps its role
// receives the reversal and the new delta folded together, and no account
// is ever written twice.
type UpdateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	accountRepo     adapter.AccountRepository
	uow             adapter.UnitOfWork
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	accountRepo adapter.AccountRepository,
	uow adapter.UnitOfWork,
) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		uow:             uow,
	}
}

// Execute performs the transaction update.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
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
			"not authorized to update this transaction",
			domainerror.ErrNotAuthorizedToModifyTransaction,
		)
	}

	if err := validateDraft(input.Draft); err != nil {
		return nil, err
	}

	if err := resolveDraftAccounts(ctx, uc.accountRepo, input.UserID, input.Draft); err != nil {
		return nil, err
	}

	var (
		updated  *entity.Transaction
		warnings []*domainerror.PartialConsistencyWarning
	)

	err = uc.uow.Do(ctx, func(stores adapter.Stores) error {
		// Re-read the row inside the unit so the reversal is computed from
		// the committed version, not one observed before the unit started.
		current, err := stores.Transactions().FindByIDForUpdate(ctx, input.TransactionID)
		if err != nil {
			if errors.Is(err, domainerror.ErrTransactionNotFound) {
				return domainerror.NewTransactionError(
					domainerror.ErrCodeTransactionNotFound,
					"transaction not found",
					domainerror.ErrTransactionNotFound,
				)
			}
			return fmt.Errorf("failed to lock transaction: %w", err)
		}

		deltas := NewDeltaSet()
		deltas.AddEffect(current, EffectOf(current.Type, current.Amount).Inverse())

		updated = applyDraft(current, input.Draft)
		deltas.AddEffect(updated, EffectOf(updated.Type, updated.Amount))

		if err := stores.Transactions().Update(ctx, updated); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}

		warnings, err = ApplyDeltas(ctx, stores, updated.ID, deltas, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{
		Transaction: updated,
		Warnings:    warnings,
	}, nil
}

// applyDraft overwrites the mutable fields of a transaction with the draft,
// recomputing the recurring schedule when the draft (re)defines one.
func applyDraft(tx *entity.Transaction, draft TransactionDraft) *entity.Transaction {
	tx.Type = draft.Type
	tx.Amount = draft.Amount
	tx.AccountID = draft.AccountID
	tx.Date = draft.Date
	tx.Description = draft.Description

	if draft.Type == entity.TransactionTypeTransfer {
		tx.ToAccountID = draft.ToAccountID
	} else {
		tx.ToAccountID = nil
	}

	if draft.IsRecurring && draft.RecurringInterval != nil {
		interval := *draft.RecurringInterval
		next := entity.NextOccurrence(draft.Date, interval)
		tx.IsRecurring = true
		tx.RecurringInterval = &interval
		tx.NextRecurrence = &next
	} else {
		tx.IsRecurring = false
		tx.RecurringInterval = nil
		tx.NextRecurrence = nil
	}

	tx.UpdatedAt = time.Now().UTC()
	return tx
}
