// Package transaction contains the ledger transaction use cases.
package transaction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID uuid.UUID
	Draft  TransactionDraft
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase posts a new transaction: the row insert and the
// balance adjustment(s) it implies commit in a single atomic unit.
type CreateTransactionUseCase struct {
	accountRepo adapter.AccountRepository
	uow         adapter.UnitOfWork
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(accountRepo adapter.AccountRepository, uow adapter.UnitOfWork) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		accountRepo: accountRepo,
		uow:         uow,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	if err := validateDraft(input.Draft); err != nil {
		return nil, err
	}

	if err := resolveDraftAccounts(ctx, uc.accountRepo, input.UserID, input.Draft); err != nil {
		return nil, err
	}

	tx := newTransactionFromDraft(input.UserID, input.Draft)

	err := uc.uow.Do(ctx, func(stores adapter.Stores) error {
		if err := stores.Transactions().Create(ctx, tx); err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		deltas := NewDeltaSet()
		deltas.AddEffect(tx, EffectOf(tx.Type, tx.Amount))

		_, err := ApplyDeltas(ctx, stores, tx.ID, deltas, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &CreateTransactionOutput{Transaction: tx}, nil
}

// newTransactionFromDraft builds the entity for a validated draft,
// initializing the recurring schedule when the draft is a template.
func newTransactionFromDraft(userID uuid.UUID, draft TransactionDraft) *entity.Transaction {
	toAccountID := draft.ToAccountID
	if draft.Type != entity.TransactionTypeTransfer {
		toAccountID = nil
	}

	tx := entity.NewTransaction(
		userID,
		draft.Type,
		draft.Amount,
		draft.AccountID,
		toAccountID,
		draft.Date,
		draft.Description,
	)

	if draft.IsRecurring && draft.RecurringInterval != nil {
		interval := *draft.RecurringInterval
		next := entity.NextOccurrence(draft.Date, interval)
		tx.IsRecurring = true
		tx.RecurringInterval = &interval
		tx.NextRecurrence = &next
	}

	return tx
}
