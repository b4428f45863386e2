// Package transaction contains the ledger transaction use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// The transfer coordinator is a thin precondition layer over the generic
// effect computation: a TRANSFER must name a destination distinct from its
// source, the destination must exist and belong to the same owner, and both
// legs are always written inside the same atomic unit (the delta set hands
// one adjustment per account to that unit). It holds no state of its own.

// validateTransferPreconditions enforces the shape rules that do not need
// storage access: destination present iff TRANSFER, and never the source.
func validateTransferPreconditions(draft TransactionDraft) error {
	if draft.Type != entity.TransactionTypeTransfer {
		return nil
	}

	if draft.ToAccountID == nil {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransferDestinationMissing,
			"destination account is required for transfers",
			domainerror.ErrTransferDestinationRequired,
		)
	}

	if *draft.ToAccountID == draft.AccountID {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTransferToSameAccount,
			"source and destination accounts must be different",
			domainerror.ErrTransferToSameAccount,
		)
	}

	return nil
}

// resolveDraftAccounts verifies that the draft's source account (and, for
// transfers, its destination account) exists and belongs to the owner.
func resolveDraftAccounts(
	ctx context.Context,
	accountRepo adapter.AccountRepository,
	userID uuid.UUID,
	draft TransactionDraft,
) error {
	if _, err := accountRepo.FindByIDAndUser(ctx, draft.AccountID, userID); err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			return domainerror.NewAccountError(
				domainerror.ErrCodeAccountNotFound,
				"account not found",
				domainerror.ErrAccountNotFound,
			)
		}
		return fmt.Errorf("failed to find account: %w", err)
	}

	if draft.Type == entity.TransactionTypeTransfer && draft.ToAccountID != nil {
		if _, err := accountRepo.FindByIDAndUser(ctx, *draft.ToAccountID, userID); err != nil {
			if errors.Is(err, domainerror.ErrAccountNotFound) {
				return domainerror.NewAccountError(
					domainerror.ErrCodeDestinationAccountNotFound,
					"destination account not found",
					domainerror.ErrDestinationAccountNotFound,
				)
			}
			return fmt.Errorf("failed to find destination account: %w", err)
		}
	}

	return nil
}
