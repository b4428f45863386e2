// Package transaction contains the ledger transaction use cases.
package transaction

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

const (
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 255
)

// TransactionDraft is a candidate transaction record as supplied by the API
// layer, an ingestion collaborator, or the recurring scheduler. It carries
// no identity; validation and posting happen in the use cases.
type TransactionDraft struct {
	Type              entity.TransactionType
	Amount            decimal.Decimal
	AccountID         uuid.UUID
	ToAccountID       *uuid.UUID
	Date              time.Time
	Description       string
	IsRecurring       bool
	RecurringInterval *entity.RecurringInterval
}

// validateDraft checks the semantic validity of a draft: positive amount,
// known type, recurring fields paired, and the transfer preconditions.
func validateDraft(draft TransactionDraft) error {
	if !entity.IsValidTransactionType(draft.Type) {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'INCOME', 'EXPENSE' or 'TRANSFER'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	if !draft.Amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"transaction amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}

	if len(draft.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}

	if err := validateTransferPreconditions(draft); err != nil {
		return err
	}

	if draft.IsRecurring {
		if draft.RecurringInterval == nil {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeRecurringIntervalMissing,
				"recurring interval is required for recurring transactions",
				domainerror.ErrRecurringIntervalRequired,
			)
		}
		if !entity.IsValidRecurringInterval(*draft.RecurringInterval) {
			return domainerror.NewTransactionError(
				domainerror.ErrCodeInvalidRecurringInterval,
				"recurring interval must be DAILY, WEEKLY, MONTHLY or YEARLY",
				domainerror.ErrInvalidRecurringInterval,
			)
		}
	}

	return nil
}
