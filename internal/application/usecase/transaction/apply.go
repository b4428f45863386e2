// Package transaction contains the ledger transaction use cases.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/adapter"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// ApplyDeltas applies one net balance adjustment per affected account,
// inside the caller's atomic unit. Every write reads the account's current
// stored balance under a row lock first; balances are never computed from a
// value captured before the unit started, because an unrelated transaction
// may have moved the balance in the meantime.
//
// When tolerateMissing is true a vanished account (deleted since the
// transaction was posted) is skipped and reported as a
// PartialConsistencyWarning instead of failing the unit; the account row is
// gone and cannot be further debited or credited.
func ApplyDeltas(
	ctx context.Context,
	stores adapter.Stores,
	transactionID uuid.UUID,
	deltas DeltaSet,
	tolerateMissing bool,
) ([]*domainerror.PartialConsistencyWarning, error) {
	var warnings []*domainerror.PartialConsistencyWarning

	for _, accountID := range deltas.AccountIDs() {
		delta := deltas[accountID]
		if delta.IsZero() {
			continue
		}

		account, err := stores.Accounts().FindByIDForUpdate(ctx, accountID)
		if err != nil {
			if errors.Is(err, domainerror.ErrAccountNotFound) {
				if tolerateMissing {
					warning := domainerror.NewPartialConsistencyWarning(
						transactionID, accountID,
						"account no longer exists, balance adjustment skipped",
					)
					slog.Warn("Skipping balance adjustment for missing account",
						"transaction_id", transactionID,
						"account_id", accountID,
						"delta", delta.String(),
					)
					warnings = append(warnings, warning)
					continue
				}
				return nil, domainerror.NewAccountError(
					domainerror.ErrCodeAccountNotFound,
					"account not found",
					domainerror.ErrAccountNotFound,
				)
			}
			return nil, fmt.Errorf("failed to lock account %s: %w", accountID, err)
		}

		newBalance := account.Balance.Add(delta)
		if err := stores.Accounts().UpdateBalance(ctx, accountID, newBalance); err != nil {
			return nil, fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
		}
	}

	return warnings, nil
}
