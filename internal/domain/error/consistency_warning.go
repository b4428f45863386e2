// Package error defines domain-specific errors for the WealthFlow application.
package error

import (
	"fmt"

	"github.com/google/uuid"
)

// PartialConsistencyWarning reports that an operation completed but
// encountered a dangling reference, e.g. a transfer whose destination
// account was deleted after the transfer was posted. The primary effect of
// the operation still completes for the parts that are consistent; the
// anomaly is surfaced to the caller instead of being silently dropped.
type PartialConsistencyWarning struct {
	TransactionID uuid.UUID
	AccountID     uuid.UUID
	Reason        string
}

// String returns a human-readable description of the warning.
func (w *PartialConsistencyWarning) String() string {
	return fmt.Sprintf("transaction %s: account %s: %s", w.TransactionID, w.AccountID, w.Reason)
}

// NewPartialConsistencyWarning creates a new PartialConsistencyWarning.
func NewPartialConsistencyWarning(transactionID, accountID uuid.UUID, reason string) *PartialConsistencyWarning {
	return &PartialConsistencyWarning{
		TransactionID: transactionID,
		AccountID:     accountID,
		Reason:        reason,
	}
}
