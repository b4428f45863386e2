// Package error defines domain-specific errors for the WealthFlow application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("transaction amount must be positive")

	// ErrTransferDestinationRequired is returned when a transfer has no destination account.
	ErrTransferDestinationRequired = errors.New("destination account is required for transfers")

	// ErrTransferToSameAccount is returned when source and destination accounts are equal.
	ErrTransferToSameAccount = errors.New("source and destination accounts must be different")

	// ErrRecurringIntervalRequired is returned when a recurring transaction has no interval.
	ErrRecurringIntervalRequired = errors.New("recurring interval is required for recurring transactions")

	// ErrInvalidRecurringInterval is returned when the recurring interval is not supported.
	ErrInvalidRecurringInterval = errors.New("invalid recurring interval")

	// ErrEmptyTransactionIDs is returned when an empty list of transaction IDs is provided.
	ErrEmptyTransactionIDs = errors.New("transaction IDs list cannot be empty")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType     TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionAmount   TransactionErrorCode = "TXN-010002"
	ErrCodeTransferDestinationMissing TransactionErrorCode = "TXN-010003"
	ErrCodeTransferToSameAccount      TransactionErrorCode = "TXN-010004"
	ErrCodeRecurringIntervalMissing   TransactionErrorCode = "TXN-010005"
	ErrCodeInvalidRecurringInterval   TransactionErrorCode = "TXN-010006"
	ErrCodeEmptyTransactionIDs        TransactionErrorCode = "TXN-010007"
	ErrCodeDescriptionTooLong         TransactionErrorCode = "TXN-010008"

	// Lookup/authorization errors (02XXXX)
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-020001"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-020002"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
