// Package error defines domain-specific errors for the WealthFlow application.
package error

import "errors"

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found or not owned by the caller.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDestinationAccountNotFound is returned when a transfer destination account does not exist.
	ErrDestinationAccountNotFound = errors.New("destination account not found")

	// ErrInvalidAccountType is returned when the account type is invalid.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrInvalidInitialBalance is returned when the initial balance is not a valid amount.
	ErrInvalidInitialBalance = errors.New("invalid initial balance")

	// ErrCannotDeleteLastAccount is returned when deleting the only remaining account.
	ErrCannotDeleteLastAccount = errors.New("cannot delete the last account")

	// ErrAccountNameRequired is returned when the account name is empty.
	ErrAccountNameRequired = errors.New("account name is required")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAccountType      AccountErrorCode = "ACC-010001"
	ErrCodeInvalidInitialBalance   AccountErrorCode = "ACC-010002"
	ErrCodeAccountNameRequired     AccountErrorCode = "ACC-010003"
	ErrCodeCannotDeleteLastAccount AccountErrorCode = "ACC-010004"

	// Lookup errors (02XXXX)
	ErrCodeAccountNotFound            AccountErrorCode = "ACC-020001"
	ErrCodeDestinationAccountNotFound AccountErrorCode = "ACC-020002"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
