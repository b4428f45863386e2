// Package error defines domain-specific errors for the WealthFlow application.
package error

import "errors"

// Notification domain errors.
var (
	// ErrNotificationFailed is returned when a notification cannot be delivered.
	ErrNotificationFailed = errors.New("notification delivery failed")

	// ErrInvalidNotificationKind is returned for an unknown notification kind.
	ErrInvalidNotificationKind = errors.New("invalid notification kind")
)

// NotificationErrorCode defines error codes for notification errors.
type NotificationErrorCode string

const (
	ErrCodeInvalidNotificationKind  NotificationErrorCode = "NTF-010001"
	ErrCodeTemporaryDeliveryFailure NotificationErrorCode = "NTF-020001"
	ErrCodePermanentDeliveryFailure NotificationErrorCode = "NTF-020002"
)

// NotificationError represents a notification error with code and message.
type NotificationError struct {
	Code    NotificationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NewNotificationError creates a new NotificationError with the given code and message.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return &NotificationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
