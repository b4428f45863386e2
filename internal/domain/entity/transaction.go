// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the type of transaction.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// RecurringInterval represents the cadence of a recurring transaction template.
type RecurringInterval string

const (
	RecurringIntervalDaily   RecurringInterval = "DAILY"
	RecurringIntervalWeekly  RecurringInterval = "WEEKLY"
	RecurringIntervalMonthly RecurringInterval = "MONTHLY"
	RecurringIntervalYearly  RecurringInterval = "YEARLY"
)

// TransactionStatus represents the settlement status of a transaction.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
)

// Transaction represents a ledger entry. Amount is always positive; the
// balance direction is encoded by Type, never by a negative amount.
// A TRANSFER references both a source account and a destination account.
// A row with IsRecurring=true acts as its own template: the scheduler
// advances NextRecurrence/LastRecurrence in place and materializes
// non-recurring copies.
type Transaction struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Type              TransactionType
	Amount            decimal.Decimal
	AccountID         uuid.UUID  // Source account
	ToAccountID       *uuid.UUID // Destination account, TRANSFER only
	Date              time.Time
	Description       string
	Status            TransactionStatus
	IsRecurring       bool
	RecurringInterval *RecurringInterval
	NextRecurrence    *time.Time
	LastRecurrence    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewTransaction creates a new Transaction entity.
func NewTransaction(
	userID uuid.UUID,
	transactionType TransactionType,
	amount decimal.Decimal,
	accountID uuid.UUID,
	toAccountID *uuid.UUID,
	date time.Time,
	description string,
) *Transaction {
	now := time.Now().UTC()

	return &Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        transactionType,
		Amount:      amount,
		AccountID:   accountID,
		ToAccountID: toAccountID,
		Date:        date,
		Description: description,
		Status:      TransactionStatusCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsTransfer reports whether the transaction moves money between two accounts.
func (t *Transaction) IsTransfer() bool {
	return t.Type == TransactionTypeTransfer
}

// IsValidTransactionType reports whether the given type is one of the
// supported transaction types.
func IsValidTransactionType(transactionType TransactionType) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return true
	}
	return false
}

// IsValidRecurringInterval reports whether the given interval is supported.
func IsValidRecurringInterval(interval RecurringInterval) bool {
	switch interval {
	case RecurringIntervalDaily, RecurringIntervalWeekly,
		RecurringIntervalMonthly, RecurringIntervalYearly:
		return true
	}
	return false
}
