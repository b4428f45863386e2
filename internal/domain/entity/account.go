// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType represents the kind of account.
type AccountType string

const (
	AccountTypeCurrent AccountType = "CURRENT"
	AccountTypeSavings AccountType = "SAVINGS"
)

// Account represents a user-owned account holding a running balance.
// The balance invariant is maintained exclusively by the ledger use cases:
// balance always equals the initial balance plus the sum of all settled
// transaction effects touching this account.
type Account struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Name      string
	Type      AccountType
	Balance   decimal.Decimal
	IsDefault bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAccount creates a new Account entity with an explicit initial balance.
func NewAccount(
	userID uuid.UUID,
	name string,
	accountType AccountType,
	initialBalance decimal.Decimal,
	isDefault bool,
) *Account {
	now := time.Now().UTC()

	return &Account{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Type:      accountType,
		Balance:   initialBalance,
		IsDefault: isDefault,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AccountWithTotals represents an account with aggregated transaction totals.
type AccountWithTotals struct {
	Account      *Account
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
}
