// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget represents a monthly spending threshold for a user. It is evaluated
// against whichever account is currently the user's default account.
type Budget struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal // Monthly threshold, positive
	LastAlertSent *time.Time      // Set only by the alert evaluator
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewBudget creates a new Budget entity.
func NewBudget(userID uuid.UUID, amount decimal.Decimal) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Amount:    amount,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AlertAlreadySentThisMonth reports whether an alert was already sent in the
// calendar month of now. One alert per month is allowed regardless of how
// many times the threshold is re-crossed.
func (b *Budget) AlertAlreadySentThisMonth(now time.Time) bool {
	if b.LastAlertSent == nil {
		return false
	}
	return b.LastAlertSent.Year() == now.Year() && b.LastAlertSent.Month() == now.Month()
}
