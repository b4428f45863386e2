// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/domain/entity"
)

// TransactionTotals represents aggregated totals for an account's transactions.
type TransactionTotals struct {
	IncomeTotal   decimal.Decimal
	ExpenseTotal  decimal.Decimal
	TransferIn    decimal.Decimal
	TransferOut   decimal.Decimal
}

// TypeTotals represents per-type sums over a date range for one user.
type TypeTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	Count        int64
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDForUpdate retrieves a transaction by ID holding a row lock
	// until the enclosing atomic unit commits.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDsAndUser retrieves all transactions matching the given IDs
	// that are owned by the user. Missing IDs are simply absent from the result.
	FindByIDsAndUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByUser retrieves all transactions for a given user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)

	// FindByAccount retrieves all transactions whose source account is the given account.
	FindByAccount(ctx context.Context, accountID uuid.UUID) ([]*entity.Transaction, error)

	// FindDueRecurring retrieves all recurring templates whose next
	// recurrence is at or before now.
	FindDueRecurring(ctx context.Context, now time.Time) ([]*entity.Transaction, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByIDs removes multiple transactions, returning the deleted count.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error)

	// DeleteByAccount removes all transactions whose source account is the
	// given account. Used by the account-deletion cascade.
	DeleteByAccount(ctx context.Context, accountID uuid.UUID) (int64, error)

	// SumExpensesForAccountInRange sums EXPENSE amounts against an account
	// within [start, end].
	SumExpensesForAccountInRange(ctx context.Context, accountID uuid.UUID, start, end time.Time) (decimal.Decimal, error)

	// GetTotalsByAccount calculates income/expense/transfer totals for an account.
	GetTotalsByAccount(ctx context.Context, accountID uuid.UUID) (*TransactionTotals, error)

	// GetTypeTotalsForUserInRange sums income and expense amounts for a user
	// within [start, end]. Used by the monthly report generator.
	GetTypeTotalsForUserInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (*TypeTotals, error)
}
