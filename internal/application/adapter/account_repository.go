// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence operations.
// Balance writes must only happen through the ledger use cases inside a
// UnitOfWork; no other code path may mutate Account.Balance.
type AccountRepository interface {
	// Create creates a new account in the database.
	Create(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByIDAndUser retrieves an account by ID, verifying ownership.
	FindByIDAndUser(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Account, error)

	// FindByIDForUpdate retrieves an account by ID holding a row lock until
	// the enclosing atomic unit commits. Only meaningful inside a UnitOfWork.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByUser retrieves all accounts owned by a user.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Account, error)

	// FindDefaultByUser retrieves the user's default account.
	FindDefaultByUser(ctx context.Context, userID uuid.UUID) (*entity.Account, error)

	// CountByUser counts the accounts owned by a user.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// ClearDefaultByUser unsets the default flag on all of the user's accounts.
	ClearDefaultByUser(ctx context.Context, userID uuid.UUID) error

	// Update updates an existing account in the database.
	Update(ctx context.Context, account *entity.Account) error

	// UpdateBalance writes a new balance for the account.
	UpdateBalance(ctx context.Context, id uuid.UUID, balance decimal.Decimal) error

	// SetDefault sets the default flag on a single account.
	SetDefault(ctx context.Context, id uuid.UUID, isDefault bool) error

	// Delete removes an account from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
