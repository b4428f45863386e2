package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/wealthflow/backend/internal/application/adapter"
)

// unitOfWork implements adapter.UnitOfWork on top of a database transaction.
// Repositories handed to the callback share the transaction handle, so row
// locks taken through them are held until the unit commits or rolls back.
type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a new unit of work bound to the given database.
func NewUnitOfWork(db *gorm.DB) adapter.UnitOfWork {
	return &unitOfWork{
		db: db,
	}
}

// Do runs fn inside a single database transaction. Any error returned by fn
// rolls the whole unit back.
func (u *unitOfWork) Do(ctx context.Context, fn func(stores adapter.Stores) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&txStores{tx: tx})
	})
}

// txStores exposes repositories bound to one open transaction.
type txStores struct {
	tx *gorm.DB
}

func (s *txStores) Accounts() adapter.AccountRepository {
	return NewAccountRepository(s.tx)
}

func (s *txStores) Transactions() adapter.TransactionRepository {
	return NewTransactionRepository(s.tx)
}

func (s *txStores) Budgets() adapter.BudgetRepository {
	return NewBudgetRepository(s.tx)
}
