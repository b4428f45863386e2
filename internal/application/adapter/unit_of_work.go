// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// Stores provides access to the repositories bound to a single atomic unit.
// All reads and writes performed through these repositories commit together
// or not at all.
type Stores interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Budgets() BudgetRepository
}

// UnitOfWork runs a function inside one atomic unit against the entity
// store. Balance reads performed inside the unit observe the current
// committed state (not a value cached before the unit started), and the
// unit's writes become visible to other units only as a whole. Any error
// returned by fn rolls the entire unit back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(stores Stores) error) error
}
