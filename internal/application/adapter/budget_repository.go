// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByUser retrieves the budget for a user.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Budget, error)

	// FindAll retrieves all budgets. Used by the alert evaluator.
	FindAll(ctx context.Context) ([]*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// MarkAlertSent records the timestamp of the last alert for a budget.
	MarkAlertSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error
}
