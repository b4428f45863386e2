// Package budget contains budget threshold and alerting use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
)

// AlertThresholdPercent is the spending percentage at which an alert fires.
const AlertThresholdPercent = 80

// EvaluateAlertsInput represents the input for a budget evaluation pass.
type EvaluateAlertsInput struct {
	Now time.Time
}

// EvaluateAlertsOutput represents the output of a budget evaluation pass.
type EvaluateAlertsOutput struct {
	Checked    int
	AlertsSent int
	Failed     int
}

// EvaluateAlertsUseCase checks every budget against the month-to-date
// expenses on its owner's default account and notifies the owner when
// spending reaches the alert threshold. At most one alert is sent per
// budget per calendar month.
type EvaluateAlertsUseCase struct {
	budgetRepo      adapter.BudgetRepository
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	userRepo        adapter.UserRepository
	notifier        adapter.Notifier
}

// NewEvaluateAlertsUseCase creates a new EvaluateAlertsUseCase instance.
func NewEvaluateAlertsUseCase(
	budgetRepo adapter.BudgetRepository,
	accountRepo adapter.AccountRepository,
	transactionRepo adapter.TransactionRepository,
	userRepo adapter.UserRepository,
	notifier adapter.Notifier,
) *EvaluateAlertsUseCase {
	return &EvaluateAlertsUseCase{
		budgetRepo:      budgetRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		notifier:        notifier,
	}
}

// Execute runs one evaluation pass over all budgets.
func (uc *EvaluateAlertsUseCase) Execute(ctx context.Context, input EvaluateAlertsInput) (*EvaluateAlertsOutput, error) {
	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	budgets, err := uc.budgetRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}

	output := &EvaluateAlertsOutput{}
	for _, budget := range budgets {
		output.Checked++

		sent, err := uc.evaluateBudget(ctx, budget, now)
		if err != nil {
			output.Failed++
			slog.Error("Failed to evaluate budget",
				"budget_id", budget.ID,
				"user_id", budget.UserID,
				"error", err,
			)
			continue
		}
		if sent {
			output.AlertsSent++
		}
	}

	return output, nil
}

func (uc *EvaluateAlertsUseCase) evaluateBudget(ctx context.Context, budget *entity.Budget, now time.Time) (bool, error) {
	if budget.Amount.IsZero() || budget.Amount.IsNegative() {
		return false, nil
	}
	if budget.AlertAlreadySentThisMonth(now) {
		return false, nil
	}

	defaultAccount, err := uc.accountRepo.FindDefaultByUser(ctx, budget.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAccountNotFound) {
			// No default account to evaluate against.
			return false, nil
		}
		return false, fmt.Errorf("failed to find default account: %w", err)
	}

	monthStart, monthEnd := entity.MonthRange(now)
	spent, err := uc.transactionRepo.SumExpensesForAccountInRange(ctx, defaultAccount.ID, monthStart, monthEnd)
	if err != nil {
		return false, fmt.Errorf("failed to sum expenses: %w", err)
	}

	percentUsed := spent.Div(budget.Amount).Mul(decimal.NewFromInt(100))
	if percentUsed.LessThan(decimal.NewFromInt(AlertThresholdPercent)) {
		return false, nil
	}

	user, err := uc.userRepo.FindByID(ctx, budget.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to find budget owner: %w", err)
	}

	notification := adapter.Notification{
		RecipientEmail: user.Email,
		RecipientName:  user.Name,
		Kind:           adapter.NotificationKindBudgetAlert,
		Subject:        "Budget Alert for " + defaultAccount.Name,
		Payload: map[string]interface{}{
			"accountName":    defaultAccount.Name,
			"percentageUsed": percentUsed.Round(1).String(),
			"budgetAmount":   budget.Amount.String(),
			"totalExpenses":  spent.String(),
		},
	}
	if err := uc.notifier.Notify(ctx, notification); err != nil {
		// Leave lastAlertSent untouched so the next pass retries.
		return false, fmt.Errorf("failed to deliver budget alert: %w", err)
	}

	if err := uc.budgetRepo.MarkAlertSent(ctx, budget.ID, now); err != nil {
		return false, fmt.Errorf("failed to mark alert sent: %w", err)
	}

	slog.Info("Budget alert sent",
		"budget_id", budget.ID,
		"user_id", budget.UserID,
		"percentage_used", percentUsed.Round(1).String(),
	)

	return true, nil
}
