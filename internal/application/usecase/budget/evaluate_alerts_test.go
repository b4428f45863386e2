// Package budget contains budget threshold and alerting use cases.
package budget

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	"github.com/wealthflow/backend/internal/integration/email"
	"github.com/wealthflow/backend/internal/integration/persistence"
	"github.com/wealthflow/backend/internal/integration/persistence/model"
)

type alertTestEnv struct {
	budgetRepo      adapter.BudgetRepository
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	userRepo        adapter.UserRepository
	notifier        *email.MockNotifier
	user            *entity.User
}

func newAlertTestEnv(t *testing.T) *alertTestEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.UserModel{},
		&model.AccountModel{},
		&model.TransactionModel{},
		&model.BudgetModel{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	env := &alertTestEnv{
		budgetRepo:      persistence.NewBudgetRepository(db),
		accountRepo:     persistence.NewAccountRepository(db),
		transactionRepo: persistence.NewTransactionRepository(db),
		userRepo:        persistence.NewUserRepository(db),
		notifier:        email.NewMockNotifier(),
		user:            entity.NewUser("jordan@example.com", "Jordan"),
	}
	if err := env.userRepo.Create(context.Background(), env.user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return env
}

func (e *alertTestEnv) useCase() *EvaluateAlertsUseCase {
	return NewEvaluateAlertsUseCase(e.budgetRepo, e.accountRepo, e.transactionRepo, e.userRepo, e.notifier)
}

// seedSpending sets up a default account with a budget and one expense of the
// given amount dated inside now's month.
func (e *alertTestEnv) seedSpending(t *testing.T, budgetAmount, expenseAmount int64, now time.Time) *entity.Budget {
	t.Helper()

	account := entity.NewAccount(e.user.ID, "Checking", entity.AccountTypeCurrent, decimal.NewFromInt(5000), true)
	if err := e.accountRepo.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	budget := entity.NewBudget(e.user.ID, decimal.NewFromInt(budgetAmount))
	if err := e.budgetRepo.Create(context.Background(), budget); err != nil {
		t.Fatalf("failed to create budget: %v", err)
	}

	if expenseAmount > 0 {
		expense := entity.NewTransaction(e.user.ID, entity.TransactionTypeExpense, decimal.NewFromInt(expenseAmount), account.ID, nil, now.Add(-24*time.Hour), "spending")
		if err := e.transactionRepo.Create(context.Background(), expense); err != nil {
			t.Fatalf("failed to create expense: %v", err)
		}
	}

	return budget
}

func TestEvaluateAlerts(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	t.Run("alert fires at the threshold", func(t *testing.T) {
		env := newAlertTestEnv(t)
		budget := env.seedSpending(t, 1000, 800, now)

		out, err := env.useCase().Execute(context.Background(), EvaluateAlertsInput{Now: now})
		if err != nil {
			t.Fatalf("evaluation failed: %v", err)
		}

		if out.AlertsSent != 1 {
			t.Fatalf("expected 1 alert, got %d", out.AlertsSent)
		}
		if len(env.notifier.Sent) != 1 {
			t.Fatalf("expected 1 notification, got %d", len(env.notifier.Sent))
		}

		sent := env.notifier.Sent[0]
		if sent.Kind != adapter.NotificationKindBudgetAlert {
			t.Errorf("expected budget-alert kind, got %s", sent.Kind)
		}
		if sent.RecipientEmail != "jordan@example.com" {
			t.Errorf("unexpected recipient %s", sent.RecipientEmail)
		}
		if sent.Payload["percentageUsed"] != "80" {
			t.Errorf("expected 80 percent used, got %v", sent.Payload["percentageUsed"])
		}

		stored, err := env.budgetRepo.FindByUser(context.Background(), budget.UserID)
		if err != nil {
			t.Fatalf("failed to reload budget: %v", err)
		}
		if stored.LastAlertSent == nil {
			t.Error("expected lastAlertSent to be recorded")
		}
	})

	t.Run("no alert below the threshold", func(t *testing.T) {
		env := newAlertTestEnv(t)
		env.seedSpending(t, 1000, 799, now)

		out, err := env.useCase().Execute(context.Background(), EvaluateAlertsInput{Now: now})
		if err != nil {
			t.Fatalf("evaluation failed: %v", err)
		}
		if out.AlertsSent != 0 || len(env.notifier.Sent) != 0 {
			t.Errorf("expected no alerts, got %d", out.AlertsSent)
		}
	})

	t.Run("at most one alert per month", func(t *testing.T) {
		env := newAlertTestEnv(t)
		env.seedSpending(t, 1000, 900, now)

		uc := env.useCase()
		if _, err := uc.Execute(context.Background(), EvaluateAlertsInput{Now: now}); err != nil {
			t.Fatalf("first pass failed: %v", err)
		}
		if _, err := uc.Execute(context.Background(), EvaluateAlertsInput{Now: now.Add(48 * time.Hour)}); err != nil {
			t.Fatalf("second pass failed: %v", err)
		}

		if len(env.notifier.Sent) != 1 {
			t.Errorf("expected exactly 1 notification in the month, got %d", len(env.notifier.Sent))
		}
	})

	t.Run("a new month allows a new alert", func(t *testing.T) {
		env := newAlertTestEnv(t)
		budget := env.seedSpending(t, 1000, 900, now)

		lastMonth := now.AddDate(0, -1, 0)
		if err := env.budgetRepo.MarkAlertSent(context.Background(), budget.ID, lastMonth); err != nil {
			t.Fatalf("failed to backdate alert: %v", err)
		}

		out, err := env.useCase().Execute(context.Background(), EvaluateAlertsInput{Now: now})
		if err != nil {
			t.Fatalf("evaluation failed: %v", err)
		}
		if out.AlertsSent != 1 {
			t.Errorf("expected a fresh alert this month, got %d", out.AlertsSent)
		}
	})

	t.Run("delivery failure is retried on the next pass", func(t *testing.T) {
		env := newAlertTestEnv(t)
		env.seedSpending(t, 1000, 900, now)

		env.notifier.ShouldFail = true
		out, err := env.useCase().Execute(context.Background(), EvaluateAlertsInput{Now: now})
		if err != nil {
			t.Fatalf("evaluation failed: %v", err)
		}
		if out.Failed != 1 || out.AlertsSent != 0 {
			t.Fatalf("expected a failed delivery, got %+v", out)
		}

		// lastAlertSent must stay unset so the next pass retries.
		env.notifier.ShouldFail = false
		out, err = env.useCase().Execute(context.Background(), EvaluateAlertsInput{Now: now})
		if err != nil {
			t.Fatalf("retry pass failed: %v", err)
		}
		if out.AlertsSent != 1 {
			t.Errorf("expected the retry to deliver, got %+v", out)
		}
	})

	t.Run("user without a default account is skipped", func(t *testing.T) {
		env := newAlertTestEnv(t)
		budget := entity.NewBudget(env.user.ID, decimal.NewFromInt(1000))
		if err := env.budgetRepo.Create(context.Background(), budget); err != nil {
			t.Fatalf("failed to create budget: %v", err)
		}

		out, err := env.useCase().Execute(context.Background(), EvaluateAlertsInput{Now: now})
		if err != nil {
			t.Fatalf("evaluation failed: %v", err)
		}
		if out.Checked != 1 || out.AlertsSent != 0 || out.Failed != 0 {
			t.Errorf("expected a silent skip, got %+v", out)
		}
	})

	t.Run("expenses from the previous month are ignored", func(t *testing.T) {
		env := newAlertTestEnv(t)
		env.seedSpending(t, 1000, 0, now)

		account, err := env.accountRepo.FindDefaultByUser(context.Background(), env.user.ID)
		if err != nil {
			t.Fatalf("failed to find default account: %v", err)
		}
		old := entity.NewTransaction(env.user.ID, entity.TransactionTypeExpense, decimal.NewFromInt(950), account.ID, nil, now.AddDate(0, -1, 0), "old spending")
		if err := env.transactionRepo.Create(context.Background(), old); err != nil {
			t.Fatalf("failed to create old expense: %v", err)
		}

		out, err := env.useCase().Execute(context.Background(), EvaluateAlertsInput{Now: now})
		if err != nil {
			t.Fatalf("evaluation failed: %v", err)
		}
		if out.AlertsSent != 0 {
			t.Errorf("expected no alert for last month's spending, got %d", out.AlertsSent)
		}
	})
}
