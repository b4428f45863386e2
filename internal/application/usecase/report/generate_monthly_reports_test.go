// Package report contains the monthly report generation use case.
package report

import (
	"context"
	"errors"
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

// stubInsights is a canned InsightsService for tests.
type stubInsights struct {
	available bool
	insights  []string
	err       error
}

func (s *stubInsights) IsAvailable() bool { return s.available }

func (s *stubInsights) GenerateMonthlyInsights(ctx context.Context, stats adapter.MonthlyStats) ([]string, error) {
	return s.insights, s.err
}

type reportTestEnv struct {
	userRepo        adapter.UserRepository
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	notifier        *email.MockNotifier
}

func newReportTestEnv(t *testing.T) *reportTestEnv {
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

	return &reportTestEnv{
		userRepo:        persistence.NewUserRepository(db),
		accountRepo:     persistence.NewAccountRepository(db),
		transactionRepo: persistence.NewTransactionRepository(db),
		notifier:        email.NewMockNotifier(),
	}
}

// seedUserWithActivity creates a user with one account, income of 5000 and
// expenses of 3200 dated inside the month preceding now.
func (e *reportTestEnv) seedUserWithActivity(t *testing.T, now time.Time) *entity.User {
	t.Helper()

	user := entity.NewUser("jordan@example.com", "Jordan")
	if err := e.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	account := entity.NewAccount(user.ID, "Checking", entity.AccountTypeCurrent, decimal.NewFromInt(1000), true)
	if err := e.accountRepo.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	lastMonth := now.AddDate(0, -1, 0)
	seed := []*entity.Transaction{
		entity.NewTransaction(user.ID, entity.TransactionTypeIncome, decimal.NewFromInt(5000), account.ID, nil, lastMonth, "salary"),
		entity.NewTransaction(user.ID, entity.TransactionTypeExpense, decimal.NewFromInt(3200), account.ID, nil, lastMonth, "living"),
		// Outside the report window; must not be counted.
		entity.NewTransaction(user.ID, entity.TransactionTypeExpense, decimal.NewFromInt(999), account.ID, nil, now, "this month"),
	}
	for _, tx := range seed {
		if err := e.transactionRepo.Create(context.Background(), tx); err != nil {
			t.Fatalf("failed to seed transaction: %v", err)
		}
	}
	return user
}

func TestGenerateMonthlyReports(t *testing.T) {
	now := time.Date(2025, time.April, 1, 2, 0, 0, 0, time.UTC)

	t.Run("report covers the preceding month", func(t *testing.T) {
		env := newReportTestEnv(t)
		env.seedUserWithActivity(t, now)

		uc := NewGenerateMonthlyReportsUseCase(env.userRepo, env.transactionRepo, &stubInsights{}, env.notifier)
		out, err := uc.Execute(context.Background(), GenerateMonthlyReportsInput{Now: now})
		if err != nil {
			t.Fatalf("report run failed: %v", err)
		}

		if out.Sent != 1 || out.Failed != 0 {
			t.Fatalf("expected 1 sent, got %+v", out)
		}

		sent := env.notifier.Sent[0]
		if sent.Kind != adapter.NotificationKindMonthlyReport {
			t.Errorf("expected monthly-report kind, got %s", sent.Kind)
		}
		if sent.Payload["month"] != "March" {
			t.Errorf("expected report for March, got %v", sent.Payload["month"])
		}
		if sent.Payload["totalIncome"] != "5000" {
			t.Errorf("expected income 5000, got %v", sent.Payload["totalIncome"])
		}
		if sent.Payload["totalExpense"] != "3200" {
			t.Errorf("expected expenses 3200, got %v", sent.Payload["totalExpense"])
		}
		if sent.Payload["net"] != "1800" {
			t.Errorf("expected net 1800, got %v", sent.Payload["net"])
		}
	})

	t.Run("unavailable insights fall back to a generic line", func(t *testing.T) {
		env := newReportTestEnv(t)
		env.seedUserWithActivity(t, now)

		uc := NewGenerateMonthlyReportsUseCase(env.userRepo, env.transactionRepo, &stubInsights{available: false}, env.notifier)
		if _, err := uc.Execute(context.Background(), GenerateMonthlyReportsInput{Now: now}); err != nil {
			t.Fatalf("report run failed: %v", err)
		}

		insights, ok := env.notifier.Sent[0].Payload["insights"].([]string)
		if !ok || len(insights) != 1 {
			t.Fatalf("expected a single fallback insight, got %v", env.notifier.Sent[0].Payload["insights"])
		}
	})

	t.Run("insight errors do not block delivery", func(t *testing.T) {
		env := newReportTestEnv(t)
		env.seedUserWithActivity(t, now)

		insights := &stubInsights{available: true, err: errors.New("model unavailable")}
		uc := NewGenerateMonthlyReportsUseCase(env.userRepo, env.transactionRepo, insights, env.notifier)
		out, err := uc.Execute(context.Background(), GenerateMonthlyReportsInput{Now: now})
		if err != nil {
			t.Fatalf("report run failed: %v", err)
		}
		if out.Sent != 1 {
			t.Errorf("expected delivery despite the insight failure, got %+v", out)
		}
	})

	t.Run("generated insights are passed through", func(t *testing.T) {
		env := newReportTestEnv(t)
		env.seedUserWithActivity(t, now)

		canned := []string{"Income outpaced spending.", "Expenses fell 10%.", "Solid savings month."}
		uc := NewGenerateMonthlyReportsUseCase(env.userRepo, env.transactionRepo, &stubInsights{available: true, insights: canned}, env.notifier)
		if _, err := uc.Execute(context.Background(), GenerateMonthlyReportsInput{Now: now}); err != nil {
			t.Fatalf("report run failed: %v", err)
		}

		got, _ := env.notifier.Sent[0].Payload["insights"].([]string)
		if len(got) != 3 || got[0] != canned[0] {
			t.Errorf("expected canned insights, got %v", got)
		}
	})

	t.Run("every user receives a report", func(t *testing.T) {
		env := newReportTestEnv(t)
		env.seedUserWithActivity(t, now)

		other := entity.NewUser("sam@example.com", "Sam")
		if err := env.userRepo.Create(context.Background(), other); err != nil {
			t.Fatalf("failed to create second user: %v", err)
		}

		uc := NewGenerateMonthlyReportsUseCase(env.userRepo, env.transactionRepo, &stubInsights{}, env.notifier)
		out, err := uc.Execute(context.Background(), GenerateMonthlyReportsInput{Now: now})
		if err != nil {
			t.Fatalf("report run failed: %v", err)
		}
		if out.Users != 2 || out.Sent != 2 {
			t.Errorf("expected reports for both users, got %+v", out)
		}
	})
}
