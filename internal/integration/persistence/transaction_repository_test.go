package persistence

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/domain/entity"
	"github.com/wealthflow/backend/internal/integration/persistence/model"
)

func newTestRepo(t *testing.T) adapter.TransactionRepository {
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

	if err := db.AutoMigrate(&model.TransactionModel{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewTransactionRepository(db)
}

func seedTransaction(t *testing.T, repo adapter.TransactionRepository, userID, accountID uuid.UUID, txType entity.TransactionType, amount int64, date time.Time) *entity.Transaction {
	t.Helper()
	tx := entity.NewTransaction(userID, txType, decimal.NewFromInt(amount), accountID, nil, date, "seed")
	if err := repo.Create(context.Background(), tx); err != nil {
		t.Fatalf("failed to seed transaction: %v", err)
	}
	return tx
}

func TestGetTotalsByAccount(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()
	accountA := uuid.New()
	accountB := uuid.New()
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	seedTransaction(t, repo, userID, accountA, entity.TransactionTypeIncome, 100, date)
	seedTransaction(t, repo, userID, accountA, entity.TransactionTypeIncome, 200, date)
	seedTransaction(t, repo, userID, accountA, entity.TransactionTypeExpense, 50, date)

	out := entity.NewTransaction(userID, entity.TransactionTypeTransfer, decimal.NewFromInt(30), accountA, &accountB, date, "to savings")
	if err := repo.Create(context.Background(), out); err != nil {
		t.Fatalf("failed to seed transfer: %v", err)
	}
	in := entity.NewTransaction(userID, entity.TransactionTypeTransfer, decimal.NewFromInt(40), accountB, &accountA, date, "from savings")
	if err := repo.Create(context.Background(), in); err != nil {
		t.Fatalf("failed to seed transfer: %v", err)
	}

	totals, err := repo.GetTotalsByAccount(context.Background(), accountA)
	if err != nil {
		t.Fatalf("GetTotalsByAccount failed: %v", err)
	}

	if !totals.IncomeTotal.Equal(decimal.NewFromInt(300)) {
		t.Errorf("expected income total 300, got %s", totals.IncomeTotal)
	}
	if !totals.ExpenseTotal.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected expense total 50, got %s", totals.ExpenseTotal)
	}
	if !totals.TransferOut.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected transfer out 30, got %s", totals.TransferOut)
	}
	if !totals.TransferIn.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected transfer in 40, got %s", totals.TransferIn)
	}
}

func TestSumExpensesForAccountInRange(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()
	accountID := uuid.New()

	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)

	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeExpense, 120, start.AddDate(0, 0, 4))
	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeExpense, 80, start.AddDate(0, 0, 20))
	// Outside the window and wrong type, both excluded.
	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeExpense, 999, start.AddDate(0, -1, 0))
	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeIncome, 500, start.AddDate(0, 0, 10))

	sum, err := repo.SumExpensesForAccountInRange(context.Background(), accountID, start, end)
	if err != nil {
		t.Fatalf("SumExpensesForAccountInRange failed: %v", err)
	}
	if !sum.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected expense sum 200, got %s", sum)
	}
}

func TestFindDueRecurring(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()
	accountID := uuid.New()
	now := time.Date(2025, time.March, 15, 6, 0, 0, 0, time.UTC)

	template := func(next time.Time) *entity.Transaction {
		tx := entity.NewTransaction(userID, entity.TransactionTypeExpense, decimal.NewFromInt(10), accountID, nil, next.AddDate(0, -1, 0), "template")
		interval := entity.RecurringIntervalMonthly
		tx.IsRecurring = true
		tx.RecurringInterval = &interval
		tx.NextRecurrence = &next
		return tx
	}

	later := template(now.Add(-1 * time.Hour))
	earlier := template(now.AddDate(0, 0, -3))
	future := template(now.AddDate(0, 0, 7))
	for _, tx := range []*entity.Transaction{later, earlier, future} {
		if err := repo.Create(context.Background(), tx); err != nil {
			t.Fatalf("failed to seed template: %v", err)
		}
	}
	// Plain transactions are never due.
	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeExpense, 10, now.AddDate(0, 0, -1))

	due, err := repo.FindDueRecurring(context.Background(), now)
	if err != nil {
		t.Fatalf("FindDueRecurring failed: %v", err)
	}

	if len(due) != 2 {
		t.Fatalf("expected 2 due templates, got %d", len(due))
	}
	if due[0].ID != earlier.ID || due[1].ID != later.ID {
		t.Errorf("expected templates ordered by next recurrence, got %v then %v", due[0].ID, due[1].ID)
	}
}

func TestDeleteByIDs(t *testing.T) {
	repo := newTestRepo(t)
	owner := uuid.New()
	other := uuid.New()
	accountID := uuid.New()
	date := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	mine := seedTransaction(t, repo, owner, accountID, entity.TransactionTypeExpense, 10, date)
	alsoMine := seedTransaction(t, repo, owner, accountID, entity.TransactionTypeExpense, 20, date)
	foreign := seedTransaction(t, repo, other, accountID, entity.TransactionTypeExpense, 30, date)

	count, err := repo.DeleteByIDs(context.Background(), []uuid.UUID{mine.ID, alsoMine.ID, foreign.ID}, owner)
	if err != nil {
		t.Fatalf("DeleteByIDs failed: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 deleted rows, got %d", count)
	}

	remaining, err := repo.FindByUser(context.Background(), other)
	if err != nil {
		t.Fatalf("FindByUser failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != foreign.ID {
		t.Errorf("expected the foreign transaction to survive, got %d rows", len(remaining))
	}
}

func TestGetTypeTotalsForUserInRange(t *testing.T) {
	repo := newTestRepo(t)
	userID := uuid.New()
	accountID := uuid.New()

	start := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.February, 28, 23, 59, 59, 0, time.UTC)

	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeIncome, 5000, start.AddDate(0, 0, 2))
	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeExpense, 1200, start.AddDate(0, 0, 10))
	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeExpense, 800, start.AddDate(0, 0, 20))
	// Other users and other months never count.
	seedTransaction(t, repo, uuid.New(), accountID, entity.TransactionTypeIncome, 9999, start.AddDate(0, 0, 5))
	seedTransaction(t, repo, userID, accountID, entity.TransactionTypeExpense, 777, end.AddDate(0, 0, 2))

	totals, err := repo.GetTypeTotalsForUserInRange(context.Background(), userID, start, end)
	if err != nil {
		t.Fatalf("GetTypeTotalsForUserInRange failed: %v", err)
	}

	if totals.Count != 3 {
		t.Errorf("expected 3 transactions counted, got %d", totals.Count)
	}
	if !totals.IncomeTotal.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("expected income total 5000, got %s", totals.IncomeTotal)
	}
	if !totals.ExpenseTotal.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected expense total 2000, got %s", totals.ExpenseTotal)
	}
}
