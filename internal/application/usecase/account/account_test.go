// Package account contains account-related use cases.
package account

import (
	"context"
	"errors"
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
	domainerror "github.com/wealthflow/backend/internal/domain/error"
	"github.com/wealthflow/backend/internal/integration/persistence"
	"github.com/wealthflow/backend/internal/integration/persistence/model"
)

type accountTestEnv struct {
	uow             adapter.UnitOfWork
	accountRepo     adapter.AccountRepository
	transactionRepo adapter.TransactionRepository
	userID          uuid.UUID
}

func newAccountTestEnv(t *testing.T) *accountTestEnv {
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

	return &accountTestEnv{
		uow:             persistence.NewUnitOfWork(db),
		accountRepo:     persistence.NewAccountRepository(db),
		transactionRepo: persistence.NewTransactionRepository(db),
		userID:          uuid.New(),
	}
}

func (e *accountTestEnv) mustCreate(t *testing.T, name string, isDefault bool) *entity.Account {
	t.Helper()
	uc := NewCreateAccountUseCase(e.uow)
	out, err := uc.Execute(context.Background(), CreateAccountInput{
		UserID:         e.userID,
		Name:           name,
		Type:           entity.AccountTypeCurrent,
		InitialBalance: decimal.NewFromInt(100),
		IsDefault:      isDefault,
	})
	if err != nil {
		t.Fatalf("failed to create account %q: %v", name, err)
	}
	return out.Account
}

func (e *accountTestEnv) defaultAccount(t *testing.T) *entity.Account {
	t.Helper()
	account, err := e.accountRepo.FindDefaultByUser(context.Background(), e.userID)
	if err != nil {
		t.Fatalf("failed to find default account: %v", err)
	}
	return account
}

func (e *accountTestEnv) countDefaults(t *testing.T) int {
	t.Helper()
	accounts, err := e.accountRepo.FindByUser(context.Background(), e.userID)
	if err != nil {
		t.Fatalf("failed to list accounts: %v", err)
	}
	defaults := 0
	for _, a := range accounts {
		if a.IsDefault {
			defaults++
		}
	}
	return defaults
}

func TestCreateAccount(t *testing.T) {
	t.Run("first account becomes default regardless of input", func(t *testing.T) {
		env := newAccountTestEnv(t)
		account := env.mustCreate(t, "Checking", false)
		if !account.IsDefault {
			t.Error("expected the first account to be default")
		}
	})

	t.Run("later default demotes the previous one", func(t *testing.T) {
		env := newAccountTestEnv(t)
		first := env.mustCreate(t, "Checking", false)
		second := env.mustCreate(t, "Savings", true)

		if env.defaultAccount(t).ID != second.ID {
			t.Errorf("expected %s to be default", second.Name)
		}
		if env.countDefaults(t) != 1 {
			t.Errorf("expected exactly one default, got %d", env.countDefaults(t))
		}
		_ = first
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		env := newAccountTestEnv(t)
		uc := NewCreateAccountUseCase(env.uow)
		_, err := uc.Execute(context.Background(), CreateAccountInput{
			UserID: env.userID,
			Name:   "   ",
			Type:   entity.AccountTypeCurrent,
		})
		if !errors.Is(err, domainerror.ErrAccountNameRequired) {
			t.Errorf("expected ErrAccountNameRequired, got %v", err)
		}
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		env := newAccountTestEnv(t)
		uc := NewCreateAccountUseCase(env.uow)
		_, err := uc.Execute(context.Background(), CreateAccountInput{
			UserID: env.userID,
			Name:   "Checking",
			Type:   entity.AccountType("CRYPTO"),
		})
		if !errors.Is(err, domainerror.ErrInvalidAccountType) {
			t.Errorf("expected ErrInvalidAccountType, got %v", err)
		}
	})
}

func TestSetDefaultAccount(t *testing.T) {
	t.Run("promotion keeps a single default", func(t *testing.T) {
		env := newAccountTestEnv(t)
		env.mustCreate(t, "Checking", true)
		second := env.mustCreate(t, "Savings", false)

		uc := NewSetDefaultAccountUseCase(env.uow)
		out, err := uc.Execute(context.Background(), SetDefaultAccountInput{AccountID: second.ID, UserID: env.userID})
		if err != nil {
			t.Fatalf("set default failed: %v", err)
		}
		if !out.Account.IsDefault {
			t.Error("expected the returned account to be default")
		}
		if env.defaultAccount(t).ID != second.ID {
			t.Error("expected the promoted account to be the stored default")
		}
		if env.countDefaults(t) != 1 {
			t.Errorf("expected exactly one default, got %d", env.countDefaults(t))
		}
	})

	t.Run("foreign account is rejected", func(t *testing.T) {
		env := newAccountTestEnv(t)
		env.mustCreate(t, "Checking", true)

		uc := NewSetDefaultAccountUseCase(env.uow)
		_, err := uc.Execute(context.Background(), SetDefaultAccountInput{AccountID: uuid.New(), UserID: env.userID})
		if !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("last account cannot be deleted", func(t *testing.T) {
		env := newAccountTestEnv(t)
		only := env.mustCreate(t, "Checking", true)

		uc := NewDeleteAccountUseCase(env.uow)
		_, err := uc.Execute(context.Background(), DeleteAccountInput{AccountID: only.ID, UserID: env.userID})
		if !errors.Is(err, domainerror.ErrCannotDeleteLastAccount) {
			t.Errorf("expected ErrCannotDeleteLastAccount, got %v", err)
		}
	})

	t.Run("deleting the default reassigns it", func(t *testing.T) {
		env := newAccountTestEnv(t)
		first := env.mustCreate(t, "Checking", true)
		second := env.mustCreate(t, "Savings", false)

		uc := NewDeleteAccountUseCase(env.uow)
		if _, err := uc.Execute(context.Background(), DeleteAccountInput{AccountID: first.ID, UserID: env.userID}); err != nil {
			t.Fatalf("delete failed: %v", err)
		}

		if env.defaultAccount(t).ID != second.ID {
			t.Error("expected the remaining account to become default")
		}
	})

	t.Run("cascade removes the account's transactions", func(t *testing.T) {
		env := newAccountTestEnv(t)
		first := env.mustCreate(t, "Checking", true)
		second := env.mustCreate(t, "Savings", false)

		for i := 0; i < 3; i++ {
			tx := entity.NewTransaction(env.userID, entity.TransactionTypeExpense, decimal.NewFromInt(10), second.ID, nil, time.Now().UTC(), "spend")
			if err := env.transactionRepo.Create(context.Background(), tx); err != nil {
				t.Fatalf("failed to seed transaction: %v", err)
			}
		}

		uc := NewDeleteAccountUseCase(env.uow)
		out, err := uc.Execute(context.Background(), DeleteAccountInput{AccountID: second.ID, UserID: env.userID})
		if err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if out.RemovedTransactions != 3 {
			t.Errorf("expected 3 cascaded transactions, got %d", out.RemovedTransactions)
		}

		remaining, err := env.transactionRepo.FindByUser(context.Background(), env.userID)
		if err != nil {
			t.Fatalf("failed to list transactions: %v", err)
		}
		if len(remaining) != 0 {
			t.Errorf("expected no transactions left, got %d", len(remaining))
		}
		_ = first
	})

	t.Run("foreign account is rejected", func(t *testing.T) {
		env := newAccountTestEnv(t)
		env.mustCreate(t, "Checking", true)
		env.mustCreate(t, "Savings", false)

		uc := NewDeleteAccountUseCase(env.uow)
		_, err := uc.Execute(context.Background(), DeleteAccountInput{AccountID: uuid.New(), UserID: env.userID})
		if !errors.Is(err, domainerror.ErrAccountNotFound) {
			t.Errorf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestListAccounts(t *testing.T) {
	t.Run("totals fold transfers into income and expense", func(t *testing.T) {
		env := newAccountTestEnv(t)
		checking := env.mustCreate(t, "Checking", true)
		savings := env.mustCreate(t, "Savings", false)

		now := time.Now().UTC()
		seed := []*entity.Transaction{
			entity.NewTransaction(env.userID, entity.TransactionTypeIncome, decimal.NewFromInt(500), checking.ID, nil, now, "salary"),
			entity.NewTransaction(env.userID, entity.TransactionTypeExpense, decimal.NewFromInt(120), checking.ID, nil, now, "groceries"),
			entity.NewTransaction(env.userID, entity.TransactionTypeTransfer, decimal.NewFromInt(80), checking.ID, &savings.ID, now, "stash"),
		}
		for _, tx := range seed {
			if err := env.transactionRepo.Create(context.Background(), tx); err != nil {
				t.Fatalf("failed to seed transaction: %v", err)
			}
		}

		uc := NewListAccountsUseCase(env.accountRepo, env.transactionRepo)
		out, err := uc.Execute(context.Background(), ListAccountsInput{UserID: env.userID})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(out.Accounts) != 2 {
			t.Fatalf("expected 2 accounts, got %d", len(out.Accounts))
		}

		byID := make(map[uuid.UUID]*entity.AccountWithTotals)
		for _, a := range out.Accounts {
			byID[a.Account.ID] = a
		}

		if !byID[checking.ID].TotalIncome.Equal(decimal.NewFromInt(500)) {
			t.Errorf("checking income: expected 500, got %s", byID[checking.ID].TotalIncome)
		}
		// Expense total includes the outgoing transfer leg.
		if !byID[checking.ID].TotalExpense.Equal(decimal.NewFromInt(200)) {
			t.Errorf("checking expense: expected 200, got %s", byID[checking.ID].TotalExpense)
		}
		// The incoming transfer leg counts as income on the destination.
		if !byID[savings.ID].TotalIncome.Equal(decimal.NewFromInt(80)) {
			t.Errorf("savings income: expected 80, got %s", byID[savings.ID].TotalIncome)
		}
		if !byID[savings.ID].TotalExpense.Equal(decimal.Zero) {
			t.Errorf("savings expense: expected 0, got %s", byID[savings.ID].TotalExpense)
		}
	})
}
