// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wealthflow/backend/config"
	"github.com/wealthflow/backend/internal/application/adapter"
	"github.com/wealthflow/backend/internal/application/usecase/account"
	"github.com/wealthflow/backend/internal/application/usecase/budget"
	"github.com/wealthflow/backend/internal/application/usecase/ingestion"
	"github.com/wealthflow/backend/internal/application/usecase/recurring"
	"github.com/wealthflow/backend/internal/application/usecase/report"
	"github.com/wealthflow/backend/internal/application/usecase/transaction"
	"github.com/wealthflow/backend/internal/infra/server/router"
	"github.com/wealthflow/backend/internal/integration/adapters"
	"github.com/wealthflow/backend/internal/integration/email"
	"github.com/wealthflow/backend/internal/integration/entrypoint/controller"
	"github.com/wealthflow/backend/internal/integration/entrypoint/middleware"
	"github.com/wealthflow/backend/internal/integration/persistence"
	"github.com/wealthflow/backend/internal/integration/scheduler"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
	Worker *scheduler.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	// Create repositories
	userRepo := persistence.NewUserRepository(db)
	accountRepo := persistence.NewAccountRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	unitOfWork := persistence.NewUnitOfWork(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(cfg.JWT.Secret)
	insightsService := adapters.NewGeminiInsightsService(cfg.Gemini.APIKey)

	var notifier adapter.Notifier
	if cfg.Notification.ResendAPIKey != "" {
		resendNotifier, err := email.NewResendNotifier(
			cfg.Notification.ResendAPIKey,
			cfg.Notification.FromName,
			cfg.Notification.FromEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create notifier: %w", err)
		}
		notifier = resendNotifier
	} else {
		slog.Warn("RESEND_API_KEY not set, notifications will not be delivered")
		notifier = email.NewMockNotifier()
	}

	var schedulerLock adapter.SchedulerLock
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		if cfg.Redis.Password != "" {
			opts.Password = cfg.Redis.Password
		}
		opts.DB = cfg.Redis.DB
		schedulerLock = scheduler.NewRedisLock(redis.NewClient(opts))
	} else {
		schedulerLock = scheduler.NoopLock{}
	}

	// Create account use cases
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo, transactionRepo)
	createAccountUseCase := account.NewCreateAccountUseCase(unitOfWork)
	setDefaultAccountUseCase := account.NewSetDefaultAccountUseCase(unitOfWork)
	deleteAccountUseCase := account.NewDeleteAccountUseCase(unitOfWork)

	// Create transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo, accountRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(accountRepo, unitOfWork)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, accountRepo, unitOfWork)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, unitOfWork)
	bulkDeleteTransactionsUseCase := transaction.NewBulkDeleteTransactionsUseCase(unitOfWork)
	importTransactionsUseCase := ingestion.NewImportTransactionsUseCase(createTransactionUseCase)

	// Create budget use cases
	getCurrentBudgetUseCase := budget.NewGetCurrentBudgetUseCase(budgetRepo, accountRepo, transactionRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo)
	evaluateAlertsUseCase := budget.NewEvaluateAlertsUseCase(budgetRepo, accountRepo, transactionRepo, userRepo, notifier)

	// Create scheduler use cases
	runTickUseCase := recurring.NewRunTickUseCase(transactionRepo, unitOfWork)
	monthlyReportsUseCase := report.NewGenerateMonthlyReportsUseCase(userRepo, transactionRepo, insightsService, notifier)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	accountController := controller.NewAccountController(
		listAccountsUseCase,
		createAccountUseCase,
		setDefaultAccountUseCase,
		deleteAccountUseCase,
	)

	transactionController := controller.NewTransactionController(
		listTransactionsUseCase,
		createTransactionUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
		bulkDeleteTransactionsUseCase,
		importTransactionsUseCase,
	)

	budgetController := controller.NewBudgetController(
		getCurrentBudgetUseCase,
		updateBudgetUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var rateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		rateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		rateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(healthController, accountController, transactionController, budgetController, rateLimiter, authMiddleware)

	// Create scheduler worker
	workerConfig := scheduler.WorkerConfig{
		RecurringInterval: cfg.Scheduler.RecurringInterval,
		BudgetInterval:    cfg.Scheduler.BudgetInterval,
	}
	worker := scheduler.NewWorker(runTickUseCase, evaluateAlertsUseCase, monthlyReportsUseCase, schedulerLock, workerConfig)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
		Worker: worker,
	}, nil
}
