// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wealthflow/backend/internal/application/usecase/account"
	"github.com/wealthflow/backend/internal/application/usecase/budget"
	"github.com/wealthflow/backend/internal/application/usecase/ingestion"
	"github.com/wealthflow/backend/internal/application/usecase/transaction"
	"github.com/wealthflow/backend/internal/infra/server/router"
	"github.com/wealthflow/backend/internal/integration/adapters"
	"github.com/wealthflow/backend/internal/integration/entrypoint/controller"
	"github.com/wealthflow/backend/internal/integration/entrypoint/middleware"
	"github.com/wealthflow/backend/internal/integration/persistence"
	"github.com/wealthflow/backend/internal/integration/persistence/model"
	"github.com/wealthflow/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// testContext holds the state of a single scenario.
type testContext struct {
	server         *httptest.Server
	client         *http.Client
	headers        map[string]string
	response       *response
	db             *mock.Db
	accessToken    string
	currentUserID  uuid.UUID
	accountIDs     map[string]uuid.UUID
	transactionIDs []uuid.UUID
	lastTxID       uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":        &model.UserModel{},
			"accounts":     &model.AccountModel{},
			"transactions": &model.TransactionModel{},
			"budgets":      &model.BudgetModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := test.before(); err != nil {
			return ctx, err
		}
		test.server = httptest.NewServer(test.buildEngine())
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
			test.server = nil
		}
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)"$`, test.aUserExistsWithEmail)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^the user is logged in with valid tokens$`, test.theUserIsLoggedInWithValidTokens)

	// Account setup steps
	ctx.Given(`^an account "([^"]*)" exists with balance "([^"]*)"$`, test.anAccountExistsWithBalance)
	ctx.Given(`^a default account "([^"]*)" exists with balance "([^"]*)"$`, test.aDefaultAccountExistsWithBalance)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the account "([^"]*)" should have balance "([^"]*)"$`, test.theAccountShouldHaveBalance)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.accountIDs = make(map[string]uuid.UUID)
	t.transactionIDs = nil
	t.lastTxID = uuid.Nil

	return t.db.ClearDB()
}

// buildEngine wires the full HTTP stack over the in-memory database.
func (t *testContext) buildEngine() *gin.Engine {
	db := t.db.DbConn

	// Create repositories
	accountRepo := persistence.NewAccountRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	unitOfWork := persistence.NewUnitOfWork(db)

	// Create adapters/services
	tokenService := adapters.NewTokenService(testJWTSecret)

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

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		return t.db != nil && t.db.DbConn != nil
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
	rateLimiter := middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(healthController, accountController, transactionController, budgetController, rateLimiter, authMiddleware)
	return r.Setup("test")
}

func (t *testContext) theAPIServerIsRunning() error {
	if t.server == nil {
		return errNoServer
	}
	return nil
}
