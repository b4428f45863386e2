package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/wealthflow/backend/internal/application/usecase/budget"
	domainerror "github.com/wealthflow/backend/internal/domain/error"
	"github.com/wealthflow/backend/internal/integration/entrypoint/dto"
	"github.com/wealthflow/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	getUseCase    *budget.GetCurrentBudgetUseCase
	updateUseCase *budget.UpdateBudgetUseCase
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	getUseCase *budget.GetCurrentBudgetUseCase,
	updateUseCase *budget.UpdateBudgetUseCase,
) *BudgetController {
	return &BudgetController{
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
	}
}

// Get handles GET /budgets requests.
func (c *BudgetController) Get(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), budget.GetCurrentBudgetInput{
		UserID: userID,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output))
}

// Update handles PUT /budgets requests.
func (c *BudgetController) Update(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		respondUnauthenticated(ctx)
		return
	}

	var req dto.UpdateBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid amount format",
			Code:  string(domainerror.ErrCodeInvalidBudgetAmount),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), budget.UpdateBudgetInput{
		UserID: userID,
		Amount: amount,
	})
	if err != nil {
		c.handleBudgetError(ctx, err)
		return
	}

	id := output.Budget.ID.String()
	amountStr := output.Budget.Amount.String()
	ctx.JSON(http.StatusOK, dto.BudgetResponse{
		ID:              &id,
		Amount:          &amountStr,
		CurrentExpenses: "0",
	})
}

// handleBudgetError maps domain errors to HTTP responses.
func (c *BudgetController) handleBudgetError(ctx *gin.Context, err error) {
	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		status := http.StatusBadRequest
		if budgetErr.Code == domainerror.ErrCodeBudgetNotFound {
			status = http.StatusNotFound
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "Internal server error",
	})
}
