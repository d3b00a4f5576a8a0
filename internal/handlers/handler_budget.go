package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler serves budgets and budget adjustments.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// listBudgetAdjustmentsParams narrows the adjustment list to one budget when set.
type listBudgetAdjustmentsParams struct {
	dto.ListParams
	BudgetID string `form:"budgetID" binding:"omitempty,uuid"`
}

func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	budgets := rg.Group("/budgets")
	{
		budgets.POST("", h.createBudget)
		budgets.GET("", h.listBudgets)
		budgets.GET("/:id", h.getBudget)
		budgets.POST("/:id/approve", h.approveBudget)
	}

	adjustments := rg.Group("/budget-adjustments")
	{
		adjustments.POST("", h.createBudgetAdjustment)
		adjustments.GET("", h.listBudgetAdjustments)
		adjustments.GET("/:id", h.getBudgetAdjustment)
		adjustments.POST("/:id/approve", h.approveBudgetAdjustment)
	}
}

// createBudget godoc
// @Summary Create a budget
// @Description Creates a pending budget for a financial year. Income items must reference revenue accounts,
// @Description expense items expense accounts. One budget per financial year.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   budget body dto.CreateBudgetRequest true "Budget"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Financial year already has a budget"
// @Failure 500 {object} dto.ErrorResponse "Failed to create budget"
// @Security BearerAuth
// @Router /budgets [post]
func (h *budgetHandler) createBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	budget, err := h.budgetService.CreateBudget(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create budget")
		return
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("number", budget.Number))
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Budget created", ID: budget.BudgetID, Number: budget.Number})
}

// getBudget godoc
// @Summary Get a budget
// @Description Returns the budget with its items. Approved budgets include planned-minus-actual variances.
// @Tags budgets
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve budget"
// @Security BearerAuth
// @Router /budgets/{id} [get]
func (h *budgetHandler) getBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID, ok := pathID(c, logger, "budget")
	if !ok {
		return
	}
	budget, err := h.budgetService.GetBudgetByID(c.Request.Context(), budgetID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListBudgetsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list budgets"
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if !bindQuery(c, logger, &params) {
		return
	}
	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBudgetsResponse(budgets))
}

// approveBudget godoc
// @Summary Approve a budget
// @Description Approves the budget and opens it for adjustments. Account balances are not touched.
// @Tags budgets
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget ID"
// @Param   approval body dto.ApproveRequest true "Approval date"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or approval date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget not found"
// @Failure 422 {object} dto.ErrorResponse "Already approved"
// @Failure 500 {object} dto.ErrorResponse "Failed to approve budget"
// @Security BearerAuth
// @Router /budgets/{id}/approve [post]
func (h *budgetHandler) approveBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID, ok := pathID(c, logger, "budget")
	if !ok {
		return
	}
	var req dto.ApproveRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	budget, err := h.budgetService.ApproveBudget(c.Request.Context(), budgetID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("budget_id", budgetID)), err, "Failed to approve budget")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Budget approved", ID: budget.BudgetID, Number: budget.Number})
}

// createBudgetAdjustment godoc
// @Summary Create a budget adjustment
// @Description Proposes new amounts for lines of an approved budget. Previous amounts are snapshotted.
// @Tags budget-adjustments
// @Accept  json
// @Produce  json
// @Param   adjustment body dto.CreateBudgetAdjustmentRequest true "Budget adjustment"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 422 {object} dto.ErrorResponse "Budget is not approved"
// @Failure 500 {object} dto.ErrorResponse "Failed to create budget adjustment"
// @Security BearerAuth
// @Router /budget-adjustments [post]
func (h *budgetHandler) createBudgetAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBudgetAdjustmentRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	adjustment, err := h.budgetService.CreateBudgetAdjustment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create budget adjustment")
		return
	}

	logger.Info("Budget adjustment created", slog.String("adjustment_id", adjustment.AdjustmentID), slog.String("number", adjustment.Number))
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Budget adjustment created", ID: adjustment.AdjustmentID, Number: adjustment.Number})
}

// getBudgetAdjustment godoc
// @Summary Get a budget adjustment
// @Tags budget-adjustments
// @Produce  json
// @Param   id path string true "Budget adjustment ID"
// @Success 200 {object} dto.BudgetAdjustmentResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget adjustment not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve budget adjustment"
// @Security BearerAuth
// @Router /budget-adjustments/{id} [get]
func (h *budgetHandler) getBudgetAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID, ok := pathID(c, logger, "budget adjustment")
	if !ok {
		return
	}
	adjustment, err := h.budgetService.GetBudgetAdjustmentByID(c.Request.Context(), adjustmentID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve budget adjustment")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetAdjustmentResponse(adjustment))
}

// listBudgetAdjustments godoc
// @Summary List budget adjustments
// @Tags budget-adjustments
// @Produce  json
// @Param   budgetID query string false "Only adjustments of this budget"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListBudgetAdjustmentsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list budget adjustments"
// @Security BearerAuth
// @Router /budget-adjustments [get]
func (h *budgetHandler) listBudgetAdjustments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params listBudgetAdjustmentsParams
	if !bindQuery(c, logger, &params) {
		return
	}
	adjustments, err := h.budgetService.ListBudgetAdjustments(c.Request.Context(), params.BudgetID, params.ListParams)
	if err != nil {
		respondError(c, logger, err, "Failed to list budget adjustments")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBudgetAdjustmentsResponse(adjustments))
}

// approveBudgetAdjustment godoc
// @Summary Approve a budget adjustment
// @Tags budget-adjustments
// @Accept  json
// @Produce  json
// @Param   id path string true "Budget adjustment ID"
// @Param   approval body dto.ApproveRequest true "Approval date"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or approval date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Budget adjustment not found"
// @Failure 422 {object} dto.ErrorResponse "Already approved"
// @Failure 500 {object} dto.ErrorResponse "Failed to approve budget adjustment"
// @Security BearerAuth
// @Router /budget-adjustments/{id}/approve [post]
func (h *budgetHandler) approveBudgetAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	adjustmentID, ok := pathID(c, logger, "budget adjustment")
	if !ok {
		return
	}
	var req dto.ApproveRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	adjustment, err := h.budgetService.ApproveBudgetAdjustment(c.Request.Context(), adjustmentID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("adjustment_id", adjustmentID)), err, "Failed to approve budget adjustment")
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Budget adjustment approved", ID: adjustment.AdjustmentID, Number: adjustment.Number})
}
