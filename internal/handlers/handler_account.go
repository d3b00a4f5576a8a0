package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts and the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{
		accountService: as,
	}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/balances", h.aggregateBalances)
		accounts.GET("/:id", h.getAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.GET("/:id/transactions", h.listTransactions)
	}
	rg.GET("/account-groups", h.listGroups)
	rg.GET("/account-classes", h.listClasses)
	rg.GET("/financial-years/current", h.getCurrentFinancialYear)
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates an account under a group and class. Cash/bank classes may carry bank details.
// @Description The opening balance is recorded for the open financial year.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 409 {object} dto.ErrorResponse "Code, name or bank account number already in use"
// @Failure 422 {object} dto.ErrorResponse "No open financial year"
// @Failure 500 {object} dto.ErrorResponse "Failed to create account"
// @Security BearerAuth
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create account", slog.String("code", req.Code), slog.String("name", req.Name))

	account, err := h.accountService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by ID
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve account"
// @Security BearerAuth
// @Router /accounts/{id} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := pathID(c, logger, "account")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to retrieve account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Retrieves a page of accounts ordered by code
// @Tags accounts
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list accounts"
// @Security BearerAuth
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if !bindQuery(c, logger, &params) {
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Info("Accounts listed successfully", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

// updateAccount godoc
// @Summary Update an account
// @Description Renames an account and/or re-bases its opening balance. The current balance moves by the
// @Description same delta as the opening balance and may not become negative.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 409 {object} dto.ErrorResponse "Name already in use"
// @Failure 422 {object} dto.ErrorResponse "Account not editable or balance would become negative"
// @Failure 500 {object} dto.ErrorResponse "Failed to update account"
// @Security BearerAuth
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := pathID(c, logger, "account")
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to update account")
		return
	}

	logger.Info("Account updated successfully", slog.String("account_id", accountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listTransactions godoc
// @Summary List an account's ledger
// @Description Retrieves ledger rows of an account, newest first, with token-based pagination
// @Tags accounts
// @Produce  json
// @Param   id path string true "Account ID"
// @Param   limit query int false "Limit number of results" default(20)
// @Param   nextToken query string false "Token for fetching the next page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters or token"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /accounts/{id}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID, ok := pathID(c, logger, "account")
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if !bindQuery(c, logger, &params) {
		return
	}

	resp, err := h.accountService.ListTransactions(c.Request.Context(), accountID, params)
	if err != nil {
		respondError(c, logger.With(slog.String("account_id", accountID)), err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// aggregateBalances godoc
// @Summary Aggregate account balances
// @Description Sums current balances per account group, account class or account type
// @Tags accounts
// @Produce  json
// @Param   groupBy query string false "Aggregation dimension" Enums(group, class, type) default(type)
// @Success 200 {object} dto.BalancesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid grouping"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to aggregate balances"
// @Security BearerAuth
// @Router /accounts/balances [get]
func (h *accountHandler) aggregateBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.BalancesParams
	if !bindQuery(c, logger, &params) {
		return
	}

	groupBy := domain.BalanceGrouping(params.GroupBy)
	rows, err := h.accountService.AggregateBalances(c.Request.Context(), groupBy)
	if err != nil {
		respondError(c, logger, err, "Failed to aggregate balances")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalancesResponse(groupBy, rows))
}

// listGroups godoc
// @Summary List account groups
// @Tags chart-of-accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountGroupsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list account groups"
// @Security BearerAuth
// @Router /account-groups [get]
func (h *accountHandler) listGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	groups, err := h.accountService.ListGroups(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list account groups")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountGroupsResponse{Groups: groups})
}

// listClasses godoc
// @Summary List account classes
// @Tags chart-of-accounts
// @Produce  json
// @Success 200 {object} dto.ListAccountClassesResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list account classes"
// @Security BearerAuth
// @Router /account-classes [get]
func (h *accountHandler) listClasses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	classes, err := h.accountService.ListClasses(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list account classes")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountClassesResponse{Classes: classes})
}

// getCurrentFinancialYear godoc
// @Summary Get the open financial year
// @Tags chart-of-accounts
// @Produce  json
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "No open financial year"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve financial year"
// @Security BearerAuth
// @Router /financial-years/current [get]
func (h *accountHandler) getCurrentFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fy, err := h.accountService.GetCurrentFinancialYear(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve financial year")
		return
	}
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}
