package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type bankTransferHandler struct {
	bankTransferService portssvc.BankTransferSvcFacade
}

func registerBankTransferRoutes(rg *gin.RouterGroup, bankTransferService portssvc.BankTransferSvcFacade) {
	h := &bankTransferHandler{bankTransferService: bankTransferService}

	transfers := rg.Group("/bank-transfers")
	{
		transfers.POST("", h.createBankTransfer)
		transfers.GET("", h.listBankTransfers)
		transfers.GET("/:id", h.getBankTransfer)
		transfers.POST("/:id/approve", h.approveBankTransfer)
	}
}

// createBankTransfer godoc
// @Summary Create a bank transfer
// @Description Creates a pending transfer between two cash/bank accounts. The reference must be unique.
// @Tags bank-transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateBankTransferRequest true "Bank transfer"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error, e.g. insufficient balance"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Referenced account not found"
// @Failure 409 {object} dto.ErrorResponse "Reference already in use"
// @Failure 500 {object} dto.ErrorResponse "Failed to create bank transfer"
// @Security BearerAuth
// @Router /bank-transfers [post]
func (h *bankTransferHandler) createBankTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBankTransferRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	transfer, err := h.bankTransferService.CreateBankTransfer(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create bank transfer")
		return
	}

	logger.Info("Bank transfer created", slog.String("bank_transfer_id", transfer.BankTransferID), slog.String("number", transfer.Number))
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Bank transfer created", ID: transfer.BankTransferID, Number: transfer.Number})
}

// getBankTransfer godoc
// @Summary Get a bank transfer
// @Tags bank-transfers
// @Produce  json
// @Param   id path string true "Bank transfer ID"
// @Success 200 {object} dto.BankTransferResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Bank transfer not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve bank transfer"
// @Security BearerAuth
// @Router /bank-transfers/{id} [get]
func (h *bankTransferHandler) getBankTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankTransferID, ok := pathID(c, logger, "bank transfer")
	if !ok {
		return
	}
	transfer, err := h.bankTransferService.GetBankTransferByID(c.Request.Context(), bankTransferID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve bank transfer")
		return
	}
	c.JSON(http.StatusOK, dto.ToBankTransferResponse(transfer))
}

// listBankTransfers godoc
// @Summary List bank transfers
// @Tags bank-transfers
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListBankTransfersResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list bank transfers"
// @Security BearerAuth
// @Router /bank-transfers [get]
func (h *bankTransferHandler) listBankTransfers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if !bindQuery(c, logger, &params) {
		return
	}
	transfers, err := h.bankTransferService.ListBankTransfers(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list bank transfers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBankTransfersResponse(transfers))
}

// approveBankTransfer godoc
// @Summary Approve a bank transfer
// @Tags bank-transfers
// @Accept  json
// @Produce  json
// @Param   id path string true "Bank transfer ID"
// @Param   approval body dto.ApproveRequest true "Approval date"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or approval date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Bank transfer not found"
// @Failure 422 {object} dto.ErrorResponse "Already approved or insufficient balance"
// @Failure 500 {object} dto.ErrorResponse "Failed to approve bank transfer"
// @Security BearerAuth
// @Router /bank-transfers/{id}/approve [post]
func (h *bankTransferHandler) approveBankTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	bankTransferID, ok := pathID(c, logger, "bank transfer")
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

	transfer, err := h.bankTransferService.ApproveBankTransfer(c.Request.Context(), bankTransferID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("bank_transfer_id", bankTransferID)), err, "Failed to approve bank transfer")
		return
	}

	logger.Info("Bank transfer approved", slog.String("bank_transfer_id", transfer.BankTransferID))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Bank transfer approved", ID: transfer.BankTransferID, Number: transfer.Number})
}
