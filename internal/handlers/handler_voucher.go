package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type voucherHandler struct {
	voucherService portssvc.VoucherSvcFacade
}

func registerVoucherRoutes(rg *gin.RouterGroup, voucherService portssvc.VoucherSvcFacade) {
	h := &voucherHandler{voucherService: voucherService}

	vouchers := rg.Group("/vouchers")
	{
		vouchers.POST("", h.createVoucher)
		vouchers.GET("", h.listVouchers)
		vouchers.GET("/:id", h.getVoucher)
		vouchers.POST("/:id/approve", h.approveVoucher)
	}
}

// createVoucher godoc
// @Summary Create a payment or receipt voucher
// @Description Creates a pending voucher. Payments are numbered CV-, receipts RCV-. The main account must be
// @Description a cash/bank account. An optional base64 attachment is stored and its path kept on the voucher.
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   voucher body dto.CreateVoucherRequest true "Voucher"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Referenced account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create voucher"
// @Security BearerAuth
// @Router /vouchers [post]
func (h *voucherHandler) createVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateVoucherRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	voucher, err := h.voucherService.CreateVoucher(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create voucher")
		return
	}

	logger.Info("Voucher created", slog.String("voucher_id", voucher.VoucherID), slog.String("number", voucher.Number))
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Voucher created", ID: voucher.VoucherID, Number: voucher.Number})
}

// getVoucher godoc
// @Summary Get a voucher
// @Tags vouchers
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Success 200 {object} dto.VoucherResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve voucher"
// @Security BearerAuth
// @Router /vouchers/{id} [get]
func (h *voucherHandler) getVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID, ok := pathID(c, logger, "voucher")
	if !ok {
		return
	}
	voucher, err := h.voucherService.GetVoucherByID(c.Request.Context(), voucherID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve voucher")
		return
	}
	c.JSON(http.StatusOK, dto.ToVoucherResponse(voucher))
}

// listVouchers godoc
// @Summary List vouchers
// @Tags vouchers
// @Produce  json
// @Param   type query string false "Voucher type" Enums(PAYMENT, RECEIPT)
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListVouchersResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list vouchers"
// @Security BearerAuth
// @Router /vouchers [get]
func (h *voucherHandler) listVouchers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListVouchersParams
	if !bindQuery(c, logger, &params) {
		return
	}
	vouchers, err := h.voucherService.ListVouchers(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list vouchers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListVouchersResponse(vouchers))
}

// approveVoucher godoc
// @Summary Approve a voucher
// @Tags vouchers
// @Accept  json
// @Produce  json
// @Param   id path string true "Voucher ID"
// @Param   approval body dto.ApproveRequest true "Approval date"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or approval date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Voucher not found"
// @Failure 422 {object} dto.ErrorResponse "Already approved or insufficient balance"
// @Failure 500 {object} dto.ErrorResponse "Failed to approve voucher"
// @Security BearerAuth
// @Router /vouchers/{id}/approve [post]
func (h *voucherHandler) approveVoucher(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	voucherID, ok := pathID(c, logger, "voucher")
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

	voucher, err := h.voucherService.ApproveVoucher(c.Request.Context(), voucherID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("voucher_id", voucherID)), err, "Failed to approve voucher")
		return
	}

	logger.Info("Voucher approved", slog.String("voucher_id", voucher.VoucherID))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Voucher approved", ID: voucher.VoucherID, Number: voucher.Number})
}
