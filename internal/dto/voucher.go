package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// VoucherItemRequest is one sub-account line of a new voucher.
type VoucherItemRequest struct {
	AccountID string          `json:"accountID" binding:"required,uuid"`
	Amount    decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"25.00"`
}

// CreateVoucherRequest defines the data needed to create a payment or receipt voucher.
type CreateVoucherRequest struct {
	Type          domain.VoucherType   `json:"type" binding:"required,oneof=PAYMENT RECEIPT"`
	Date          string               `json:"date" binding:"required,doc_date" example:"2024-06-01"`
	Description   string               `json:"description"`
	MainAccountID string               `json:"mainAccountID" binding:"required,uuid"`
	TotalAmount   decimal.Decimal      `json:"totalAmount" binding:"money" swaggertype:"string" example:"75.00"`
	Items         []VoucherItemRequest `json:"items" binding:"required,min=1,dive"`
	Attachment    string               `json:"attachment"` // optional base64 payload or data URL
}

// VoucherItemResponse is one sub-account line with its resolved account.
type VoucherItemResponse struct {
	ItemID    string           `json:"itemID"`
	AccountID string           `json:"accountID"`
	Amount    string           `json:"amount"`
	Account   *AccountResponse `json:"account,omitempty"`
}

// VoucherResponse is the externally visible voucher; status is never exposed.
type VoucherResponse struct {
	VoucherID      string                `json:"voucherID"`
	Number         string                `json:"number"`
	Type           domain.VoucherType    `json:"type"`
	Date           string                `json:"date"`
	Description    string                `json:"description"`
	MainAccountID  string                `json:"mainAccountID"`
	TotalAmount    string                `json:"totalAmount"`
	AttachmentPath string                `json:"attachmentPath,omitempty"`
	IsApproved     bool                  `json:"isApproved"`
	ApprovedAt     *string               `json:"approvedAt,omitempty"`
	ApprovedBy     string                `json:"approvedBy,omitempty"`
	MainAccount    *AccountResponse      `json:"mainAccount,omitempty"`
	Items          []VoucherItemResponse `json:"items,omitempty"`
	Postings       []TransactionResponse `json:"postings,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ListVouchersParams adds an optional type filter to offset pagination.
type ListVouchersParams struct {
	ListParams
	Type string `form:"type" binding:"omitempty,oneof=PAYMENT RECEIPT"`
}

// ListVouchersResponse wraps voucher headers.
type ListVouchersResponse struct {
	Vouchers []VoucherResponse `json:"vouchers"`
}

// ToVoucherResponse converts a domain.PaymentAndReceipt to its response DTO.
func ToVoucherResponse(v *domain.PaymentAndReceipt) VoucherResponse {
	res := VoucherResponse{
		VoucherID:      v.VoucherID,
		Number:         v.Number,
		Type:           v.Type,
		Date:           v.Date.Format(DateLayout),
		Description:    v.Description,
		MainAccountID:  v.MainAccountID,
		TotalAmount:    domain.FormatMoney(v.TotalAmount),
		AttachmentPath: v.AttachmentPath,
		IsApproved:     v.IsApproved,
		ApprovedAt:     formatApprovedAt(v.Approval),
		ApprovedBy:     v.ApprovedBy,
		MainAccount:    toAccountRef(v.MainAccount),
		CreatedAt:      v.CreatedAt,
		CreatedBy:      v.CreatedBy,
		Postings:       toPostings(v.Postings),
	}
	for _, item := range v.Items {
		res.Items = append(res.Items, VoucherItemResponse{
			ItemID:    item.ItemID,
			AccountID: item.AccountID,
			Amount:    domain.FormatMoney(item.Amount),
			Account:   toAccountRef(item.Account),
		})
	}
	return res
}

// ToListVouchersResponse converts vouchers for output.
func ToListVouchersResponse(vouchers []domain.PaymentAndReceipt) ListVouchersResponse {
	res := make([]VoucherResponse, len(vouchers))
	for i := range vouchers {
		res[i] = ToVoucherResponse(&vouchers[i])
	}
	return ListVouchersResponse{Vouchers: res}
}
