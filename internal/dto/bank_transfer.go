package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankTransferRequest defines the data needed to create a bank transfer.
type CreateBankTransferRequest struct {
	Date          string          `json:"date" binding:"required,doc_date" example:"2024-06-01"`
	Reference     string          `json:"reference" binding:"required,max=64"`
	Description   string          `json:"description"`
	FromAccountID string          `json:"fromAccountID" binding:"required,uuid"`
	ToAccountID   string          `json:"toAccountID" binding:"required,uuid,nefield=FromAccountID"`
	Amount        decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"50.00"`
}

// BankTransferResponse is the externally visible transfer; status is never exposed.
type BankTransferResponse struct {
	BankTransferID string                `json:"bankTransferID"`
	Number         string                `json:"number"`
	Reference      string                `json:"reference"`
	Date           string                `json:"date"`
	Description    string                `json:"description"`
	FromAccountID  string                `json:"fromAccountID"`
	ToAccountID    string                `json:"toAccountID"`
	Amount         string                `json:"amount"`
	IsApproved     bool                  `json:"isApproved"`
	ApprovedAt     *string               `json:"approvedAt,omitempty"`
	ApprovedBy     string                `json:"approvedBy,omitempty"`
	FromAccount    *AccountResponse      `json:"fromAccount,omitempty"`
	ToAccount      *AccountResponse      `json:"toAccount,omitempty"`
	Postings       []TransactionResponse `json:"postings,omitempty"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
}

// ListBankTransfersResponse wraps transfer headers.
type ListBankTransfersResponse struct {
	BankTransfers []BankTransferResponse `json:"bankTransfers"`
}

// ToBankTransferResponse converts a domain.BankTransfer to its response DTO.
func ToBankTransferResponse(t *domain.BankTransfer) BankTransferResponse {
	return BankTransferResponse{
		BankTransferID: t.BankTransferID,
		Number:         t.Number,
		Reference:      t.Reference,
		Date:           t.Date.Format(DateLayout),
		Description:    t.Description,
		FromAccountID:  t.FromAccountID,
		ToAccountID:    t.ToAccountID,
		Amount:         domain.FormatMoney(t.Amount),
		IsApproved:     t.IsApproved,
		ApprovedAt:     formatApprovedAt(t.Approval),
		ApprovedBy:     t.ApprovedBy,
		FromAccount:    toAccountRef(t.FromAccount),
		ToAccount:      toAccountRef(t.ToAccount),
		CreatedAt:      t.CreatedAt,
		CreatedBy:      t.CreatedBy,
		Postings:       toPostings(t.Postings),
	}
}

// ToListBankTransfersResponse converts transfers for output.
func ToListBankTransfersResponse(transfers []domain.BankTransfer) ListBankTransfersResponse {
	res := make([]BankTransferResponse, len(transfers))
	for i := range transfers {
		res[i] = ToBankTransferResponse(&transfers[i])
	}
	return ListBankTransfersResponse{BankTransfers: res}
}
