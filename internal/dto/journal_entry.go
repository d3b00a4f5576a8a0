package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalEntryItemRequest is one credit/debit pair of a new journal entry.
type JournalEntryItemRequest struct {
	CreditAccountID string          `json:"creditAccountID" binding:"required,uuid"`
	DebitAccountID  string          `json:"debitAccountID" binding:"required,uuid,nefield=CreditAccountID"`
	Amount          decimal.Decimal `json:"amount" binding:"money" swaggertype:"string" example:"100.00"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	Date        string                    `json:"date" binding:"required,doc_date" example:"2024-06-01"`
	Description string                    `json:"description"`
	TotalAmount decimal.Decimal           `json:"totalAmount" binding:"money" swaggertype:"string" example:"100.00"`
	Items       []JournalEntryItemRequest `json:"items" binding:"required,min=1,dive"`
}

// JournalEntryItemResponse is one pair with its resolved accounts.
type JournalEntryItemResponse struct {
	ItemID          string           `json:"itemID"`
	CreditAccountID string           `json:"creditAccountID"`
	DebitAccountID  string           `json:"debitAccountID"`
	Amount          string           `json:"amount"`
	CreditAccount   *AccountResponse `json:"creditAccount,omitempty"`
	DebitAccount    *AccountResponse `json:"debitAccount,omitempty"`
}

// JournalEntryResponse is the externally visible journal entry; status is never exposed.
type JournalEntryResponse struct {
	JournalEntryID string                     `json:"journalEntryID"`
	Number         string                     `json:"number"`
	Date           string                     `json:"date"`
	Description    string                     `json:"description"`
	TotalAmount    string                     `json:"totalAmount"`
	IsApproved     bool                       `json:"isApproved"`
	ApprovedAt     *string                    `json:"approvedAt,omitempty"`
	ApprovedBy     string                     `json:"approvedBy,omitempty"`
	Items          []JournalEntryItemResponse `json:"items,omitempty"`
	Postings       []TransactionResponse      `json:"postings,omitempty"`
	CreatedAt      time.Time                  `json:"createdAt"`
	CreatedBy      string                     `json:"createdBy"`
}

// ListJournalEntriesResponse wraps journal entry headers.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
}

func formatApprovedAt(a domain.Approval) *string {
	if a.ApprovedAt == nil {
		return nil
	}
	s := a.ApprovedAt.Format(DateLayout)
	return &s
}

// toPostings renders the ledger rows of an approved document; nil keeps the field out of the JSON.
func toPostings(txns []domain.Transaction) []TransactionResponse {
	if len(txns) == 0 {
		return nil
	}
	return ToTransactionResponses(txns)
}

// ToJournalEntryResponse converts a domain.JournalEntry to its response DTO.
func ToJournalEntryResponse(j *domain.JournalEntry) JournalEntryResponse {
	res := JournalEntryResponse{
		JournalEntryID: j.JournalEntryID,
		Number:         j.Number,
		Date:           j.Date.Format(DateLayout),
		Description:    j.Description,
		TotalAmount:    domain.FormatMoney(j.TotalAmount),
		IsApproved:     j.IsApproved,
		ApprovedAt:     formatApprovedAt(j.Approval),
		ApprovedBy:     j.ApprovedBy,
		CreatedAt:      j.CreatedAt,
		CreatedBy:      j.CreatedBy,
		Postings:       toPostings(j.Postings),
	}
	for _, item := range j.Items {
		res.Items = append(res.Items, JournalEntryItemResponse{
			ItemID:          item.ItemID,
			CreditAccountID: item.CreditAccountID,
			DebitAccountID:  item.DebitAccountID,
			Amount:          domain.FormatMoney(item.Amount),
			CreditAccount:   toAccountRef(item.CreditAccount),
			DebitAccount:    toAccountRef(item.DebitAccount),
		})
	}
	return res
}

// ToListJournalEntriesResponse converts headers for output.
func ToListJournalEntriesResponse(entries []domain.JournalEntry) ListJournalEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return ListJournalEntriesResponse{JournalEntries: res}
}
