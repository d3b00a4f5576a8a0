package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
)

// DocumentStatus is the two-state approval lifecycle shared by every document kind.
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "PENDING"
	StatusApproved DocumentStatus = "APPROVED"
)

// CanApprove reports whether a document in this status may still be approved.
func (s DocumentStatus) CanApprove() bool {
	return s == StatusPending
}

// DocumentKind identifies the document type and drives its number prefix.
type DocumentKind string

const (
	KindJournalEntry     DocumentKind = "JOURNAL_ENTRY"
	KindBankTransfer     DocumentKind = "BANK_TRANSFER"
	KindPayment          DocumentKind = "PAYMENT"
	KindReceipt          DocumentKind = "RECEIPT"
	KindBudget           DocumentKind = "BUDGET"
	KindBudgetAdjustment DocumentKind = "BUDGET_ADJUSTMENT"
)

var numberPrefixes = map[DocumentKind]string{
	KindJournalEntry:     "JE",
	KindBankTransfer:     "BT",
	KindPayment:          "CV",
	KindReceipt:          "RCV",
	KindBudget:           "BDG",
	KindBudgetAdjustment: "BDA",
}

// NumberPrefix returns the prefix used for documents of this kind.
func (k DocumentKind) NumberPrefix() string {
	return numberPrefixes[k]
}

// TransactionType returns the ledger tag written for postings of this kind.
// Budget kinds never post and return an empty type.
func (k DocumentKind) TransactionType() TransactionType {
	switch k {
	case KindJournalEntry:
		return JournalEntryTransaction
	case KindBankTransfer:
		return BankTransferTransaction
	case KindPayment:
		return PaymentTransaction
	case KindReceipt:
		return ReceiptTransaction
	}
	return ""
}

// FormatDocumentNumber renders a sequence value as PREFIX-000N padded to width digits.
func FormatDocumentNumber(prefix string, seq int64, width int) string {
	return fmt.Sprintf("%s-%0*d", prefix, width, seq)
}

// Approval holds the one-way approval stamp of a document.
type Approval struct {
	IsApproved bool       `json:"isApproved"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy string     `json:"approvedBy,omitempty"`
}

// ApproveCommand carries the caller-supplied approval date and the acting user.
type ApproveCommand struct {
	Date   time.Time
	UserID string
}

// Stamp returns the approval record for this command.
func (c ApproveCommand) Stamp() Approval {
	at := c.Date
	return Approval{IsApproved: true, ApprovedAt: &at, ApprovedBy: c.UserID}
}

// PostingLeg is one side of a balanced movement.
type PostingLeg struct {
	AccountID string
	Side      EntrySide
	Amount    decimal.Decimal
}

// Postable is implemented by every document that moves account balances on approval.
type Postable interface {
	DocumentID() string
	DocumentNumber() string
	Kind() DocumentKind
	// PostingLegs lists every debit and credit the document produces.
	PostingLegs() []PostingLeg
	// AccountIDs returns the distinct accounts referenced by the document.
	AccountIDs() []string
	// ValidateAccounts applies the kind-specific classification and balance rules
	// against the resolved accounts.
	ValidateAccounts(accounts map[string]Account) error
}

var (
	// ErrInsufficientBalance is returned when a posting would overdraw an account.
	ErrInsufficientBalance = fmt.Errorf("%w: insufficient balance", apperrors.ErrValidation)
	// ErrSameAccount is returned when both sides of a pair reference the same account.
	ErrSameAccount = fmt.Errorf("%w: debit and credit account must differ", apperrors.ErrValidation)
	// ErrTotalMismatch is returned when the caller's total disagrees with the item sum.
	ErrTotalMismatch = fmt.Errorf("%w: total amount does not match the sum of items", apperrors.ErrValidation)
	// ErrNotPending is returned when approving a document that is already approved.
	ErrNotPending = fmt.Errorf("%w: document is not pending", apperrors.ErrBusinessRule)
)

func requirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", apperrors.ErrValidation, field)
	}
	return nil
}

func lookupAccount(accounts map[string]Account, id string) (Account, error) {
	acc, ok := accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
	}
	return acc, nil
}

func uniqueIDs(ids ...string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
