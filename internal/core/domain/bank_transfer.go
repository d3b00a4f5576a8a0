package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
)

// BankTransfer moves money between two cash/bank accounts. It is itself a single balanced pair.
type BankTransfer struct {
	BankTransferID string          `json:"bankTransferID"`
	Number         string          `json:"number"`
	Reference      string          `json:"reference"` // unique, supplied by the caller
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	FromAccountID  string          `json:"fromAccountID"`
	ToAccountID    string          `json:"toAccountID"`
	Amount         decimal.Decimal `json:"amount"`
	Status         DocumentStatus  `json:"-"`
	FromAccount    *Account        `json:"fromAccount,omitempty"`
	ToAccount      *Account        `json:"toAccount,omitempty"`
	Postings       []Transaction   `json:"postings,omitempty"`
	Approval
	AuditFields
}

var _ Postable = (*BankTransfer)(nil)

func (t *BankTransfer) DocumentID() string     { return t.BankTransferID }
func (t *BankTransfer) DocumentNumber() string { return t.Number }
func (t *BankTransfer) Kind() DocumentKind     { return KindBankTransfer }

func (t *BankTransfer) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(t.Reference) == "" {
		return fmt.Errorf("%w: reference is required", apperrors.ErrValidation)
	}
	if t.FromAccountID == "" || t.ToAccountID == "" {
		return fmt.Errorf("%w: from and to accounts are required", apperrors.ErrValidation)
	}
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}
	return requirePositive("amount", t.Amount)
}

func (t *BankTransfer) PostingLegs() []PostingLeg {
	return []PostingLeg{
		{AccountID: t.FromAccountID, Side: Credit, Amount: t.Amount},
		{AccountID: t.ToAccountID, Side: Debit, Amount: t.Amount},
	}
}

func (t *BankTransfer) AccountIDs() []string {
	return uniqueIDs(t.FromAccountID, t.ToAccountID)
}

// ValidateAccounts requires both sides to be cash/bank accounts and the source
// to hold at least the transfer amount.
func (t *BankTransfer) ValidateAccounts(accounts map[string]Account) error {
	from, err := lookupAccount(accounts, t.FromAccountID)
	if err != nil {
		return err
	}
	to, err := lookupAccount(accounts, t.ToAccountID)
	if err != nil {
		return err
	}
	if !from.IsCashOrBank || !to.IsCashOrBank {
		return fmt.Errorf("%w: bank transfers require cash or bank accounts on both sides", apperrors.ErrValidation)
	}
	if from.Balance.LessThan(t.Amount) {
		return fmt.Errorf("%w: account %s holds %s, transfer needs %s",
			ErrInsufficientBalance, from.Code, FormatMoney(from.Balance), FormatMoney(t.Amount))
	}
	return nil
}

// ResolveAccounts attaches the source and destination accounts for read responses.
func (t *BankTransfer) ResolveAccounts(accounts map[string]Account) {
	if acc, ok := accounts[t.FromAccountID]; ok {
		t.FromAccount = &acc
	}
	if acc, ok := accounts[t.ToAccountID]; ok {
		t.ToAccount = &acc
	}
}
