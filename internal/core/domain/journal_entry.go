package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
)

// JournalEntryItem is one balanced credit/debit pair.
type JournalEntryItem struct {
	ItemID          string          `json:"itemID"`
	JournalEntryID  string          `json:"journalEntryID"`
	CreditAccountID string          `json:"creditAccountID"`
	DebitAccountID  string          `json:"debitAccountID"`
	Amount          decimal.Decimal `json:"amount"`
	CreditAccount   *Account        `json:"creditAccount,omitempty"`
	DebitAccount    *Account        `json:"debitAccount,omitempty"`
}

// JournalEntry pairs credit and debit legs that must net to zero.
type JournalEntry struct {
	JournalEntryID string             `json:"journalEntryID"`
	Number         string             `json:"number"`
	Date           time.Time          `json:"date"`
	Description    string             `json:"description"`
	TotalAmount    decimal.Decimal    `json:"totalAmount"`
	Status         DocumentStatus     `json:"-"`
	Items          []JournalEntryItem `json:"items"`
	Postings       []Transaction      `json:"postings,omitempty"`
	Approval
	AuditFields
}

var _ Postable = (*JournalEntry)(nil)

func (j *JournalEntry) DocumentID() string     { return j.JournalEntryID }
func (j *JournalEntry) DocumentNumber() string { return j.Number }
func (j *JournalEntry) Kind() DocumentKind     { return KindJournalEntry }

// Validate checks the shape of the entry: at least one item, positive amounts,
// distinct accounts per item and a total matching the item sum.
func (j *JournalEntry) Validate() error {
	if j.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if len(j.Items) == 0 {
		return fmt.Errorf("%w: journal entry requires at least one item", apperrors.ErrValidation)
	}
	sum := decimal.Zero
	for i, item := range j.Items {
		if item.CreditAccountID == "" || item.DebitAccountID == "" {
			return fmt.Errorf("%w: item %d must reference a credit and a debit account", apperrors.ErrValidation, i+1)
		}
		if item.CreditAccountID == item.DebitAccountID {
			return fmt.Errorf("%w (item %d)", ErrSameAccount, i+1)
		}
		if err := requirePositive(fmt.Sprintf("item %d amount", i+1), item.Amount); err != nil {
			return err
		}
		sum = sum.Add(item.Amount)
	}
	if !AmountsMatch(sum, j.TotalAmount) {
		return fmt.Errorf("%w: items sum to %s, total is %s", ErrTotalMismatch, FormatMoney(sum), FormatMoney(j.TotalAmount))
	}
	return nil
}

func (j *JournalEntry) PostingLegs() []PostingLeg {
	legs := make([]PostingLeg, 0, len(j.Items)*2)
	for _, item := range j.Items {
		legs = append(legs,
			PostingLeg{AccountID: item.CreditAccountID, Side: Credit, Amount: item.Amount},
			PostingLeg{AccountID: item.DebitAccountID, Side: Debit, Amount: item.Amount},
		)
	}
	return legs
}

func (j *JournalEntry) AccountIDs() []string {
	ids := make([]string, 0, len(j.Items)*2)
	for _, item := range j.Items {
		ids = append(ids, item.CreditAccountID, item.DebitAccountID)
	}
	return uniqueIDs(ids...)
}

// ValidateAccounts only requires every referenced account to exist. Overdraft of
// debit-nature accounts on the credit side is caught by the posting balance check.
func (j *JournalEntry) ValidateAccounts(accounts map[string]Account) error {
	for _, id := range j.AccountIDs() {
		if _, err := lookupAccount(accounts, id); err != nil {
			return err
		}
	}
	return nil
}

// ResolveAccounts attaches the referenced accounts to the items for read responses.
func (j *JournalEntry) ResolveAccounts(accounts map[string]Account) {
	for i := range j.Items {
		if acc, ok := accounts[j.Items[i].CreditAccountID]; ok {
			j.Items[i].CreditAccount = &acc
		}
		if acc, ok := accounts[j.Items[i].DebitAccountID]; ok {
			j.Items[i].DebitAccount = &acc
		}
	}
}
