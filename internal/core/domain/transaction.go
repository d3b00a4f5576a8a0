package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntrySide indicates whether a posting leg is a Debit or a Credit.
type EntrySide string

const (
	Debit  EntrySide = "DEBIT"
	Credit EntrySide = "CREDIT"
)

// TransactionType tags a ledger row with the kind of document that produced it.
type TransactionType string

const (
	JournalEntryTransaction TransactionType = "JOURNAL_ENTRY"
	BankTransferTransaction TransactionType = "BANK_TRANSFER"
	PaymentTransaction      TransactionType = "PAYMENT"
	ReceiptTransaction      TransactionType = "RECEIPT"
)

// Transaction is an immutable ledger row: one signed balance movement against one account.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	DocumentID    string          `json:"documentID"`
	Amount        decimal.Decimal `json:"amount"` // signed, already applied to the account balance
	Nature        AccountNature   `json:"nature"` // account nature when the row was recorded
	Type          TransactionType `json:"type"`
	Record        string          `json:"record"` // number of the posting document, e.g. JE-0001
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}
