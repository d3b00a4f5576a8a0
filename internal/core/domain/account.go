package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account, group or class.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// AccountNature tells on which side an account's balance grows.
type AccountNature string

const (
	Debitor  AccountNature = "DEBITOR"  // balance increases on debit
	Creditor AccountNature = "CREDITOR" // balance increases on credit
)

// IsValid reports whether n is Debitor or Creditor.
func (n AccountNature) IsValid() bool {
	return n == Debitor || n == Creditor
}

// NatureForType returns the normal nature of an account type.
func NatureForType(t AccountType) AccountNature {
	if t == Asset || t == Expense {
		return Debitor
	}
	return Creditor
}

// GroupMode places a group on a financial statement.
type GroupMode string

const (
	BalanceSheet    GroupMode = "BALANCE_SHEET"
	IncomeStatement GroupMode = "INCOME_STATEMENT"
)

// ClassDuration distinguishes current from non-current classes.
type ClassDuration string

const (
	Current    ClassDuration = "CURRENT"
	NonCurrent ClassDuration = "NON_CURRENT"
)

// AccountGroup is the top-level classification of the chart of accounts.
type AccountGroup struct {
	GroupID string      `json:"groupID"`
	Code    string      `json:"code"`
	Name    string      `json:"name"`
	Type    AccountType `json:"type"`
	Mode    GroupMode   `json:"mode"`
}

// AccountClass is the second-level classification. Classes flagged IsCashOrBank
// may carry bank details and may be used as the main side of vouchers and transfers.
type AccountClass struct {
	ClassID      string        `json:"classID"`
	Code         string        `json:"code"`
	Name         string        `json:"name"`
	Type         AccountType   `json:"type"`
	Nature       AccountNature `json:"nature"`
	Duration     ClassDuration `json:"duration"`
	IsCashOrBank bool          `json:"isCashOrBank"`
}

// BankDetails is the optional one-to-one bank sub-record of a cash/bank account.
type BankDetails struct {
	AccountID     string `json:"accountID"`
	BankName      string `json:"bankName"`
	BranchName    string `json:"branchName"`
	AccountNumber string `json:"accountNumber"` // unique across all accounts
	IBAN          string `json:"iban,omitempty"`
	SwiftCode     string `json:"swiftCode,omitempty"`
}

// Account is a ledger node. Type comes from its group, Nature and IsCashOrBank from its class.
type Account struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	GroupID        string          `json:"groupID"`
	ClassID        string          `json:"classID"`
	Type           AccountType     `json:"type"`
	Nature         AccountNature   `json:"nature"`
	IsCashOrBank   bool            `json:"isCashOrBank"`
	IsEditable     bool            `json:"isEditable"`
	Balance        decimal.Decimal `json:"balance"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // for the current financial year
	Bank           *BankDetails    `json:"bank,omitempty"`
	AuditFields
}

// FinancialYear scopes opening balances and budgets. Only one year is open at a time.
type FinancialYear struct {
	FinancialYearID string    `json:"financialYearID"`
	Name            string    `json:"name"`
	StartDate       time.Time `json:"startDate"`
	EndDate         time.Time `json:"endDate"`
	IsClosed        bool      `json:"isClosed"`
}

// AccountBalanceSnapshot records the opening balance of an account for one financial year.
type AccountBalanceSnapshot struct {
	AccountID       string          `json:"accountID"`
	FinancialYearID string          `json:"financialYearID"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"`
}

// NormalizeKey lowercases s and strips all whitespace. Account codes and names are
// unique on their normalized form.
func NormalizeKey(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
