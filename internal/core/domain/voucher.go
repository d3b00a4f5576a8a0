package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
)

// VoucherType distinguishes money paid out from money received.
type VoucherType string

const (
	Payment VoucherType = "PAYMENT"
	Receipt VoucherType = "RECEIPT"
)

func (t VoucherType) IsValid() bool {
	return t == Payment || t == Receipt
}

// PaymentAndReceiptItem is one sub-account line of a voucher.
type PaymentAndReceiptItem struct {
	ItemID    string          `json:"itemID"`
	VoucherID string          `json:"voucherID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Account   *Account        `json:"account,omitempty"`
}

// PaymentAndReceipt is a voucher whose main cash/bank account offsets the sum of its items.
// A payment credits the main account, a receipt debits it.
type PaymentAndReceipt struct {
	VoucherID      string                  `json:"voucherID"`
	Number         string                  `json:"number"`
	Type           VoucherType             `json:"type"`
	Date           time.Time               `json:"date"`
	Description    string                  `json:"description"`
	MainAccountID  string                  `json:"mainAccountID"`
	TotalAmount    decimal.Decimal         `json:"totalAmount"`
	AttachmentPath string                  `json:"attachmentPath,omitempty"`
	Status         DocumentStatus          `json:"-"`
	Items          []PaymentAndReceiptItem `json:"items"`
	MainAccount    *Account                `json:"mainAccount,omitempty"`
	Postings       []Transaction           `json:"postings,omitempty"`
	Approval
	AuditFields
}

var _ Postable = (*PaymentAndReceipt)(nil)

func (v *PaymentAndReceipt) DocumentID() string     { return v.VoucherID }
func (v *PaymentAndReceipt) DocumentNumber() string { return v.Number }

func (v *PaymentAndReceipt) Kind() DocumentKind {
	if v.Type == Receipt {
		return KindReceipt
	}
	return KindPayment
}

func (v *PaymentAndReceipt) Validate() error {
	if !v.Type.IsValid() {
		return fmt.Errorf("%w: voucher type must be PAYMENT or RECEIPT", apperrors.ErrValidation)
	}
	if v.Date.IsZero() {
		return fmt.Errorf("%w: date is required", apperrors.ErrValidation)
	}
	if v.MainAccountID == "" {
		return fmt.Errorf("%w: main account is required", apperrors.ErrValidation)
	}
	if len(v.Items) == 0 {
		return fmt.Errorf("%w: voucher requires at least one item", apperrors.ErrValidation)
	}
	sum := decimal.Zero
	for i, item := range v.Items {
		if item.AccountID == "" {
			return fmt.Errorf("%w: item %d must reference an account", apperrors.ErrValidation, i+1)
		}
		if item.AccountID == v.MainAccountID {
			return fmt.Errorf("%w (item %d repeats the main account)", ErrSameAccount, i+1)
		}
		if err := requirePositive(fmt.Sprintf("item %d amount", i+1), item.Amount); err != nil {
			return err
		}
		sum = sum.Add(item.Amount)
	}
	if !AmountsMatch(sum, v.TotalAmount) {
		return fmt.Errorf("%w: items sum to %s, total is %s", ErrTotalMismatch, FormatMoney(sum), FormatMoney(v.TotalAmount))
	}
	return nil
}

func (v *PaymentAndReceipt) PostingLegs() []PostingLeg {
	mainSide, subSide := Credit, Debit
	if v.Type == Receipt {
		mainSide, subSide = Debit, Credit
	}
	legs := make([]PostingLeg, 0, len(v.Items)+1)
	total := decimal.Zero
	for _, item := range v.Items {
		legs = append(legs, PostingLeg{AccountID: item.AccountID, Side: subSide, Amount: item.Amount})
		total = total.Add(item.Amount)
	}
	return append(legs, PostingLeg{AccountID: v.MainAccountID, Side: mainSide, Amount: total})
}

func (v *PaymentAndReceipt) AccountIDs() []string {
	ids := make([]string, 0, len(v.Items)+1)
	ids = append(ids, v.MainAccountID)
	for _, item := range v.Items {
		ids = append(ids, item.AccountID)
	}
	return uniqueIDs(ids...)
}

// ValidateAccounts requires the main account to be a cash/bank account. On a
// receipt the amount taken from each sub-account may not exceed its balance,
// whatever the account's nature.
func (v *PaymentAndReceipt) ValidateAccounts(accounts map[string]Account) error {
	main, err := lookupAccount(accounts, v.MainAccountID)
	if err != nil {
		return err
	}
	if !main.IsCashOrBank {
		return fmt.Errorf("%w: main account %s is not a cash or bank account", apperrors.ErrValidation, main.Code)
	}
	taken := make(map[string]decimal.Decimal, len(v.Items))
	for _, item := range v.Items {
		acc, err := lookupAccount(accounts, item.AccountID)
		if err != nil {
			return err
		}
		if v.Type != Receipt {
			continue
		}
		taken[acc.AccountID] = taken[acc.AccountID].Add(item.Amount)
		if taken[acc.AccountID].GreaterThan(acc.Balance) {
			return fmt.Errorf("%w: account %s holds %s, receipt takes %s",
				ErrInsufficientBalance, acc.Code, FormatMoney(acc.Balance), FormatMoney(taken[acc.AccountID]))
		}
	}
	return nil
}

// ResolveAccounts attaches the main and sub accounts for read responses.
func (v *PaymentAndReceipt) ResolveAccounts(accounts map[string]Account) {
	if acc, ok := accounts[v.MainAccountID]; ok {
		v.MainAccount = &acc
	}
	for i := range v.Items {
		if acc, ok := accounts[v.Items[i].AccountID]; ok {
			v.Items[i].Account = &acc
		}
	}
}
