package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
)

// BudgetItemType says whether a budget line plans income or expense.
type BudgetItemType string

const (
	BudgetIncome  BudgetItemType = "INCOME"
	BudgetExpense BudgetItemType = "EXPENSE"
)

func (t BudgetItemType) IsValid() bool {
	return t == BudgetIncome || t == BudgetExpense
}

// requiredAccountType is the account type an item of this kind must reference.
func (t BudgetItemType) requiredAccountType() AccountType {
	if t == BudgetIncome {
		return Revenue
	}
	return Expense
}

// BudgetItem plans an amount for a revenue or expense account.
type BudgetItem struct {
	ItemID        string           `json:"itemID"`
	BudgetID      string           `json:"budgetID"`
	AccountID     string           `json:"accountID"`
	PlannedAmount decimal.Decimal  `json:"plannedAmount"`
	Type          BudgetItemType   `json:"type"`
	Account       *Account         `json:"account,omitempty"`
	Variance      *decimal.Decimal `json:"variance,omitempty"` // only on approved budgets
}

// BudgetVariance aggregates item variances by item type.
type BudgetVariance struct {
	IncomeVariance  decimal.Decimal `json:"incomeVariance"`
	ExpenseVariance decimal.Decimal `json:"expenseVariance"`
}

// Budget plans income and expense for one financial year.
type Budget struct {
	BudgetID           string          `json:"budgetID"`
	Number             string          `json:"number"`
	FinancialYearID    string          `json:"financialYearID"`
	Description        string          `json:"description"`
	TotalIncomeAmount  decimal.Decimal `json:"totalIncomeAmount"`
	TotalExpenseAmount decimal.Decimal `json:"totalExpenseAmount"`
	Status             DocumentStatus  `json:"-"`
	IsAdditional       bool            `json:"isAdditional"` // open for adjustments once approved
	Items              []BudgetItem    `json:"items"`
	Variance           *BudgetVariance `json:"variance,omitempty"`
	Approval
	AuditFields
}

func (b *Budget) Validate() error {
	if b.FinancialYearID == "" {
		return fmt.Errorf("%w: financial year is required", apperrors.ErrValidation)
	}
	if len(b.Items) == 0 {
		return fmt.Errorf("%w: budget requires at least one item", apperrors.ErrValidation)
	}
	income, expense := decimal.Zero, decimal.Zero
	seen := make(map[string]struct{}, len(b.Items))
	for i, item := range b.Items {
		if !item.Type.IsValid() {
			return fmt.Errorf("%w: item %d type must be INCOME or EXPENSE", apperrors.ErrValidation, i+1)
		}
		if item.AccountID == "" {
			return fmt.Errorf("%w: item %d must reference an account", apperrors.ErrValidation, i+1)
		}
		if _, dup := seen[item.AccountID]; dup {
			return fmt.Errorf("%w: account %s appears in more than one item", apperrors.ErrValidation, item.AccountID)
		}
		seen[item.AccountID] = struct{}{}
		if item.PlannedAmount.IsNegative() {
			return fmt.Errorf("%w: item %d planned amount must not be negative", apperrors.ErrValidation, i+1)
		}
		if item.Type == BudgetIncome {
			income = income.Add(item.PlannedAmount)
		} else {
			expense = expense.Add(item.PlannedAmount)
		}
	}
	if !AmountsMatch(income, b.TotalIncomeAmount) {
		return fmt.Errorf("%w: income items sum to %s, total income is %s",
			ErrTotalMismatch, FormatMoney(income), FormatMoney(b.TotalIncomeAmount))
	}
	if !AmountsMatch(expense, b.TotalExpenseAmount) {
		return fmt.Errorf("%w: expense items sum to %s, total expense is %s",
			ErrTotalMismatch, FormatMoney(expense), FormatMoney(b.TotalExpenseAmount))
	}
	return nil
}

func (b *Budget) AccountIDs() []string {
	ids := make([]string, 0, len(b.Items))
	for _, item := range b.Items {
		ids = append(ids, item.AccountID)
	}
	return uniqueIDs(ids...)
}

// ValidateAccounts requires income items on revenue accounts and expense items on expense accounts.
func (b *Budget) ValidateAccounts(accounts map[string]Account) error {
	for i, item := range b.Items {
		acc, err := lookupAccount(accounts, item.AccountID)
		if err != nil {
			return err
		}
		if want := item.Type.requiredAccountType(); acc.Type != want {
			return fmt.Errorf("%w: item %d is %s but account %s is %s, expected %s",
				apperrors.ErrValidation, i+1, item.Type, acc.Code, acc.Type, want)
		}
	}
	return nil
}

// ApplyVariance resolves the item accounts and, for approved budgets, computes
// plannedAmount minus the current account balance per item and in aggregate.
func (b *Budget) ApplyVariance(accounts map[string]Account) {
	for i := range b.Items {
		if acc, ok := accounts[b.Items[i].AccountID]; ok {
			b.Items[i].Account = &acc
		}
	}
	if b.Status != StatusApproved {
		b.Variance = nil
		for i := range b.Items {
			b.Items[i].Variance = nil
		}
		return
	}
	agg := BudgetVariance{IncomeVariance: decimal.Zero, ExpenseVariance: decimal.Zero}
	for i := range b.Items {
		item := &b.Items[i]
		balance := decimal.Zero
		if item.Account != nil {
			balance = item.Account.Balance
		}
		v := RoundMoney(item.PlannedAmount.Sub(balance))
		item.Variance = &v
		if item.Type == BudgetIncome {
			agg.IncomeVariance = agg.IncomeVariance.Add(v)
		} else {
			agg.ExpenseVariance = agg.ExpenseVariance.Add(v)
		}
	}
	b.Variance = &agg
}

// ItemByID returns the budget item with the given id.
func (b *Budget) ItemByID(itemID string) (BudgetItem, bool) {
	for _, item := range b.Items {
		if item.ItemID == itemID {
			return item, true
		}
	}
	return BudgetItem{}, false
}
