package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
)

// BudgetAdjustmentItem proposes a new amount for a budget line. PreviousAmount is the
// line's planned amount when the adjustment was created; the line itself is never rewritten.
type BudgetAdjustmentItem struct {
	ItemID         string          `json:"itemID"`
	AdjustmentID   string          `json:"adjustmentID"`
	BudgetItemID   string          `json:"budgetItemID"`
	AccountID      string          `json:"accountID"`
	PreviousAmount decimal.Decimal `json:"previousAmount"`
	CurrentAmount  decimal.Decimal `json:"currentAmount"`
	Account        *Account        `json:"account,omitempty"`
}

// Difference is CurrentAmount minus PreviousAmount.
func (i BudgetAdjustmentItem) Difference() decimal.Decimal {
	return i.CurrentAmount.Sub(i.PreviousAmount)
}

// BudgetAdjustment is a point-in-time amendment of an approved budget.
type BudgetAdjustment struct {
	AdjustmentID string                 `json:"adjustmentID"`
	Number       string                 `json:"number"`
	BudgetID     string                 `json:"budgetID"`
	Description  string                 `json:"description"`
	Status       DocumentStatus         `json:"-"`
	Items        []BudgetAdjustmentItem `json:"items"`
	Approval
	AuditFields
}

func (a *BudgetAdjustment) Validate() error {
	if a.BudgetID == "" {
		return fmt.Errorf("%w: budget is required", apperrors.ErrValidation)
	}
	if len(a.Items) == 0 {
		return fmt.Errorf("%w: adjustment requires at least one item", apperrors.ErrValidation)
	}
	seen := make(map[string]struct{}, len(a.Items))
	for i, item := range a.Items {
		if item.BudgetItemID == "" {
			return fmt.Errorf("%w: item %d must reference a budget item", apperrors.ErrValidation, i+1)
		}
		if _, dup := seen[item.BudgetItemID]; dup {
			return fmt.Errorf("%w: budget item %s adjusted more than once", apperrors.ErrValidation, item.BudgetItemID)
		}
		seen[item.BudgetItemID] = struct{}{}
		if item.CurrentAmount.IsNegative() {
			return fmt.Errorf("%w: item %d current amount must not be negative", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}

// SnapshotFrom fills account and previous amount of every item from the budget baseline.
func (a *BudgetAdjustment) SnapshotFrom(budget *Budget) error {
	for i := range a.Items {
		line, ok := budget.ItemByID(a.Items[i].BudgetItemID)
		if !ok {
			return fmt.Errorf("%w: budget item %s does not belong to budget %s",
				apperrors.ErrValidation, a.Items[i].BudgetItemID, budget.Number)
		}
		a.Items[i].AccountID = line.AccountID
		a.Items[i].PreviousAmount = line.PlannedAmount
	}
	return nil
}
