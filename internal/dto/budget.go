package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetItemRequest plans an amount for one revenue or expense account.
type BudgetItemRequest struct {
	AccountID     string                `json:"accountID" binding:"required,uuid"`
	Type          domain.BudgetItemType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	PlannedAmount decimal.Decimal       `json:"plannedAmount" binding:"nonneg_money" swaggertype:"string" example:"1000.00"`
}

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	FinancialYearID    string              `json:"financialYearID" binding:"required,uuid"`
	Description        string              `json:"description"`
	TotalIncomeAmount  decimal.Decimal     `json:"totalIncomeAmount" binding:"nonneg_money" swaggertype:"string"`
	TotalExpenseAmount decimal.Decimal     `json:"totalExpenseAmount" binding:"nonneg_money" swaggertype:"string"`
	Items              []BudgetItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BudgetItemResponse is one budget line; Variance appears once the budget is approved.
type BudgetItemResponse struct {
	ItemID        string                `json:"itemID"`
	AccountID     string                `json:"accountID"`
	Type          domain.BudgetItemType `json:"type"`
	PlannedAmount string                `json:"plannedAmount"`
	Variance      *string               `json:"variance,omitempty"`
	Account       *AccountResponse      `json:"account,omitempty"`
}

// BudgetVarianceResponse aggregates item variances.
type BudgetVarianceResponse struct {
	IncomeVariance  string `json:"incomeVariance"`
	ExpenseVariance string `json:"expenseVariance"`
}

// BudgetResponse is the externally visible budget; status is never exposed.
type BudgetResponse struct {
	BudgetID           string                  `json:"budgetID"`
	Number             string                  `json:"number"`
	FinancialYearID    string                  `json:"financialYearID"`
	Description        string                  `json:"description"`
	TotalIncomeAmount  string                  `json:"totalIncomeAmount"`
	TotalExpenseAmount string                  `json:"totalExpenseAmount"`
	IsApproved         bool                    `json:"isApproved"`
	IsAdditional       bool                    `json:"isAdditional"`
	ApprovedAt         *string                 `json:"approvedAt,omitempty"`
	ApprovedBy         string                  `json:"approvedBy,omitempty"`
	Variance           *BudgetVarianceResponse `json:"variance,omitempty"`
	Items              []BudgetItemResponse    `json:"items,omitempty"`
	CreatedAt          time.Time               `json:"createdAt"`
	CreatedBy          string                  `json:"createdBy"`
}

// ListBudgetsResponse wraps budget headers.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	res := BudgetResponse{
		BudgetID:           b.BudgetID,
		Number:             b.Number,
		FinancialYearID:    b.FinancialYearID,
		Description:        b.Description,
		TotalIncomeAmount:  domain.FormatMoney(b.TotalIncomeAmount),
		TotalExpenseAmount: domain.FormatMoney(b.TotalExpenseAmount),
		IsApproved:         b.IsApproved,
		IsAdditional:       b.IsAdditional,
		ApprovedAt:         formatApprovedAt(b.Approval),
		ApprovedBy:         b.ApprovedBy,
		CreatedAt:          b.CreatedAt,
		CreatedBy:          b.CreatedBy,
	}
	if b.Variance != nil {
		res.Variance = &BudgetVarianceResponse{
			IncomeVariance:  domain.FormatMoney(b.Variance.IncomeVariance),
			ExpenseVariance: domain.FormatMoney(b.Variance.ExpenseVariance),
		}
	}
	for _, item := range b.Items {
		line := BudgetItemResponse{
			ItemID:        item.ItemID,
			AccountID:     item.AccountID,
			Type:          item.Type,
			PlannedAmount: domain.FormatMoney(item.PlannedAmount),
			Account:       toAccountRef(item.Account),
		}
		if item.Variance != nil {
			v := domain.FormatMoney(*item.Variance)
			line.Variance = &v
		}
		res.Items = append(res.Items, line)
	}
	return res
}

// ToListBudgetsResponse converts budgets for output.
func ToListBudgetsResponse(budgets []domain.Budget) ListBudgetsResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return ListBudgetsResponse{Budgets: res}
}

// BudgetAdjustmentItemRequest proposes a new amount for one budget line.
type BudgetAdjustmentItemRequest struct {
	BudgetItemID  string          `json:"budgetItemID" binding:"required,uuid"`
	CurrentAmount decimal.Decimal `json:"currentAmount" binding:"nonneg_money" swaggertype:"string" example:"1200.00"`
}

// CreateBudgetAdjustmentRequest defines the data needed to create a budget adjustment.
type CreateBudgetAdjustmentRequest struct {
	BudgetID    string                        `json:"budgetID" binding:"required,uuid"`
	Description string                        `json:"description"`
	Items       []BudgetAdjustmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// BudgetAdjustmentItemResponse shows the baseline snapshot next to the proposed amount.
type BudgetAdjustmentItemResponse struct {
	ItemID         string           `json:"itemID"`
	BudgetItemID   string           `json:"budgetItemID"`
	AccountID      string           `json:"accountID"`
	PreviousAmount string           `json:"previousAmount"`
	CurrentAmount  string           `json:"currentAmount"`
	Difference     string           `json:"difference"`
	Account        *AccountResponse `json:"account,omitempty"`
}

// BudgetAdjustmentResponse is the externally visible adjustment; status is never exposed.
type BudgetAdjustmentResponse struct {
	AdjustmentID string                         `json:"adjustmentID"`
	Number       string                         `json:"number"`
	BudgetID     string                         `json:"budgetID"`
	Description  string                         `json:"description"`
	IsApproved   bool                           `json:"isApproved"`
	ApprovedAt   *string                        `json:"approvedAt,omitempty"`
	ApprovedBy   string                         `json:"approvedBy,omitempty"`
	Items        []BudgetAdjustmentItemResponse `json:"items,omitempty"`
	CreatedAt    time.Time                      `json:"createdAt"`
	CreatedBy    string                         `json:"createdBy"`
}

// ListBudgetAdjustmentsResponse wraps adjustment headers.
type ListBudgetAdjustmentsResponse struct {
	BudgetAdjustments []BudgetAdjustmentResponse `json:"budgetAdjustments"`
}

// ToBudgetAdjustmentResponse converts a domain.BudgetAdjustment to its response DTO.
func ToBudgetAdjustmentResponse(a *domain.BudgetAdjustment) BudgetAdjustmentResponse {
	res := BudgetAdjustmentResponse{
		AdjustmentID: a.AdjustmentID,
		Number:       a.Number,
		BudgetID:     a.BudgetID,
		Description:  a.Description,
		IsApproved:   a.IsApproved,
		ApprovedAt:   formatApprovedAt(a.Approval),
		ApprovedBy:   a.ApprovedBy,
		CreatedAt:    a.CreatedAt,
		CreatedBy:    a.CreatedBy,
	}
	for _, item := range a.Items {
		res.Items = append(res.Items, BudgetAdjustmentItemResponse{
			ItemID:         item.ItemID,
			BudgetItemID:   item.BudgetItemID,
			AccountID:      item.AccountID,
			PreviousAmount: domain.FormatMoney(item.PreviousAmount),
			CurrentAmount:  domain.FormatMoney(item.CurrentAmount),
			Difference:     domain.FormatMoney(item.Difference()),
			Account:        toAccountRef(item.Account),
		})
	}
	return res
}

// ToListBudgetAdjustmentsResponse converts adjustments for output.
func ToListBudgetAdjustmentsResponse(adjs []domain.BudgetAdjustment) ListBudgetAdjustmentsResponse {
	res := make([]BudgetAdjustmentResponse, len(adjs))
	for i := range adjs {
		res[i] = ToBudgetAdjustmentResponse(&adjs[i])
	}
	return ListBudgetAdjustmentsResponse{BudgetAdjustments: res}
}
