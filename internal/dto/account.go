package dto

import (
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BankDetailsRequest is the bank sub-record for cash/bank accounts.
type BankDetailsRequest struct {
	BankName      string `json:"bankName" binding:"required"`
	BranchName    string `json:"branchName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	IBAN          string `json:"iban"`
	SwiftCode     string `json:"swiftCode"`
}

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code           string              `json:"code" binding:"required"`
	Name           string              `json:"name" binding:"required"`
	GroupID        string              `json:"groupID" binding:"required,uuid"`
	ClassID        string              `json:"classID" binding:"required,uuid"`
	OpeningBalance decimal.Decimal     `json:"openingBalance" binding:"nonneg_money" swaggertype:"string" example:"0.0000"`
	IsEditable     *bool               `json:"isEditable"` // defaults to true
	Bank           *BankDetailsRequest `json:"bank"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish omitted fields from zero values.
type UpdateAccountRequest struct {
	Name           *string          `json:"name"`
	OpeningBalance *decimal.Decimal `json:"openingBalance" swaggertype:"string"`
}

// BankDetailsResponse mirrors domain.BankDetails.
type BankDetailsResponse struct {
	BankName      string `json:"bankName"`
	BranchName    string `json:"branchName"`
	AccountNumber string `json:"accountNumber"`
	IBAN          string `json:"iban,omitempty"`
	SwiftCode     string `json:"swiftCode,omitempty"`
}

// AccountResponse defines the data returned for an account. Money is rendered with four decimals.
type AccountResponse struct {
	AccountID      string               `json:"accountID"`
	Code           string               `json:"code"`
	Name           string               `json:"name"`
	GroupID        string               `json:"groupID"`
	ClassID        string               `json:"classID"`
	Type           domain.AccountType   `json:"type"`
	Nature         domain.AccountNature `json:"nature"`
	IsCashOrBank   bool                 `json:"isCashOrBank"`
	IsEditable     bool                 `json:"isEditable"`
	Balance        string               `json:"balance"`
	OpeningBalance string               `json:"openingBalance"`
	Bank           *BankDetailsResponse `json:"bank,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
	LastUpdatedAt  time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy  string               `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	res := AccountResponse{
		AccountID:      acc.AccountID,
		Code:           acc.Code,
		Name:           acc.Name,
		GroupID:        acc.GroupID,
		ClassID:        acc.ClassID,
		Type:           acc.Type,
		Nature:         acc.Nature,
		IsCashOrBank:   acc.IsCashOrBank,
		IsEditable:     acc.IsEditable,
		Balance:        domain.FormatMoney(acc.Balance),
		OpeningBalance: domain.FormatMoney(acc.OpeningBalance),
		CreatedAt:      acc.CreatedAt,
		CreatedBy:      acc.CreatedBy,
		LastUpdatedAt:  acc.LastUpdatedAt,
		LastUpdatedBy:  acc.LastUpdatedBy,
	}
	if acc.Bank != nil {
		res.Bank = &BankDetailsResponse{
			BankName:      acc.Bank.BankName,
			BranchName:    acc.Bank.BranchName,
			AccountNumber: acc.Bank.AccountNumber,
			IBAN:          acc.Bank.IBAN,
			SwiftCode:     acc.Bank.SwiftCode,
		}
	}
	return res
}

// toAccountRef is a nil-safe converter used when embedding resolved accounts in documents.
func toAccountRef(acc *domain.Account) *AccountResponse {
	if acc == nil {
		return nil
	}
	res := ToAccountResponse(acc)
	return &res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountResponse converts a slice of domain.Account to a ListAccountsResponse.
func ToListAccountResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return ListAccountsResponse{Accounts: res}
}

// ListTransactionsParams defines query parameters for an account ledger page.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse is one ledger row.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID"`
	DocumentID    string                 `json:"documentID"`
	Amount        string                 `json:"amount"`
	Nature        domain.AccountNature   `json:"nature"`
	Type          domain.TransactionType `json:"type"`
	Record        string                 `json:"record"`
	Date          string                 `json:"date"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
}

// ListTransactionsResponse is one page of an account ledger.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponses converts ledger rows for output.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = TransactionResponse{
			TransactionID: txn.TransactionID,
			AccountID:     txn.AccountID,
			DocumentID:    txn.DocumentID,
			Amount:        domain.FormatMoney(txn.Amount),
			Nature:        txn.Nature,
			Type:          txn.Type,
			Record:        txn.Record,
			Date:          txn.Date.Format(DateLayout),
			CreatedAt:     txn.CreatedAt,
			CreatedBy:     txn.CreatedBy,
		}
	}
	return res
}

// BalancesParams selects the aggregation dimension of the balances report.
type BalancesParams struct {
	GroupBy string `form:"groupBy,default=type" binding:"oneof=group class type"`
}

// BalanceAggregateResponse is one aggregated balance row.
type BalanceAggregateResponse struct {
	Key          string             `json:"key"`
	Code         string             `json:"code,omitempty"`
	Name         string             `json:"name,omitempty"`
	Type         domain.AccountType `json:"type"`
	TotalBalance string             `json:"totalBalance"`
	AccountCount int                `json:"accountCount"`
}

// BalancesResponse wraps the aggregated rows.
type BalancesResponse struct {
	GroupBy string                     `json:"groupBy"`
	Rows    []BalanceAggregateResponse `json:"rows"`
}

// ToBalancesResponse converts aggregates for output.
func ToBalancesResponse(groupBy domain.BalanceGrouping, rows []domain.BalanceAggregate) BalancesResponse {
	out := make([]BalanceAggregateResponse, len(rows))
	for i, r := range rows {
		out[i] = BalanceAggregateResponse{
			Key:          r.Key,
			Code:         r.Code,
			Name:         r.Name,
			Type:         r.Type,
			TotalBalance: domain.FormatMoney(r.TotalBalance),
			AccountCount: r.AccountCount,
		}
	}
	return BalancesResponse{GroupBy: string(groupBy), Rows: out}
}

// FinancialYearResponse mirrors domain.FinancialYear.
type FinancialYearResponse struct {
	FinancialYearID string `json:"financialYearID"`
	Name            string `json:"name"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	IsClosed        bool   `json:"isClosed"`
}

// ToFinancialYearResponse converts a financial year for output.
func ToFinancialYearResponse(fy *domain.FinancialYear) FinancialYearResponse {
	return FinancialYearResponse{
		FinancialYearID: fy.FinancialYearID,
		Name:            fy.Name,
		StartDate:       fy.StartDate.Format(DateLayout),
		EndDate:         fy.EndDate.Format(DateLayout),
		IsClosed:        fy.IsClosed,
	}
}
