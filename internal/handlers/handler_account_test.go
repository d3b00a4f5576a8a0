package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountHandlerTestSuite struct {
	apiTestSuite
}

func (s *AccountHandlerTestSuite) TestCreateAccount_Success() {
	groupID, classID := uuid.NewString(), uuid.NewString()
	created := &domain.Account{
		AccountID:      uuid.NewString(),
		Code:           "1010",
		Name:           "Main Bank",
		GroupID:        groupID,
		ClassID:        classID,
		Type:           domain.Asset,
		Nature:         domain.Debitor,
		IsCashOrBank:   true,
		IsEditable:     true,
		Balance:        decimal.RequireFromString("500"),
		OpeningBalance: decimal.RequireFromString("500"),
	}
	s.mockAccounts.On("CreateAccount", mock.Anything,
		mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
			return req.Code == "1010" && req.OpeningBalance.Equal(decimal.NewFromInt(500)) && req.Bank != nil
		}),
		s.userID,
	).Return(created, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":           "1010",
		"name":           "Main Bank",
		"groupID":        groupID,
		"classID":        classID,
		"openingBalance": "500",
		"bank":           map[string]any{"bankName": "ACME", "branchName": "Center", "accountNumber": "0001"},
	})

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var res dto.AccountResponse
	s.decode(w, &res)
	s.Equal(created.AccountID, res.AccountID)
	s.Equal("500.0000", res.Balance)
}

func (s *AccountHandlerTestSuite) TestCreateAccount_NegativeOpeningBalance() {
	w := s.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":           "1010",
		"name":           "Main Bank",
		"groupID":        uuid.NewString(),
		"classID":        uuid.NewString(),
		"openingBalance": "-1",
	})

	s.Equal(http.StatusBadRequest, w.Code)
	s.mockAccounts.AssertNotCalled(s.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountHandlerTestSuite) TestCreateAccount_Conflict() {
	s.mockAccounts.On("CreateAccount", mock.Anything, mock.Anything, s.userID).
		Return(nil, apperrors.NewConflictError("account code 1010 already exists")).Once()

	w := s.do(http.MethodPost, "/api/v1/accounts", map[string]any{
		"code":           "1010",
		"name":           "Main Bank",
		"groupID":        uuid.NewString(),
		"classID":        uuid.NewString(),
		"openingBalance": "0",
	})

	s.Equal(http.StatusConflict, w.Code)
	var res dto.ErrorResponse
	s.decode(w, &res)
	s.Contains(res.Error, "already exists")
}

func (s *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	s.mockAccounts.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, apperrors.NewNotFoundError("account "+accountID)).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *AccountHandlerTestSuite) TestGetAccount_InternalErrorIsNotLeaked() {
	accountID := uuid.NewString()
	s.mockAccounts.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, fmt.Errorf("dial tcp 10.0.0.1:5432: connection refused")).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts/"+accountID, nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.NotContains(w.Body.String(), "10.0.0.1")
}

func (s *AccountHandlerTestSuite) TestListAccounts_DefaultsAndBounds() {
	s.mockAccounts.On("ListAccounts", mock.Anything, dto.ListParams{Limit: 20, Offset: 0}).
		Return([]domain.Account{{AccountID: uuid.NewString(), Code: "1010"}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts", nil)
	s.Equal(http.StatusOK, w.Code)
	var res dto.ListAccountsResponse
	s.decode(w, &res)
	s.Len(res.Accounts, 1)

	w = s.do(http.MethodGet, "/api/v1/accounts?limit=101", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AccountHandlerTestSuite) TestUpdateAccount_NotEditable() {
	accountID := uuid.NewString()
	s.mockAccounts.On("UpdateAccount", mock.Anything, accountID,
		mock.MatchedBy(func(req dto.UpdateAccountRequest) bool {
			return req.Name != nil && *req.Name == "Renamed" && req.OpeningBalance == nil
		}),
		s.userID,
	).Return(nil, apperrors.NewBusinessRuleError("account is not editable")).Once()

	w := s.do(http.MethodPut, "/api/v1/accounts/"+accountID, map[string]any{"name": "Renamed"})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *AccountHandlerTestSuite) TestListTransactions_Success() {
	accountID := uuid.NewString()
	token := "abc"
	expected := &dto.ListTransactionsResponse{
		Transactions: []dto.TransactionResponse{
			{TransactionID: uuid.NewString(), AccountID: accountID, Amount: "100.0000", Type: domain.JournalEntryTransaction, CreatedAt: time.Now()},
			{TransactionID: uuid.NewString(), AccountID: accountID, Amount: "50.0000", Type: domain.JournalEntryTransaction, CreatedAt: time.Now().Add(-time.Hour)},
		},
		NextToken: &token,
	}
	s.mockAccounts.On("ListTransactions", mock.Anything, accountID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Limit == 2 && p.NextToken == nil
		}),
	).Return(expected, nil).Once()

	w := s.do(http.MethodGet, fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=2", accountID), nil)

	s.Equal(http.StatusOK, w.Code)
	var res dto.ListTransactionsResponse
	s.decode(w, &res)
	s.Len(res.Transactions, 2)
	s.Equal(expected.Transactions[0].TransactionID, res.Transactions[0].TransactionID)
	s.Require().NotNil(res.NextToken)
	s.Equal(token, *res.NextToken)
}

func (s *AccountHandlerTestSuite) TestAggregateBalances() {
	s.mockAccounts.On("AggregateBalances", mock.Anything, domain.GroupByClass).
		Return([]domain.BalanceAggregate{{Key: "c1", Type: domain.Asset, TotalBalance: decimal.NewFromInt(10), AccountCount: 2}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/accounts/balances?groupBy=class", nil)
	s.Equal(http.StatusOK, w.Code)
	var res dto.BalancesResponse
	s.decode(w, &res)
	s.Equal("class", res.GroupBy)
	s.Require().Len(res.Rows, 1)
	s.Equal("10.0000", res.Rows[0].TotalBalance)

	w = s.do(http.MethodGet, "/api/v1/accounts/balances?groupBy=nature", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *AccountHandlerTestSuite) TestCurrentFinancialYear_NoneOpen() {
	s.mockAccounts.On("GetCurrentFinancialYear", mock.Anything).
		Return(nil, apperrors.NewBusinessRuleError("no open financial year")).Once()

	w := s.do(http.MethodGet, "/api/v1/financial-years/current", nil)

	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *AccountHandlerTestSuite) TestRequiresBearerToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
