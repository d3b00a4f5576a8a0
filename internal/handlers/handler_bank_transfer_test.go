package handlers_test

import (
	"net/http"
	"testing"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BankTransferHandlerTestSuite struct {
	apiTestSuite
}

func (s *BankTransferHandlerTestSuite) TestCreate_Success() {
	from, to := uuid.NewString(), uuid.NewString()
	s.mockTransfers.On("CreateBankTransfer", mock.Anything,
		mock.MatchedBy(func(req dto.CreateBankTransferRequest) bool {
			return req.FromAccountID == from && req.ToAccountID == to && req.Amount.Equal(decimal.RequireFromString("50.25"))
		}),
		s.userID,
	).Return(&domain.BankTransfer{BankTransferID: fixedTransferID, Number: "BT-0001"}, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/bank-transfers", map[string]any{
		"date":          "2024-06-01",
		"reference":     "TRF-778",
		"fromAccountID": from,
		"toAccountID":   to,
		"amount":        "50.25",
	})

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	var res dto.MessageResponse
	s.decode(w, &res)
	s.Equal("BT-0001", res.Number)
}

func (s *BankTransferHandlerTestSuite) TestCreate_SameAccountRejected() {
	id := uuid.NewString()
	w := s.do(http.MethodPost, "/api/v1/bank-transfers", map[string]any{
		"date":          "2024-06-01",
		"reference":     "TRF-778",
		"fromAccountID": id,
		"toAccountID":   id,
		"amount":        "50",
	})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *BankTransferHandlerTestSuite) TestCreate_DuplicateReference() {
	s.mockTransfers.On("CreateBankTransfer", mock.Anything, mock.Anything, s.userID).
		Return(nil, apperrors.NewConflictError("bank transfer reference TRF-778 already exists")).Once()

	w := s.do(http.MethodPost, "/api/v1/bank-transfers", map[string]any{
		"date":          "2024-06-01",
		"reference":     "TRF-778",
		"fromAccountID": uuid.NewString(),
		"toAccountID":   uuid.NewString(),
		"amount":        "50",
	})

	s.Equal(http.StatusConflict, w.Code)
}

func (s *BankTransferHandlerTestSuite) TestList() {
	s.mockTransfers.On("ListBankTransfers", mock.Anything, dto.ListParams{Limit: 20}).
		Return([]domain.BankTransfer{{BankTransferID: fixedTransferID}, {BankTransferID: "bt-2"}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/bank-transfers", nil)

	s.Equal(http.StatusOK, w.Code)
	var res dto.ListBankTransfersResponse
	s.decode(w, &res)
	s.Len(res.BankTransfers, 2)
}

func (s *BankTransferHandlerTestSuite) TestApprove_InsufficientBalanceAtApproval() {
	s.mockTransfers.On("ApproveBankTransfer", mock.Anything, fixedTransferID, dto.ApproveRequest{Date: "2024-06-03"}, s.userID).
		Return(nil, apperrors.NewBusinessRuleError("insufficient balance on account 1010")).Once()

	w := s.do(http.MethodPost, "/api/v1/bank-transfers/"+fixedTransferID+"/approve", map[string]any{"date": "2024-06-03"})

	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *BankTransferHandlerTestSuite) TestGet_ShowsPostings() {
	s.mockTransfers.On("GetBankTransferByID", mock.Anything, fixedTransferID).Return(&domain.BankTransfer{
		BankTransferID: fixedTransferID,
		Number:         "BT-0001",
		Amount:         decimal.NewFromInt(50),
		Status:         domain.StatusApproved,
		Approval:       domain.Approval{IsApproved: true},
		Postings: []domain.Transaction{
			{TransactionID: uuid.NewString(), DocumentID: fixedTransferID, Amount: decimal.NewFromInt(-50), Record: "BT-0001", Type: domain.BankTransferTransaction},
			{TransactionID: uuid.NewString(), DocumentID: fixedTransferID, Amount: decimal.NewFromInt(50), Record: "BT-0001", Type: domain.BankTransferTransaction},
		},
	}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/bank-transfers/"+fixedTransferID, nil)

	s.Equal(http.StatusOK, w.Code)
	var res dto.BankTransferResponse
	s.decode(w, &res)
	s.Require().Len(res.Postings, 2)
	s.Equal("-50.0000", res.Postings[0].Amount)
	s.Equal("BT-0001", res.Postings[1].Record)
}

func TestBankTransferHandler(t *testing.T) {
	suite.Run(t, new(BankTransferHandlerTestSuite))
}
