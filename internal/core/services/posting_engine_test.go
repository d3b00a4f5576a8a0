package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/core/services"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PostingEngineTestSuite struct {
	suite.Suite
	mocks *engineMocks
	cash  domain.Account
	rent  domain.Account
	entry *domain.JournalEntry
	cmd   domain.ApproveCommand
}

func (suite *PostingEngineTestSuite) SetupTest() {
	suite.mocks = newEngineMocks()
	suite.cash = account("b-cash", "1001", domain.Asset, true, "500")
	suite.rent = account("a-rent", "5001", domain.Expense, false, "0")
	suite.entry = &domain.JournalEntry{
		JournalEntryID: "je-1",
		Number:         "JE-0001",
		Date:           time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		TotalAmount:    dec("100"),
		Status:         domain.StatusPending,
		Items: []domain.JournalEntryItem{
			{ItemID: "it-1", CreditAccountID: suite.cash.AccountID, DebitAccountID: suite.rent.AccountID, Amount: dec("100")},
		},
	}
	suite.cmd = domain.ApproveCommand{Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), UserID: testUserID}
}

func markApproved(ok bool, err error) func(context.Context, pgx.Tx) (bool, error) {
	return func(context.Context, pgx.Tx) (bool, error) { return ok, err }
}

func (suite *PostingEngineTestSuite) TestPost_JournalEntryMovesBalancesAndWritesLedger() {
	ctx := context.Background()
	m := suite.mocks

	m.txManager.On("Begin", ctx).Return(nil, nil).Once()
	m.expectPosting([]string{"a-rent", "b-cash"}, accountsOf(suite.cash, suite.rent), map[string]string{"b-cash": "-100", "a-rent": "100"}, func(txns []domain.Transaction) bool {
		if len(txns) != 2 {
			return false
		}
		for _, txn := range txns {
			if txn.Record != "JE-0001" || txn.Type != domain.JournalEntryTransaction || txn.DocumentID != "je-1" ||
				!txn.Date.Equal(suite.cmd.Date) || txn.CreatedBy != testUserID {
				return false
			}
		}
		// sorted by account id, one row per account with the signed delta
		return txns[0].AccountID == "a-rent" && decEq("100")(txns[0].Amount) &&
			txns[1].AccountID == "b-cash" && decEq("-100")(txns[1].Amount)
	})

	err := m.engine.Post(ctx, suite.entry, suite.cmd, markApproved(true, nil))

	suite.Require().NoError(err)
	m.txManager.AssertNotCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	m.assertExpectations(suite.T())
}

func (suite *PostingEngineTestSuite) TestPost_NotPendingRollsBack() {
	ctx := context.Background()
	m := suite.mocks

	m.txManager.On("Begin", ctx).Return(nil, nil).Once()
	m.txManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	err := m.engine.Post(ctx, suite.entry, suite.cmd, markApproved(false, nil))

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrNotPending)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	m.accountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, mock.Anything)
	m.assertNothingPosted(suite.T())
	m.txManager.AssertExpectations(suite.T())
}

func (suite *PostingEngineTestSuite) TestPost_InsufficientBalanceUnderLockIsBusinessRule() {
	ctx := context.Background()
	m := suite.mocks
	poorCash := suite.cash
	poorCash.Balance = dec("50")

	m.txManager.On("Begin", ctx).Return(nil, nil).Once()
	m.accountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).
		Return(accountsOf(poorCash, suite.rent), nil).Once()
	m.txManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	err := m.engine.Post(ctx, suite.entry, suite.cmd, markApproved(true, nil))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.Equal(422, apperrors.StatusCode(err))
	m.assertNothingPosted(suite.T())
	m.txManager.AssertExpectations(suite.T())
}

func (suite *PostingEngineTestSuite) TestPost_LedgerFailureRollsBack() {
	ctx := context.Background()
	m := suite.mocks
	dbErr := errors.New("connection reset")

	m.txManager.On("Begin", ctx).Return(nil, nil).Once()
	m.accountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).
		Return(accountsOf(suite.cash, suite.rent), nil).Once()
	m.accountRepo.On("UpdateAccountBalancesInTx", ctx, mock.Anything, mock.Anything, testUserID, testNow).Return(nil).Once()
	m.ledgerRepo.On("InsertTransactionsInTx", ctx, mock.Anything, mock.Anything).Return(dbErr).Once()
	m.txManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	err := m.engine.Post(ctx, suite.entry, suite.cmd, markApproved(true, nil))

	suite.Require().Error(err)
	suite.ErrorIs(err, dbErr)
	m.txManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	m.assertExpectations(suite.T())
}

func (suite *PostingEngineTestSuite) TestPost_BalanceCheckConstraintIsBusinessRule() {
	ctx := context.Background()
	m := suite.mocks

	m.txManager.On("Begin", ctx).Return(nil, nil).Once()
	m.accountRepo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, mock.Anything).
		Return(accountsOf(suite.cash, suite.rent), nil).Once()
	m.accountRepo.On("UpdateAccountBalancesInTx", ctx, mock.Anything, mock.Anything, testUserID, testNow).
		Return(fmt.Errorf("%w: update account balances", domain.ErrInsufficientBalance)).Once()
	m.txManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	err := m.engine.Post(ctx, suite.entry, suite.cmd, markApproved(true, nil))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.Equal(422, apperrors.StatusCode(err))
	m.ledgerRepo.AssertNotCalled(suite.T(), "InsertTransactionsInTx", mock.Anything, mock.Anything, mock.Anything)
	m.txManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	m.assertExpectations(suite.T())
}

func (suite *PostingEngineTestSuite) TestValidatePosting_Overdraft() {
	ctx := context.Background()
	m := suite.mocks
	poorCash := suite.cash
	poorCash.Balance = dec("99.99")

	m.accountRepo.On("FindAccountsByIDs", ctx, []string{"b-cash", "a-rent"}).Return(accountsOf(poorCash, suite.rent), nil).Once()

	_, err := m.engine.ValidatePosting(ctx, suite.entry)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInsufficientBalance)
	suite.ErrorIs(err, apperrors.ErrValidation)
	m.txManager.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PostingEngineTestSuite) TestValidatePosting_UnknownAccount() {
	ctx := context.Background()
	m := suite.mocks

	m.accountRepo.On("FindAccountsByIDs", ctx, mock.Anything).Return(accountsOf(suite.cash), nil).Once()

	_, err := m.engine.ValidatePosting(ctx, suite.entry)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *PostingEngineTestSuite) TestCreateNumbered_UsesConfiguredWidth() {
	ctx := context.Background()
	m := newEngineMocks(services.WithNumberWidth(6))
	m.expectNumber("JE", 42)

	var saved string
	number, err := m.engine.CreateNumbered(ctx, domain.KindJournalEntry, func(_ context.Context, _ pgx.Tx, number string) error {
		saved = number
		return nil
	})

	suite.Require().NoError(err)
	suite.Equal("JE-000042", number)
	suite.Equal(number, saved)
	m.assertExpectations(suite.T())
}

func (suite *PostingEngineTestSuite) TestCreateNumbered_SaveFailureRollsBack() {
	ctx := context.Background()
	m := suite.mocks
	conflict := apperrors.NewConflictError("reference taken")

	m.txManager.On("Begin", ctx).Return(nil, nil).Once()
	m.sequenceRepo.On("NextValueInTx", ctx, mock.Anything, "BT").Return(int64(7), nil).Once()
	m.txManager.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	number, err := m.engine.CreateNumbered(ctx, domain.KindBankTransfer, func(context.Context, pgx.Tx, string) error {
		return conflict
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Empty(number)
	m.txManager.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	m.assertExpectations(suite.T())
}

func TestPostingEngineTestSuite(t *testing.T) {
	suite.Run(t, new(PostingEngineTestSuite))
}
