package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/core/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mocks         *engineMocks
	mockClassRepo *MockClassificationRepository
	mockReporting *MockReportingRepository
	service       portssvc.AccountSvcFacade
	cashGroup     *domain.AccountGroup
	cashClass     *domain.AccountClass
	openYear      *domain.FinancialYear
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mocks = newEngineMocks()
	suite.mockClassRepo = new(MockClassificationRepository)
	suite.mockReporting = new(MockReportingRepository)
	suite.service = services.NewAccountService(suite.mocks.accountRepo, suite.mockClassRepo, suite.mocks.ledgerRepo, suite.mockReporting, suite.mocks.engine)
	suite.cashGroup = &domain.AccountGroup{GroupID: "grp-1", Code: "1", Name: "Current assets", Type: domain.Asset, Mode: domain.BalanceSheet}
	suite.cashClass = &domain.AccountClass{ClassID: "cls-10", Code: "10", Name: "Cash and bank", Type: domain.Asset, Nature: domain.Debitor, IsCashOrBank: true}
	suite.openYear = &domain.FinancialYear{FinancialYearID: "fy-2024", Name: "FY2024"}
}

func (suite *AccountServiceTestSuite) createRequest() dto.CreateAccountRequest {
	return dto.CreateAccountRequest{
		Code:           "1001",
		Name:           "Main Bank",
		GroupID:        "grp-1",
		ClassID:        "cls-10",
		OpeningBalance: dec("250.5"),
		Bank: &dto.BankDetailsRequest{
			BankName:      "First Bank",
			BranchName:    "Downtown",
			AccountNumber: "000123",
		},
	}
}

func (suite *AccountServiceTestSuite) expectClassification() {
	suite.mockClassRepo.On("FindGroupByID", mock.Anything, "grp-1").Return(suite.cashGroup, nil).Once()
	suite.mockClassRepo.On("FindClassByID", mock.Anything, "cls-10").Return(suite.cashClass, nil).Once()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	repo := suite.mocks.accountRepo

	repo.On("FindNaturalKeyClashes", ctx, "1001", "mainbank", "").Return(false, false, nil).Once()
	suite.expectClassification()
	repo.On("BankAccountNumberExists", ctx, "000123").Return(false, nil).Once()
	suite.mockClassRepo.On("FindOpenFinancialYear", ctx).Return(suite.openYear, nil).Once()
	repo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1001" && a.Type == domain.Asset && a.Nature == domain.Debitor && a.IsCashOrBank &&
			a.IsEditable && a.Balance.Equal(dec("250.5")) && a.OpeningBalance.Equal(dec("250.5")) &&
			a.Bank != nil && a.Bank.AccountID == a.AccountID && a.CreatedBy == testUserID
	}), mock.MatchedBy(func(s domain.AccountBalanceSnapshot) bool {
		return s.FinancialYearID == "fy-2024" && s.OpeningBalance.Equal(dec("250.5"))
	})).Return(nil).Once()

	acc, err := suite.service.CreateAccount(ctx, suite.createRequest(), testUserID)

	suite.Require().NoError(err)
	suite.Equal("1001", acc.Code)
	suite.Equal("grp-1", acc.GroupID)
	repo.AssertExpectations(suite.T())
	suite.mockClassRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	suite.mocks.accountRepo.On("FindNaturalKeyClashes", ctx, "1001", "mainbank", "").Return(true, false, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.createRequest(), testUserID)

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Equal(409, apperrors.StatusCode(err))
	suite.mockClassRepo.AssertNotCalled(suite.T(), "FindGroupByID", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ClassTypeMustMatchGroup() {
	ctx := context.Background()
	suite.cashClass.Type = domain.Liability
	suite.mocks.accountRepo.On("FindNaturalKeyClashes", ctx, mock.Anything, mock.Anything, "").Return(false, false, nil).Once()
	suite.expectClassification()

	_, err := suite.service.CreateAccount(ctx, suite.createRequest(), testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_CodeMustCarryClassPrefix() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Code = "1101"
	suite.mocks.accountRepo.On("FindNaturalKeyClashes", ctx, "1101", mock.Anything, "").Return(false, false, nil).Once()
	suite.expectClassification()

	_, err := suite.service.CreateAccount(ctx, req, testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mocks.accountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UnknownGroupIsValidationError() {
	ctx := context.Background()
	suite.mocks.accountRepo.On("FindNaturalKeyClashes", ctx, mock.Anything, mock.Anything, "").Return(false, false, nil).Once()
	suite.mockClassRepo.On("FindGroupByID", ctx, "grp-1").Return(nil, apperrors.NewNotFoundError("group")).Once()

	_, err := suite.service.CreateAccount(ctx, suite.createRequest(), testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_BankDetailsNeedCashClass() {
	ctx := context.Background()
	suite.cashClass.IsCashOrBank = false
	suite.mocks.accountRepo.On("FindNaturalKeyClashes", ctx, mock.Anything, mock.Anything, "").Return(false, false, nil).Once()
	suite.expectClassification()

	_, err := suite.service.CreateAccount(ctx, suite.createRequest(), testUserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mocks.accountRepo.AssertNotCalled(suite.T(), "BankAccountNumberExists", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NoOpenFinancialYear() {
	ctx := context.Background()
	req := suite.createRequest()
	req.Bank = nil
	suite.mocks.accountRepo.On("FindNaturalKeyClashes", ctx, mock.Anything, mock.Anything, "").Return(false, false, nil).Once()
	suite.expectClassification()
	suite.mockClassRepo.On("FindOpenFinancialYear", ctx).Return(nil, apperrors.NewNotFoundError("financial year")).Once()

	_, err := suite.service.CreateAccount(ctx, req, testUserID)

	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mocks.accountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) lockedAccount(balance, opening string) map[string]domain.Account {
	acc := account("acc-1", "1001", domain.Asset, true, balance)
	acc.OpeningBalance = dec(opening)
	return accountsOf(acc)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RebasesBalanceOnOpeningChange() {
	ctx := context.Background()
	repo := suite.mocks.accountRepo
	newOpening := dec("20")

	suite.mockClassRepo.On("FindOpenFinancialYear", ctx).Return(suite.openYear, nil).Once()
	repo.On("Begin", ctx).Return(nil, nil).Once()
	repo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, []string{"acc-1"}).Return(suite.lockedAccount("150", "100"), nil).Once()
	repo.On("RebaseOpeningBalanceInTx", ctx, mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Balance.Equal(dec("70")) && a.OpeningBalance.Equal(dec("20")) && a.LastUpdatedBy == testUserID
	}), "fy-2024").Return(nil).Once()
	repo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	acc, err := suite.service.UpdateAccount(ctx, "acc-1", dto.UpdateAccountRequest{OpeningBalance: &newOpening}, testUserID)

	suite.Require().NoError(err)
	suite.True(acc.Balance.Equal(dec("70")))
	repo.AssertNotCalled(suite.T(), "Rollback", mock.Anything, mock.Anything)
	repo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_RejectsNegativeResultingBalance() {
	ctx := context.Background()
	repo := suite.mocks.accountRepo
	newOpening := decimal.Zero

	suite.mockClassRepo.On("FindOpenFinancialYear", ctx).Return(suite.openYear, nil).Once()
	repo.On("Begin", ctx).Return(nil, nil).Once()
	repo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, []string{"acc-1"}).Return(suite.lockedAccount("60", "100"), nil).Once()
	repo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.UpdateAccount(ctx, "acc-1", dto.UpdateAccountRequest{OpeningBalance: &newOpening}, testUserID)

	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	repo.AssertNotCalled(suite.T(), "RebaseOpeningBalanceInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	repo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NotEditable() {
	ctx := context.Background()
	repo := suite.mocks.accountRepo
	locked := suite.lockedAccount("10", "10")
	acc := locked["acc-1"]
	acc.IsEditable = false
	locked["acc-1"] = acc
	name := "Renamed"

	suite.mockClassRepo.On("FindOpenFinancialYear", ctx).Return(suite.openYear, nil).Once()
	repo.On("Begin", ctx).Return(nil, nil).Once()
	repo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, []string{"acc-1"}).Return(locked, nil).Once()
	repo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.UpdateAccount(ctx, "acc-1", dto.UpdateAccountRequest{Name: &name}, testUserID)

	suite.ErrorIs(err, apperrors.ErrBusinessRule)
	repo.AssertNotCalled(suite.T(), "FindNaturalKeyClashes", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Missing() {
	ctx := context.Background()
	repo := suite.mocks.accountRepo

	suite.mockClassRepo.On("FindOpenFinancialYear", ctx).Return(suite.openYear, nil).Once()
	repo.On("Begin", ctx).Return(nil, nil).Once()
	repo.On("FindAccountsByIDsForUpdate", ctx, mock.Anything, []string{"acc-x"}).Return(map[string]domain.Account{}, nil).Once()
	repo.On("Rollback", ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.UpdateAccount(ctx, "acc-x", dto.UpdateAccountRequest{}, testUserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestListTransactions_AccountMustExist() {
	ctx := context.Background()
	suite.mocks.accountRepo.On("FindAccountByID", ctx, "acc-x").Return(nil, apperrors.NewNotFoundError("account acc-x")).Once()

	_, err := suite.service.ListTransactions(ctx, "acc-x", dto.ListTransactionsParams{})

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mocks.ledgerRepo.AssertNotCalled(suite.T(), "ListTransactionsByAccountID", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListTransactions_PassesToken() {
	ctx := context.Background()
	token := "cursor"
	acc := account("acc-1", "1001", domain.Asset, true, "10")
	suite.mocks.accountRepo.On("FindAccountByID", ctx, "acc-1").Return(&acc, nil).Once()
	suite.mocks.ledgerRepo.On("ListTransactionsByAccountID", ctx, "acc-1", 20, &token).
		Return([]domain.Transaction{{TransactionID: "t-1", AccountID: "acc-1", Amount: dec("10")}}, "next", nil).Once()

	resp, err := suite.service.ListTransactions(ctx, "acc-1", dto.ListTransactionsParams{NextToken: &token})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
}

func (suite *AccountServiceTestSuite) TestAggregateBalances_RejectsUnknownGrouping() {
	_, err := suite.service.AggregateBalances(context.Background(), domain.BalanceGrouping("currency"))

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReporting.AssertNotCalled(suite.T(), "AggregateBalances", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestAggregateBalances_ByType() {
	ctx := context.Background()
	suite.mockReporting.On("AggregateBalances", ctx, domain.GroupByType).
		Return([]domain.BalanceAggregate{{Key: "ASSET", TotalBalance: dec("10.12345"), AccountCount: 2}}, nil).Once()

	rows, err := suite.service.AggregateBalances(ctx, domain.GroupByType)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.True(rows[0].TotalBalance.Equal(dec("10.1235")))
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
