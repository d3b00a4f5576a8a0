package handlers_test

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, params dto.ListParams) ([]domain.Account, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, accountID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockAccountService) ListGroups(ctx context.Context) ([]domain.AccountGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}
func (m *MockAccountService) ListClasses(ctx context.Context) ([]domain.AccountClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountClass), args.Error(1)
}
func (m *MockAccountService) GetCurrentFinancialYear(ctx context.Context) (*domain.FinancialYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}
func (m *MockAccountService) AggregateBalances(ctx context.Context, groupBy domain.BalanceGrouping) ([]domain.BalanceAggregate, error) {
	args := m.Called(ctx, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceAggregate), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalEntryService ---
type MockJournalEntryService struct {
	mock.Mock
}

func (m *MockJournalEntryService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalEntryService) GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalEntryService) ListJournalEntries(ctx context.Context, params dto.ListParams) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}
func (m *MockJournalEntryService) ApproveJournalEntry(ctx context.Context, journalEntryID string, req dto.ApproveRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

var _ portssvc.JournalEntrySvcFacade = (*MockJournalEntryService)(nil)

// --- Mock BankTransferService ---
type MockBankTransferService struct {
	mock.Mock
}

func (m *MockBankTransferService) CreateBankTransfer(ctx context.Context, req dto.CreateBankTransferRequest, userID string) (*domain.BankTransfer, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransfer), args.Error(1)
}
func (m *MockBankTransferService) GetBankTransferByID(ctx context.Context, bankTransferID string) (*domain.BankTransfer, error) {
	args := m.Called(ctx, bankTransferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransfer), args.Error(1)
}
func (m *MockBankTransferService) ListBankTransfers(ctx context.Context, params dto.ListParams) ([]domain.BankTransfer, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransfer), args.Error(1)
}
func (m *MockBankTransferService) ApproveBankTransfer(ctx context.Context, bankTransferID string, req dto.ApproveRequest, userID string) (*domain.BankTransfer, error) {
	args := m.Called(ctx, bankTransferID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransfer), args.Error(1)
}

var _ portssvc.BankTransferSvcFacade = (*MockBankTransferService)(nil)

// --- Mock VoucherService ---
type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*domain.PaymentAndReceipt, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAndReceipt), args.Error(1)
}
func (m *MockVoucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.PaymentAndReceipt, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAndReceipt), args.Error(1)
}
func (m *MockVoucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) ([]domain.PaymentAndReceipt, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAndReceipt), args.Error(1)
}
func (m *MockVoucherService) ApproveVoucher(ctx context.Context, voucherID string, req dto.ApproveRequest, userID string) (*domain.PaymentAndReceipt, error) {
	args := m.Called(ctx, voucherID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAndReceipt), args.Error(1)
}

var _ portssvc.VoucherSvcFacade = (*MockVoucherService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) ListBudgets(ctx context.Context, params dto.ListParams) ([]domain.Budget, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}
func (m *MockBudgetService) ApproveBudget(ctx context.Context, budgetID string, req dto.ApproveRequest, userID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) CreateBudgetAdjustment(ctx context.Context, req dto.CreateBudgetAdjustmentRequest, userID string) (*domain.BudgetAdjustment, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAdjustment), args.Error(1)
}
func (m *MockBudgetService) GetBudgetAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.BudgetAdjustment, error) {
	args := m.Called(ctx, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAdjustment), args.Error(1)
}
func (m *MockBudgetService) ListBudgetAdjustments(ctx context.Context, budgetID string, params dto.ListParams) ([]domain.BudgetAdjustment, error) {
	args := m.Called(ctx, budgetID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetAdjustment), args.Error(1)
}
func (m *MockBudgetService) ApproveBudgetAdjustment(ctx context.Context, adjustmentID string, req dto.ApproveRequest, userID string) (*domain.BudgetAdjustment, error) {
	args := m.Called(ctx, adjustmentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAdjustment), args.Error(1)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)
