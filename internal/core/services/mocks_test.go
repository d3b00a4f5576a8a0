package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func txArg(args mock.Arguments, i int) pgx.Tx {
	tx, _ := args.Get(i).(pgx.Tx)
	return tx
}

// --- Mock TransactionManager ---
type MockTxManager struct {
	mock.Mock
}

var _ portsrepo.TransactionManager = (*MockTxManager)(nil)

func (m *MockTxManager) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return txArg(args, 0), args.Error(1)
}

func (m *MockTxManager) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	MockTxManager
}

var _ portsrepo.AccountRepositoryWithTx = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindNaturalKeyClashes(ctx context.Context, codeKey, nameKey, excludeAccountID string) (bool, bool, error) {
	args := m.Called(ctx, codeKey, nameKey, excludeAccountID)
	return args.Bool(0), args.Bool(1), args.Error(2)
}

func (m *MockAccountRepository) BankAccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	args := m.Called(ctx, accountNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account, snapshot domain.AccountBalanceSnapshot) error {
	return m.Called(ctx, account, snapshot).Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	return m.Called(ctx, tx, balanceChanges, userID, now).Error(0)
}

func (m *MockAccountRepository) RebaseOpeningBalanceInTx(ctx context.Context, tx pgx.Tx, account domain.Account, financialYearID string) error {
	return m.Called(ctx, tx, account, financialYearID).Error(0)
}

// --- Mock ClassificationReader ---
type MockClassificationRepository struct {
	mock.Mock
}

var _ portsrepo.ClassificationReader = (*MockClassificationRepository)(nil)

func (m *MockClassificationRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountGroup), args.Error(1)
}

func (m *MockClassificationRepository) FindClassByID(ctx context.Context, classID string) (*domain.AccountClass, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountClass), args.Error(1)
}

func (m *MockClassificationRepository) ListGroups(ctx context.Context) ([]domain.AccountGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountGroup), args.Error(1)
}

func (m *MockClassificationRepository) ListClasses(ctx context.Context) ([]domain.AccountClass, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountClass), args.Error(1)
}

func (m *MockClassificationRepository) FindOpenFinancialYear(ctx context.Context) (*domain.FinancialYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

func (m *MockClassificationRepository) FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error) {
	args := m.Called(ctx, financialYearID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialYear), args.Error(1)
}

// --- Mock Ledger / Sequence / Reporting ---
type MockLedgerRepository struct {
	mock.Mock
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error {
	return m.Called(ctx, tx, transactions).Error(0)
}

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockLedgerRepository) FindTransactionsByDocumentID(ctx context.Context, documentID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepository = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, prefix string) (int64, error) {
	args := m.Called(ctx, tx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) AggregateBalances(ctx context.Context, groupBy domain.BalanceGrouping) ([]domain.BalanceAggregate, error) {
	args := m.Called(ctx, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalanceAggregate), args.Error(1)
}

type MockAttachmentStore struct {
	mock.Mock
}

var _ portsrepo.AttachmentStore = (*MockAttachmentStore)(nil)

func (m *MockAttachmentStore) Save(ctx context.Context, base64Payload string) (string, error) {
	args := m.Called(ctx, base64Payload)
	return args.String(0), args.Error(1)
}

// --- Mock document repositories ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, journalEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListJournalEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	return m.Called(ctx, tx, entry).Error(0)
}

func (m *MockJournalEntryRepository) MarkJournalEntryApprovedInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, approval domain.Approval) (bool, error) {
	args := m.Called(ctx, tx, journalEntryID, approval)
	return args.Bool(0), args.Error(1)
}

type MockBankTransferRepository struct {
	mock.Mock
}

var _ portsrepo.BankTransferRepositoryFacade = (*MockBankTransferRepository)(nil)

func (m *MockBankTransferRepository) FindBankTransferByID(ctx context.Context, bankTransferID string) (*domain.BankTransfer, error) {
	args := m.Called(ctx, bankTransferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankTransfer), args.Error(1)
}

func (m *MockBankTransferRepository) ListBankTransfers(ctx context.Context, limit, offset int) ([]domain.BankTransfer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankTransfer), args.Error(1)
}

func (m *MockBankTransferRepository) SaveBankTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error {
	return m.Called(ctx, tx, transfer).Error(0)
}

func (m *MockBankTransferRepository) MarkBankTransferApprovedInTx(ctx context.Context, tx pgx.Tx, bankTransferID string, approval domain.Approval) (bool, error) {
	args := m.Called(ctx, tx, bankTransferID, approval)
	return args.Bool(0), args.Error(1)
}

type MockVoucherRepository struct {
	mock.Mock
}

var _ portsrepo.VoucherRepositoryFacade = (*MockVoucherRepository)(nil)

func (m *MockVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.PaymentAndReceipt, error) {
	args := m.Called(ctx, voucherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentAndReceipt), args.Error(1)
}

func (m *MockVoucherRepository) ListVouchers(ctx context.Context, voucherType domain.VoucherType, limit, offset int) ([]domain.PaymentAndReceipt, error) {
	args := m.Called(ctx, voucherType, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentAndReceipt), args.Error(1)
}

func (m *MockVoucherRepository) SaveVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.PaymentAndReceipt) error {
	return m.Called(ctx, tx, voucher).Error(0)
}

func (m *MockVoucherRepository) MarkVoucherApprovedInTx(ctx context.Context, tx pgx.Tx, voucherID string, approval domain.Approval) (bool, error) {
	args := m.Called(ctx, tx, voucherID, approval)
	return args.Bool(0), args.Error(1)
}

type MockBudgetRepository struct {
	mock.Mock
}

var _ portsrepo.BudgetRepositoryFacade = (*MockBudgetRepository)(nil)

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) BudgetExistsForFinancialYear(ctx context.Context, financialYearID string) (bool, error) {
	args := m.Called(ctx, financialYearID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudgetInTx(ctx context.Context, tx pgx.Tx, budget domain.Budget) error {
	return m.Called(ctx, tx, budget).Error(0)
}

func (m *MockBudgetRepository) MarkBudgetApproved(ctx context.Context, budgetID string, approval domain.Approval) (bool, error) {
	args := m.Called(ctx, budgetID, approval)
	return args.Bool(0), args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.BudgetAdjustment, error) {
	args := m.Called(ctx, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetAdjustment), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetAdjustments(ctx context.Context, budgetID string, limit, offset int) ([]domain.BudgetAdjustment, error) {
	args := m.Called(ctx, budgetID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetAdjustment), args.Error(1)
}

func (m *MockBudgetRepository) SaveBudgetAdjustmentInTx(ctx context.Context, tx pgx.Tx, adjustment domain.BudgetAdjustment) error {
	return m.Called(ctx, tx, adjustment).Error(0)
}

func (m *MockBudgetRepository) MarkBudgetAdjustmentApproved(ctx context.Context, adjustmentID string, approval domain.Approval) (bool, error) {
	args := m.Called(ctx, adjustmentID, approval)
	return args.Bool(0), args.Error(1)
}
