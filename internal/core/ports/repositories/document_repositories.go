package repositories

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// Every Mark*ApprovedInTx method performs a conditional update from PENDING to APPROVED
// and reports whether exactly one row changed. A concurrent caller blocks on the row lock
// and then sees false.

// JournalEntryRepositoryFacade persists journal entries with their items.
type JournalEntryRepositoryFacade interface {
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error)
	SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error
	MarkJournalEntryApprovedInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, approval domain.Approval) (bool, error)
}

// BankTransferRepositoryFacade persists bank transfers.
type BankTransferRepositoryFacade interface {
	FindBankTransferByID(ctx context.Context, bankTransferID string) (*domain.BankTransfer, error)
	ListBankTransfers(ctx context.Context, limit, offset int) ([]domain.BankTransfer, error)
	SaveBankTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error
	MarkBankTransferApprovedInTx(ctx context.Context, tx pgx.Tx, bankTransferID string, approval domain.Approval) (bool, error)
}

// VoucherRepositoryFacade persists payment and receipt vouchers with their items.
type VoucherRepositoryFacade interface {
	FindVoucherByID(ctx context.Context, voucherID string) (*domain.PaymentAndReceipt, error)
	// ListVouchers filters on voucherType unless it is empty.
	ListVouchers(ctx context.Context, voucherType domain.VoucherType, limit, offset int) ([]domain.PaymentAndReceipt, error)
	SaveVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.PaymentAndReceipt) error
	MarkVoucherApprovedInTx(ctx context.Context, tx pgx.Tx, voucherID string, approval domain.Approval) (bool, error)
}

// BudgetRepositoryFacade persists budgets and their adjustments.
type BudgetRepositoryFacade interface {
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error)
	BudgetExistsForFinancialYear(ctx context.Context, financialYearID string) (bool, error)
	SaveBudgetInTx(ctx context.Context, tx pgx.Tx, budget domain.Budget) error
	// MarkBudgetApproved also sets is_additional, opening the budget for adjustments.
	MarkBudgetApproved(ctx context.Context, budgetID string, approval domain.Approval) (bool, error)

	FindBudgetAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.BudgetAdjustment, error)
	ListBudgetAdjustments(ctx context.Context, budgetID string, limit, offset int) ([]domain.BudgetAdjustment, error)
	SaveBudgetAdjustmentInTx(ctx context.Context, tx pgx.Tx, adjustment domain.BudgetAdjustment) error
	MarkBudgetAdjustmentApproved(ctx context.Context, adjustmentID string, approval domain.Approval) (bool, error)
}
