package services

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
)

// JournalEntrySvcFacade drives the journal entry lifecycle.
type JournalEntrySvcFacade interface {
	CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)
	GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)
	ListJournalEntries(ctx context.Context, params dto.ListParams) ([]domain.JournalEntry, error)
	ApproveJournalEntry(ctx context.Context, journalEntryID string, req dto.ApproveRequest, userID string) (*domain.JournalEntry, error)
}

// BankTransferSvcFacade drives the bank transfer lifecycle.
type BankTransferSvcFacade interface {
	CreateBankTransfer(ctx context.Context, req dto.CreateBankTransferRequest, userID string) (*domain.BankTransfer, error)
	GetBankTransferByID(ctx context.Context, bankTransferID string) (*domain.BankTransfer, error)
	ListBankTransfers(ctx context.Context, params dto.ListParams) ([]domain.BankTransfer, error)
	ApproveBankTransfer(ctx context.Context, bankTransferID string, req dto.ApproveRequest, userID string) (*domain.BankTransfer, error)
}

// VoucherSvcFacade drives the payment/receipt voucher lifecycle.
type VoucherSvcFacade interface {
	CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*domain.PaymentAndReceipt, error)
	GetVoucherByID(ctx context.Context, voucherID string) (*domain.PaymentAndReceipt, error)
	ListVouchers(ctx context.Context, params dto.ListVouchersParams) ([]domain.PaymentAndReceipt, error)
	ApproveVoucher(ctx context.Context, voucherID string, req dto.ApproveRequest, userID string) (*domain.PaymentAndReceipt, error)
}

// BudgetSvcFacade drives budgets and their adjustments. Approval never touches account balances.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)
	// GetBudgetByID includes variance figures once the budget is approved.
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, params dto.ListParams) ([]domain.Budget, error)
	ApproveBudget(ctx context.Context, budgetID string, req dto.ApproveRequest, userID string) (*domain.Budget, error)

	CreateBudgetAdjustment(ctx context.Context, req dto.CreateBudgetAdjustmentRequest, userID string) (*domain.BudgetAdjustment, error)
	GetBudgetAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.BudgetAdjustment, error)
	ListBudgetAdjustments(ctx context.Context, budgetID string, params dto.ListParams) ([]domain.BudgetAdjustment, error)
	ApproveBudgetAdjustment(ctx context.Context, adjustmentID string, req dto.ApproveRequest, userID string) (*domain.BudgetAdjustment, error)
}
