package services

import (
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Every document service shares one engine so numbering, clock and ids are consistent.
	engine := NewPostingEngine(
		repos.TxManager,
		repos.AccountRepo,
		repos.LedgerRepo,
		repos.SequenceRepo,
		WithNumberWidth(cfg.DocumentNumberWidth),
	)

	return &portssvc.ServiceContainer{
		Account:      NewAccountService(repos.AccountRepo, repos.ClassificationRepo, repos.LedgerRepo, repos.ReportingRepo, engine),
		JournalEntry: NewJournalEntryService(repos.JournalEntryRepo, repos.AccountRepo, engine),
		BankTransfer: NewBankTransferService(repos.BankTransferRepo, repos.AccountRepo, engine),
		Voucher:      NewVoucherService(repos.VoucherRepo, repos.AccountRepo, repos.AttachmentStore, engine),
		Budget:       NewBudgetService(repos.BudgetRepo, repos.AccountRepo, repos.ClassificationRepo, engine),
	}
}
