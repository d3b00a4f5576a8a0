package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TxManager          TransactionManager
	AccountRepo        AccountRepositoryWithTx
	ClassificationRepo ClassificationReader
	LedgerRepo         LedgerRepositoryFacade
	SequenceRepo       SequenceRepository
	JournalEntryRepo   JournalEntryRepositoryFacade
	BankTransferRepo   BankTransferRepositoryFacade
	VoucherRepo        VoucherRepositoryFacade
	BudgetRepo         BudgetRepositoryFacade
	ReportingRepo      ReportingRepository
	AttachmentStore    AttachmentStore
}
