package pgsql

import (
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every Postgres repository over one pool. Attachments live outside
// the database and are passed in.
func NewRepositoryProvider(dbPool *pgxpool.Pool, attachments portsrepo.AttachmentStore) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TxManager:          &BaseRepository{Pool: dbPool},
		AccountRepo:        accountRepo,
		ClassificationRepo: newPgxClassificationRepository(dbPool),
		LedgerRepo:         newPgxLedgerRepository(dbPool),
		SequenceRepo:       newPgxSequenceRepository(),
		JournalEntryRepo:   newPgxJournalEntryRepository(dbPool),
		BankTransferRepo:   newPgxBankTransferRepository(dbPool),
		VoucherRepo:        newPgxVoucherRepository(dbPool),
		BudgetRepo:         newPgxBudgetRepository(dbPool),
		ReportingRepo:      newReportingRepository(dbPool),
		AttachmentStore:    attachments,
	}
}
