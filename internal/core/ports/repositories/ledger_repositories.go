package repositories

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerWriter appends immutable transaction rows. There is no update or delete.
type LedgerWriter interface {
	InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error
}

// LedgerReader reads transaction rows.
type LedgerReader interface {
	// ListTransactionsByAccountID returns a page of an account's ledger, newest first, and the token of the next page.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindTransactionsByDocumentID returns every row posted by one document.
	FindTransactionsByDocumentID(ctx context.Context, documentID string) ([]domain.Transaction, error)
}

// LedgerRepositoryFacade combines ledger reads and writes.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// SequenceRepository hands out per-prefix document numbers.
type SequenceRepository interface {
	// NextValueInTx increments and returns the counter for prefix. The increment is rolled back with tx.
	NextValueInTx(ctx context.Context, tx pgx.Tx, prefix string) (int64, error)
}
