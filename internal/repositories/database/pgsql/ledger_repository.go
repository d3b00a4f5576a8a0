package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxLedgerRepository reads and appends ledger rows. Rows are never updated or deleted.
type PgxLedgerRepository struct {
	pool *pgxpool.Pool
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{pool: pool}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const transactionSelect = `
	SELECT transaction_id, account_id, document_id, amount, nature, transaction_type, record,
	       transaction_date, created_at, created_by
	FROM ledger_transactions
`

func scanTransaction(row rowScanner) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.AccountID,
		&t.DocumentID,
		&t.Amount,
		&t.Nature,
		&t.Type,
		&t.Record,
		&t.Date,
		&t.CreatedAt,
		&t.CreatedBy,
	)
	return t, err
}

// InsertTransactionsInTx appends the rows of one posting using the caller's transaction.
func (r *PgxLedgerRepository) InsertTransactionsInTx(ctx context.Context, tx pgx.Tx, transactions []domain.Transaction) error {
	batch := &pgx.Batch{}
	for _, t := range transactions {
		batch.Queue(`
			INSERT INTO ledger_transactions (transaction_id, account_id, document_id, amount, nature, transaction_type,
			                                 record, transaction_date, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
			t.TransactionID,
			t.AccountID,
			t.DocumentID,
			t.Amount,
			t.Nature,
			t.Type,
			t.Record,
			t.Date,
			t.CreatedAt,
			t.CreatedBy,
		)
	}
	return execBatch(ctx, tx, batch, "insert ledger transactions")
}

// ListTransactionsByAccountID retrieves a page of an account's ledger using token-based pagination.
// It returns the transactions, a token for the next page, and an error.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	limit = pagination.ClampLimit(limit)
	// One extra row tells whether a next page exists.
	fetchLimit := limit + 1

	orderBy := ` ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC`

	var rows pgx.Rows
	var err error
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		rows, err = r.pool.Query(ctx,
			transactionSelect+` WHERE account_id = $1 AND (transaction_date, created_at, transaction_id) < ($2, $3, $4)`+orderBy+` LIMIT $5;`,
			accountID, cursor.Date, cursor.CreatedAt, cursor.TransactionID, fetchLimit)
	} else {
		rows, err = r.pool.Query(ctx, transactionSelect+` WHERE account_id = $1`+orderBy+` LIMIT $2;`, accountID, fetchLimit)
	}
	if err != nil {
		return nil, nil, translateError(err, "query transactions for account "+accountID)
	}
	defer rows.Close()

	transactions := make([]domain.Transaction, 0, fetchLimit)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, translateError(err, "scan transaction row for account "+accountID)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, translateError(err, "iterate transactions for account "+accountID)
	}

	var newNextToken *string
	if len(transactions) > limit {
		last := transactions[limit-1]
		token := pagination.EncodeToken(pagination.LedgerCursor{
			Date:          last.Date,
			CreatedAt:     last.CreatedAt,
			TransactionID: last.TransactionID,
		})
		newNextToken = &token
		transactions = transactions[:limit]
	}
	return transactions, newNextToken, nil
}

// FindTransactionsByDocumentID returns the rows one document posted, in account order.
func (r *PgxLedgerRepository) FindTransactionsByDocumentID(ctx context.Context, documentID string) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, transactionSelect+` WHERE document_id = $1 ORDER BY account_id;`, documentID)
	if err != nil {
		return nil, translateError(err, "query transactions for document "+documentID)
	}
	defer rows.Close()

	transactions := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, translateError(err, "scan transaction row for document "+documentID)
		}
		transactions = append(transactions, t)
	}
	return transactions, translateError(rows.Err(), "iterate transactions for document "+documentID)
}
