package pgsql

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxJournalEntryRepository struct {
	pool *pgxpool.Pool
}

func newPgxJournalEntryRepository(pool *pgxpool.Pool) portsrepo.JournalEntryRepositoryFacade {
	return &PgxJournalEntryRepository{pool: pool}
}

var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

const journalEntrySelect = `
	SELECT journal_entry_id, number, entry_date, description, total_amount, status,
	       is_approved, approved_at, approved_by,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM journal_entries
`

func scanJournalEntry(row rowScanner) (domain.JournalEntry, error) {
	var je domain.JournalEntry
	var approval approvalColumns
	dest := []any{&je.JournalEntryID, &je.Number, &je.Date, &je.Description, &je.TotalAmount, &je.Status}
	dest = append(dest, approval.targets()...)
	dest = append(dest, &je.CreatedAt, &je.CreatedBy, &je.LastUpdatedAt, &je.LastUpdatedBy)
	if err := row.Scan(dest...); err != nil {
		return domain.JournalEntry{}, err
	}
	je.Approval = approval.toDomain()
	return je, nil
}

// SaveJournalEntryInTx inserts the header and its items in position order.
func (r *PgxJournalEntryRepository) SaveJournalEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO journal_entries (journal_entry_id, number, entry_date, description, total_amount, status,
		                             created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		entry.JournalEntryID,
		entry.Number,
		entry.Date,
		entry.Description,
		entry.TotalAmount,
		entry.Status,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	for i, item := range entry.Items {
		batch.Queue(`
			INSERT INTO journal_entry_items (item_id, journal_entry_id, position, credit_account_id, debit_account_id, amount)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			item.ItemID, entry.JournalEntryID, i+1, item.CreditAccountID, item.DebitAccountID, item.Amount,
		)
	}
	return execBatch(ctx, tx, batch, "save journal entry "+entry.Number)
}

// FindJournalEntryByID retrieves the entry with its items.
func (r *PgxJournalEntryRepository) FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	je, err := scanJournalEntry(r.pool.QueryRow(ctx, journalEntrySelect+` WHERE journal_entry_id = $1;`, journalEntryID))
	if err != nil {
		return nil, notFoundOr(err, "journal entry "+journalEntryID, "find journal entry")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT item_id, journal_entry_id, credit_account_id, debit_account_id, amount
		FROM journal_entry_items
		WHERE journal_entry_id = $1
		ORDER BY position;`, journalEntryID)
	if err != nil {
		return nil, translateError(err, "query journal entry items")
	}
	defer rows.Close()

	je.Items = []domain.JournalEntryItem{}
	for rows.Next() {
		var item domain.JournalEntryItem
		if err := rows.Scan(&item.ItemID, &item.JournalEntryID, &item.CreditAccountID, &item.DebitAccountID, &item.Amount); err != nil {
			return nil, translateError(err, "scan journal entry item")
		}
		je.Items = append(je.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate journal entry items")
	}
	return &je, nil
}

// ListJournalEntries returns headers only, newest first.
func (r *PgxJournalEntryRepository) ListJournalEntries(ctx context.Context, limit, offset int) ([]domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, journalEntrySelect+` ORDER BY created_at DESC, journal_entry_id DESC LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, translateError(err, "list journal entries")
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		je, err := scanJournalEntry(rows)
		if err != nil {
			return nil, translateError(err, "scan journal entry")
		}
		entries = append(entries, je)
	}
	return entries, translateError(rows.Err(), "iterate journal entries")
}

func (r *PgxJournalEntryRepository) MarkJournalEntryApprovedInTx(ctx context.Context, tx pgx.Tx, journalEntryID string, approval domain.Approval) (bool, error) {
	return markApproved(ctx, tx, "journal_entries", "journal_entry_id", journalEntryID, approval, "")
}
