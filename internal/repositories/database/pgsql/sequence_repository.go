package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

// PgxSequenceRepository keeps one counter row per document prefix. The row lock taken by the
// upsert serializes numbering per prefix until the caller's transaction ends.
type PgxSequenceRepository struct{}

func newPgxSequenceRepository() portsrepo.SequenceRepository {
	return &PgxSequenceRepository{}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

func (r *PgxSequenceRepository) NextValueInTx(ctx context.Context, tx pgx.Tx, prefix string) (int64, error) {
	query := `
		INSERT INTO document_sequences (prefix, last_value)
		VALUES ($1, 1)
		ON CONFLICT (prefix) DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value;
	`
	var next int64
	if err := tx.QueryRow(ctx, query, prefix).Scan(&next); err != nil {
		return 0, translateError(err, "allocate "+prefix+" number")
	}
	return next, nil
}
