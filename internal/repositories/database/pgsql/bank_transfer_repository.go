package pgsql

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxBankTransferRepository struct {
	pool *pgxpool.Pool
}

func newPgxBankTransferRepository(pool *pgxpool.Pool) portsrepo.BankTransferRepositoryFacade {
	return &PgxBankTransferRepository{pool: pool}
}

var _ portsrepo.BankTransferRepositoryFacade = (*PgxBankTransferRepository)(nil)

const bankTransferSelect = `
	SELECT bank_transfer_id, number, reference, transfer_date, description, from_account_id, to_account_id,
	       amount, status, is_approved, approved_at, approved_by,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM bank_transfers
`

func scanBankTransfer(row rowScanner) (domain.BankTransfer, error) {
	var bt domain.BankTransfer
	var approval approvalColumns
	dest := []any{
		&bt.BankTransferID, &bt.Number, &bt.Reference, &bt.Date, &bt.Description,
		&bt.FromAccountID, &bt.ToAccountID, &bt.Amount, &bt.Status,
	}
	dest = append(dest, approval.targets()...)
	dest = append(dest, &bt.CreatedAt, &bt.CreatedBy, &bt.LastUpdatedAt, &bt.LastUpdatedBy)
	if err := row.Scan(dest...); err != nil {
		return domain.BankTransfer{}, err
	}
	bt.Approval = approval.toDomain()
	return bt, nil
}

func (r *PgxBankTransferRepository) SaveBankTransferInTx(ctx context.Context, tx pgx.Tx, transfer domain.BankTransfer) error {
	query := `
		INSERT INTO bank_transfers (bank_transfer_id, number, reference, transfer_date, description,
		                            from_account_id, to_account_id, amount, status,
		                            created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		transfer.BankTransferID,
		transfer.Number,
		transfer.Reference,
		transfer.Date,
		transfer.Description,
		transfer.FromAccountID,
		transfer.ToAccountID,
		transfer.Amount,
		transfer.Status,
		transfer.CreatedAt,
		transfer.CreatedBy,
		transfer.LastUpdatedAt,
		transfer.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "save bank transfer "+transfer.Number)
	}
	return nil
}

func (r *PgxBankTransferRepository) FindBankTransferByID(ctx context.Context, bankTransferID string) (*domain.BankTransfer, error) {
	bt, err := scanBankTransfer(r.pool.QueryRow(ctx, bankTransferSelect+` WHERE bank_transfer_id = $1;`, bankTransferID))
	if err != nil {
		return nil, notFoundOr(err, "bank transfer "+bankTransferID, "find bank transfer")
	}
	return &bt, nil
}

func (r *PgxBankTransferRepository) ListBankTransfers(ctx context.Context, limit, offset int) ([]domain.BankTransfer, error) {
	rows, err := r.pool.Query(ctx, bankTransferSelect+` ORDER BY created_at DESC, bank_transfer_id DESC LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, translateError(err, "list bank transfers")
	}
	defer rows.Close()

	transfers := []domain.BankTransfer{}
	for rows.Next() {
		bt, err := scanBankTransfer(rows)
		if err != nil {
			return nil, translateError(err, "scan bank transfer")
		}
		transfers = append(transfers, bt)
	}
	return transfers, translateError(rows.Err(), "iterate bank transfers")
}

func (r *PgxBankTransferRepository) MarkBankTransferApprovedInTx(ctx context.Context, tx pgx.Tx, bankTransferID string, approval domain.Approval) (bool, error) {
	return markApproved(ctx, tx, "bank_transfers", "bank_transfer_id", bankTransferID, approval, "")
}
