package pgsql

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxVoucherRepository struct {
	pool *pgxpool.Pool
}

func newPgxVoucherRepository(pool *pgxpool.Pool) portsrepo.VoucherRepositoryFacade {
	return &PgxVoucherRepository{pool: pool}
}

var _ portsrepo.VoucherRepositoryFacade = (*PgxVoucherRepository)(nil)

const voucherSelect = `
	SELECT voucher_id, number, voucher_type, voucher_date, description, main_account_id, total_amount,
	       attachment_path, status, is_approved, approved_at, approved_by,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM payment_receipts
`

func scanVoucher(row rowScanner) (domain.PaymentAndReceipt, error) {
	var v domain.PaymentAndReceipt
	var attachment *string
	var approval approvalColumns
	dest := []any{
		&v.VoucherID, &v.Number, &v.Type, &v.Date, &v.Description, &v.MainAccountID, &v.TotalAmount,
		&attachment, &v.Status,
	}
	dest = append(dest, approval.targets()...)
	dest = append(dest, &v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy)
	if err := row.Scan(dest...); err != nil {
		return domain.PaymentAndReceipt{}, err
	}
	v.AttachmentPath = deref(attachment)
	v.Approval = approval.toDomain()
	return v, nil
}

func (r *PgxVoucherRepository) SaveVoucherInTx(ctx context.Context, tx pgx.Tx, voucher domain.PaymentAndReceipt) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO payment_receipts (voucher_id, number, voucher_type, voucher_date, description, main_account_id,
		                              total_amount, attachment_path, status,
		                              created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		voucher.VoucherID,
		voucher.Number,
		voucher.Type,
		voucher.Date,
		voucher.Description,
		voucher.MainAccountID,
		voucher.TotalAmount,
		nullIfEmpty(voucher.AttachmentPath),
		voucher.Status,
		voucher.CreatedAt,
		voucher.CreatedBy,
		voucher.LastUpdatedAt,
		voucher.LastUpdatedBy,
	)
	for i, item := range voucher.Items {
		batch.Queue(`
			INSERT INTO payment_receipt_items (item_id, voucher_id, position, account_id, amount)
			VALUES ($1, $2, $3, $4, $5);`,
			item.ItemID, voucher.VoucherID, i+1, item.AccountID, item.Amount,
		)
	}
	return execBatch(ctx, tx, batch, "save voucher "+voucher.Number)
}

func (r *PgxVoucherRepository) FindVoucherByID(ctx context.Context, voucherID string) (*domain.PaymentAndReceipt, error) {
	v, err := scanVoucher(r.pool.QueryRow(ctx, voucherSelect+` WHERE voucher_id = $1;`, voucherID))
	if err != nil {
		return nil, notFoundOr(err, "voucher "+voucherID, "find voucher")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT item_id, voucher_id, account_id, amount
		FROM payment_receipt_items
		WHERE voucher_id = $1
		ORDER BY position;`, voucherID)
	if err != nil {
		return nil, translateError(err, "query voucher items")
	}
	defer rows.Close()

	v.Items = []domain.PaymentAndReceiptItem{}
	for rows.Next() {
		var item domain.PaymentAndReceiptItem
		if err := rows.Scan(&item.ItemID, &item.VoucherID, &item.AccountID, &item.Amount); err != nil {
			return nil, translateError(err, "scan voucher item")
		}
		v.Items = append(v.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate voucher items")
	}
	return &v, nil
}

func (r *PgxVoucherRepository) ListVouchers(ctx context.Context, voucherType domain.VoucherType, limit, offset int) ([]domain.PaymentAndReceipt, error) {
	rows, err := r.pool.Query(ctx,
		voucherSelect+` WHERE ($1 = '' OR voucher_type = $1) ORDER BY created_at DESC, voucher_id DESC LIMIT $2 OFFSET $3;`,
		string(voucherType), limit, offset)
	if err != nil {
		return nil, translateError(err, "list vouchers")
	}
	defer rows.Close()

	vouchers := []domain.PaymentAndReceipt{}
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, translateError(err, "scan voucher")
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, translateError(rows.Err(), "iterate vouchers")
}

func (r *PgxVoucherRepository) MarkVoucherApprovedInTx(ctx context.Context, tx pgx.Tx, voucherID string, approval domain.Approval) (bool, error) {
	return markApproved(ctx, tx, "payment_receipts", "voucher_id", voucherID, approval, "")
}
