package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if tx == nil {
		return nil
	}
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

// constraintMessages turns unique constraint names into caller-facing conflict messages.
var constraintMessages = map[string]string{
	"uq_accounts_code_key":           "account code is already in use",
	"uq_accounts_name_key":           "account name is already in use",
	"uq_account_bank_details_number": "bank account number is already registered",
	"uq_bank_transfers_reference":    "bank transfer reference is already in use",
	"uq_budgets_financial_year":      "financial year already has a budget",
	"uq_budget_items_account":        "account appears in more than one budget item",
	"uq_journal_entries_number":      "journal entry number is already in use",
	"uq_bank_transfers_number":       "bank transfer number is already in use",
	"uq_payment_receipts_number":     "voucher number is already in use",
	"uq_budgets_number":              "budget number is already in use",
	"uq_budget_adjustments_number":   "budget adjustment number is already in use",
}

// translateError maps store errors onto the application error kinds.
func translateError(err error, action string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "22P02": // invalid_text_representation, e.g. a malformed uuid
			return fmt.Errorf("%w: malformed identifier in %s", apperrors.ErrValidation, action)
		case "23505": // unique_violation
			msg, ok := constraintMessages[pgErr.ConstraintName]
			if !ok {
				msg = fmt.Sprintf("record already exists (%s)", pgErr.ConstraintName)
			}
			return apperrors.NewConflictError(msg)
		case "23503": // foreign_key_violation
			return apperrors.NewNotFoundError(fmt.Sprintf("referenced record does not exist (%s)", pgErr.ConstraintName))
		case "23514": // check_violation
			if pgErr.ConstraintName == "ck_accounts_balance_non_negative" {
				return fmt.Errorf("%w: %s", domain.ErrInsufficientBalance, action)
			}
			return fmt.Errorf("%w: %s violates %s", apperrors.ErrValidation, action, pgErr.ConstraintName)
		}
	}
	return apperrors.NewAppError(500, "failed to "+action, err)
}

// notFoundOr reports pgx.ErrNoRows as a not-found error for what.
func notFoundOr(err error, what, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(what)
	}
	return translateError(err, action)
}

// approvalColumns scans the nullable approval columns shared by every document table.
type approvalColumns struct {
	isApproved bool
	approvedAt *time.Time
	approvedBy *string
}

func (a approvalColumns) toDomain() domain.Approval {
	approval := domain.Approval{IsApproved: a.isApproved, ApprovedAt: a.approvedAt}
	if a.approvedBy != nil {
		approval.ApprovedBy = *a.approvedBy
	}
	return approval
}

func (a *approvalColumns) targets() []any {
	return []any{&a.isApproved, &a.approvedAt, &a.approvedBy}
}

// markApproved flips one PENDING row of table to APPROVED. extraSet is appended to the SET list.
func markApproved(ctx context.Context, q querier, table, idColumn, id string, approval domain.Approval, extraSet string) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET status = 'APPROVED', is_approved = TRUE, approved_at = $2, approved_by = $3,
		    last_updated_at = NOW(), last_updated_by = $3%s
		WHERE %s = $1 AND status = 'PENDING';
	`, table, extraSet, idColumn)

	cmdTag, err := q.Exec(ctx, query, id, approval.ApprovedAt, approval.ApprovedBy)
	if err != nil {
		return false, translateError(err, "approve "+table+" "+id)
	}
	return cmdTag.RowsAffected() == 1, nil
}

// execBatch runs every queued statement and reports the first failure.
func execBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, action string) error {
	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = translateError(err, action)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = translateError(err, action)
	}
	return batchErr
}
