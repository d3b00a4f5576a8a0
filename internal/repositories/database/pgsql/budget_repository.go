package pgsql

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBudgetRepository persists budgets and budget adjustments.
// Approval of either is a single statement and needs no caller transaction.
type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

const budgetSelect = `
	SELECT budget_id, number, financial_year_id, description, total_income_amount, total_expense_amount,
	       status, is_additional, is_approved, approved_at, approved_by,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM budgets
`

const budgetAdjustmentSelect = `
	SELECT adjustment_id, number, budget_id, description, status, is_approved, approved_at, approved_by,
	       created_at, created_by, last_updated_at, last_updated_by
	FROM budget_adjustments
`

func scanBudget(row rowScanner) (domain.Budget, error) {
	var b domain.Budget
	var approval approvalColumns
	dest := []any{
		&b.BudgetID, &b.Number, &b.FinancialYearID, &b.Description, &b.TotalIncomeAmount, &b.TotalExpenseAmount,
		&b.Status, &b.IsAdditional,
	}
	dest = append(dest, approval.targets()...)
	dest = append(dest, &b.CreatedAt, &b.CreatedBy, &b.LastUpdatedAt, &b.LastUpdatedBy)
	if err := row.Scan(dest...); err != nil {
		return domain.Budget{}, err
	}
	b.Approval = approval.toDomain()
	return b, nil
}

func scanBudgetAdjustment(row rowScanner) (domain.BudgetAdjustment, error) {
	var a domain.BudgetAdjustment
	var approval approvalColumns
	dest := []any{&a.AdjustmentID, &a.Number, &a.BudgetID, &a.Description, &a.Status}
	dest = append(dest, approval.targets()...)
	dest = append(dest, &a.CreatedAt, &a.CreatedBy, &a.LastUpdatedAt, &a.LastUpdatedBy)
	if err := row.Scan(dest...); err != nil {
		return domain.BudgetAdjustment{}, err
	}
	a.Approval = approval.toDomain()
	return a, nil
}

func (r *PgxBudgetRepository) SaveBudgetInTx(ctx context.Context, tx pgx.Tx, budget domain.Budget) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO budgets (budget_id, number, financial_year_id, description, total_income_amount,
		                     total_expense_amount, status, is_additional,
		                     created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);`,
		budget.BudgetID,
		budget.Number,
		budget.FinancialYearID,
		budget.Description,
		budget.TotalIncomeAmount,
		budget.TotalExpenseAmount,
		budget.Status,
		budget.IsAdditional,
		budget.CreatedAt,
		budget.CreatedBy,
		budget.LastUpdatedAt,
		budget.LastUpdatedBy,
	)
	for i, item := range budget.Items {
		batch.Queue(`
			INSERT INTO budget_items (item_id, budget_id, position, account_id, item_type, planned_amount)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			item.ItemID, budget.BudgetID, i+1, item.AccountID, item.Type, item.PlannedAmount,
		)
	}
	return execBatch(ctx, tx, batch, "save budget "+budget.Number)
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	b, err := scanBudget(r.pool.QueryRow(ctx, budgetSelect+` WHERE budget_id = $1;`, budgetID))
	if err != nil {
		return nil, notFoundOr(err, "budget "+budgetID, "find budget")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT item_id, budget_id, account_id, planned_amount, item_type
		FROM budget_items
		WHERE budget_id = $1
		ORDER BY position;`, budgetID)
	if err != nil {
		return nil, translateError(err, "query budget items")
	}
	defer rows.Close()

	b.Items = []domain.BudgetItem{}
	for rows.Next() {
		var item domain.BudgetItem
		if err := rows.Scan(&item.ItemID, &item.BudgetID, &item.AccountID, &item.PlannedAmount, &item.Type); err != nil {
			return nil, translateError(err, "scan budget item")
		}
		b.Items = append(b.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate budget items")
	}
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error) {
	rows, err := r.pool.Query(ctx, budgetSelect+` ORDER BY created_at DESC, budget_id DESC LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, translateError(err, "list budgets")
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, translateError(err, "scan budget")
		}
		budgets = append(budgets, b)
	}
	return budgets, translateError(rows.Err(), "iterate budgets")
}

func (r *PgxBudgetRepository) BudgetExistsForFinancialYear(ctx context.Context, financialYearID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM budgets WHERE financial_year_id = $1);`, financialYearID).Scan(&exists)
	if err != nil {
		return false, translateError(err, "check budget for financial year")
	}
	return exists, nil
}

func (r *PgxBudgetRepository) MarkBudgetApproved(ctx context.Context, budgetID string, approval domain.Approval) (bool, error) {
	return markApproved(ctx, r.pool, "budgets", "budget_id", budgetID, approval, ", is_additional = TRUE")
}

func (r *PgxBudgetRepository) SaveBudgetAdjustmentInTx(ctx context.Context, tx pgx.Tx, adjustment domain.BudgetAdjustment) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO budget_adjustments (adjustment_id, number, budget_id, description, status,
		                                created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		adjustment.AdjustmentID,
		adjustment.Number,
		adjustment.BudgetID,
		adjustment.Description,
		adjustment.Status,
		adjustment.CreatedAt,
		adjustment.CreatedBy,
		adjustment.LastUpdatedAt,
		adjustment.LastUpdatedBy,
	)
	for i, item := range adjustment.Items {
		batch.Queue(`
			INSERT INTO budget_adjustment_items (item_id, adjustment_id, position, budget_item_id, account_id,
			                                     previous_amount, current_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			item.ItemID, adjustment.AdjustmentID, i+1, item.BudgetItemID, item.AccountID,
			item.PreviousAmount, item.CurrentAmount,
		)
	}
	return execBatch(ctx, tx, batch, "save budget adjustment "+adjustment.Number)
}

func (r *PgxBudgetRepository) FindBudgetAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.BudgetAdjustment, error) {
	a, err := scanBudgetAdjustment(r.pool.QueryRow(ctx, budgetAdjustmentSelect+` WHERE adjustment_id = $1;`, adjustmentID))
	if err != nil {
		return nil, notFoundOr(err, "budget adjustment "+adjustmentID, "find budget adjustment")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT item_id, adjustment_id, budget_item_id, account_id, previous_amount, current_amount
		FROM budget_adjustment_items
		WHERE adjustment_id = $1
		ORDER BY position;`, adjustmentID)
	if err != nil {
		return nil, translateError(err, "query budget adjustment items")
	}
	defer rows.Close()

	a.Items = []domain.BudgetAdjustmentItem{}
	for rows.Next() {
		var item domain.BudgetAdjustmentItem
		if err := rows.Scan(&item.ItemID, &item.AdjustmentID, &item.BudgetItemID, &item.AccountID,
			&item.PreviousAmount, &item.CurrentAmount); err != nil {
			return nil, translateError(err, "scan budget adjustment item")
		}
		a.Items = append(a.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate budget adjustment items")
	}
	return &a, nil
}

// ListBudgetAdjustments lists headers, restricted to one budget unless budgetID is empty.
func (r *PgxBudgetRepository) ListBudgetAdjustments(ctx context.Context, budgetID string, limit, offset int) ([]domain.BudgetAdjustment, error) {
	rows, err := r.pool.Query(ctx,
		budgetAdjustmentSelect+` WHERE ($1 = '' OR budget_id::text = $1) ORDER BY created_at DESC, adjustment_id DESC LIMIT $2 OFFSET $3;`,
		budgetID, limit, offset)
	if err != nil {
		return nil, translateError(err, "list budget adjustments")
	}
	defer rows.Close()

	adjustments := []domain.BudgetAdjustment{}
	for rows.Next() {
		a, err := scanBudgetAdjustment(rows)
		if err != nil {
			return nil, translateError(err, "scan budget adjustment")
		}
		adjustments = append(adjustments, a)
	}
	return adjustments, translateError(rows.Err(), "iterate budget adjustments")
}

func (r *PgxBudgetRepository) MarkBudgetAdjustmentApproved(ctx context.Context, adjustmentID string, approval domain.Approval) (bool, error) {
	return markApproved(ctx, r.pool, "budget_adjustments", "adjustment_id", adjustmentID, approval, "")
}
