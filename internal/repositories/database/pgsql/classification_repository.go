package pgsql

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClassificationRepository struct {
	pool *pgxpool.Pool
}

func newPgxClassificationRepository(pool *pgxpool.Pool) portsrepo.ClassificationReader {
	return &PgxClassificationRepository{pool: pool}
}

var _ portsrepo.ClassificationReader = (*PgxClassificationRepository)(nil)

const (
	groupSelect         = `SELECT group_id, code, name, account_type, mode FROM account_groups`
	classSelect         = `SELECT class_id, code, name, account_type, nature, duration, is_cash_or_bank FROM account_classes`
	financialYearSelect = `SELECT financial_year_id, name, start_date, end_date, is_closed FROM financial_years`
)

func scanGroup(row rowScanner) (domain.AccountGroup, error) {
	var g domain.AccountGroup
	err := row.Scan(&g.GroupID, &g.Code, &g.Name, &g.Type, &g.Mode)
	return g, err
}

func scanClass(row rowScanner) (domain.AccountClass, error) {
	var c domain.AccountClass
	err := row.Scan(&c.ClassID, &c.Code, &c.Name, &c.Type, &c.Nature, &c.Duration, &c.IsCashOrBank)
	return c, err
}

func scanFinancialYear(row rowScanner) (domain.FinancialYear, error) {
	var fy domain.FinancialYear
	err := row.Scan(&fy.FinancialYearID, &fy.Name, &fy.StartDate, &fy.EndDate, &fy.IsClosed)
	return fy, err
}

func (r *PgxClassificationRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error) {
	g, err := scanGroup(r.pool.QueryRow(ctx, groupSelect+` WHERE group_id = $1;`, groupID))
	if err != nil {
		return nil, notFoundOr(err, "account group "+groupID, "find account group")
	}
	return &g, nil
}

func (r *PgxClassificationRepository) FindClassByID(ctx context.Context, classID string) (*domain.AccountClass, error) {
	c, err := scanClass(r.pool.QueryRow(ctx, classSelect+` WHERE class_id = $1;`, classID))
	if err != nil {
		return nil, notFoundOr(err, "account class "+classID, "find account class")
	}
	return &c, nil
}

func (r *PgxClassificationRepository) ListGroups(ctx context.Context) ([]domain.AccountGroup, error) {
	rows, err := r.pool.Query(ctx, groupSelect+` ORDER BY code;`)
	if err != nil {
		return nil, translateError(err, "list account groups")
	}
	defer rows.Close()

	groups := []domain.AccountGroup{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, translateError(err, "scan account group")
		}
		groups = append(groups, g)
	}
	return groups, translateError(rows.Err(), "iterate account groups")
}

func (r *PgxClassificationRepository) ListClasses(ctx context.Context) ([]domain.AccountClass, error) {
	rows, err := r.pool.Query(ctx, classSelect+` ORDER BY code;`)
	if err != nil {
		return nil, translateError(err, "list account classes")
	}
	defer rows.Close()

	classes := []domain.AccountClass{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, translateError(err, "scan account class")
		}
		classes = append(classes, c)
	}
	return classes, translateError(rows.Err(), "iterate account classes")
}

func (r *PgxClassificationRepository) FindOpenFinancialYear(ctx context.Context) (*domain.FinancialYear, error) {
	fy, err := scanFinancialYear(r.pool.QueryRow(ctx, financialYearSelect+` WHERE is_closed = FALSE;`))
	if err != nil {
		return nil, notFoundOr(err, "open financial year", "find open financial year")
	}
	return &fy, nil
}

func (r *PgxClassificationRepository) FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error) {
	fy, err := scanFinancialYear(r.pool.QueryRow(ctx, financialYearSelect+` WHERE financial_year_id = $1;`, financialYearID))
	if err != nil {
		return nil, notFoundOr(err, "financial year "+financialYearID, "find financial year")
	}
	return &fy, nil
}
