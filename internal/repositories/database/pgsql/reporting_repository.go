package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Every query returns key, code, name, type, total balance and account count.
// Groups and classes without accounts are reported with zero totals.
var aggregateQueries = map[domain.BalanceGrouping]string{
	domain.GroupByGroup: `
		SELECT g.group_id::text, g.code, g.name, g.account_type,
		       COALESCE(SUM(a.balance), 0), COUNT(a.account_id)
		FROM account_groups g
		LEFT JOIN accounts a ON a.group_id = g.group_id
		GROUP BY g.group_id, g.code, g.name, g.account_type
		ORDER BY g.code;`,
	domain.GroupByClass: `
		SELECT c.class_id::text, c.code, c.name, c.account_type,
		       COALESCE(SUM(a.balance), 0), COUNT(a.account_id)
		FROM account_classes c
		LEFT JOIN accounts a ON a.class_id = c.class_id
		GROUP BY c.class_id, c.code, c.name, c.account_type
		ORDER BY c.code;`,
	domain.GroupByType: `
		SELECT g.account_type, '', '', g.account_type,
		       COALESCE(SUM(a.balance), 0), COUNT(a.account_id)
		FROM account_groups g
		LEFT JOIN accounts a ON a.group_id = g.group_id
		GROUP BY g.account_type
		ORDER BY g.account_type;`,
}

// AggregateBalances sums current balances per group, class or account type.
func (r *reportingRepository) AggregateBalances(ctx context.Context, groupBy domain.BalanceGrouping) ([]domain.BalanceAggregate, error) {
	query, ok := aggregateQueries[groupBy]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported grouping %q", apperrors.ErrValidation, groupBy)
	}

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err, "aggregate balances by "+string(groupBy))
	}
	defer rows.Close()

	result := []domain.BalanceAggregate{}
	for rows.Next() {
		var row domain.BalanceAggregate
		if err := rows.Scan(&row.Key, &row.Code, &row.Name, &row.Type, &row.TotalBalance, &row.AccountCount); err != nil {
			return nil, translateError(err, "scan balance aggregate")
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate balance aggregates")
	}
	return result, nil
}
