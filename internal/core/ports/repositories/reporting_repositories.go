package repositories

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
)

// ReportingRepository aggregates account balances for reporting. Purely derived, never mutates.
type ReportingRepository interface {
	AggregateBalances(ctx context.Context, groupBy domain.BalanceGrouping) ([]domain.BalanceAggregate, error)
}
