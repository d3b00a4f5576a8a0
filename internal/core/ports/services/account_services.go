package services

import (
	"context"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a page of accounts.
	ListAccounts(ctx context.Context, params dto.ListParams) ([]domain.Account, error)

	// ListTransactions retrieves one page of an account's ledger.
	ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount validates classification and natural keys, then persists the account with its
	// opening-balance snapshot in the open financial year.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount renames the account and/or re-bases its opening balance.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)
}

// ChartOfAccountsSvc exposes classification metadata and balance aggregation.
type ChartOfAccountsSvc interface {
	ListGroups(ctx context.Context) ([]domain.AccountGroup, error)
	ListClasses(ctx context.Context) ([]domain.AccountClass, error)
	GetCurrentFinancialYear(ctx context.Context) (*domain.FinancialYear, error)
	AggregateBalances(ctx context.Context, groupBy domain.BalanceGrouping) ([]domain.BalanceAggregate, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	ChartOfAccountsSvc
}
