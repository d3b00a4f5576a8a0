package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
// Returned accounts carry the opening balance of the open financial year, if any.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing IDs are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// FindNaturalKeyClashes reports whether the normalized code or name is already used by another account.
	FindNaturalKeyClashes(ctx context.Context, codeKey, nameKey, excludeAccountID string) (codeTaken bool, nameTaken bool, err error)

	// BankAccountNumberExists reports whether a bank sub-record already uses accountNumber.
	BankAccountNumberExists(ctx context.Context, accountNumber string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account with its optional bank details and opening-balance snapshot atomically.
	SaveAccount(ctx context.Context, account domain.Account, snapshot domain.AccountBalanceSnapshot) error
}

// AccountTransactionSupport defines operations that run inside a caller-owned transaction.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them, in id order, for the rest of the transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx adds the signed changes to the stored balances.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error

	// RebaseOpeningBalanceInTx stores a new name, balance and opening balance for the given financial year.
	RebaseOpeningBalanceInTx(ctx context.Context, tx pgx.Tx, account domain.Account, financialYearID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}

// ClassificationReader reads the chart-of-accounts metadata and financial years.
type ClassificationReader interface {
	FindGroupByID(ctx context.Context, groupID string) (*domain.AccountGroup, error)
	FindClassByID(ctx context.Context, classID string) (*domain.AccountClass, error)
	ListGroups(ctx context.Context) ([]domain.AccountGroup, error)
	ListClasses(ctx context.Context) ([]domain.AccountClass, error)

	// FindOpenFinancialYear returns the single non-closed financial year, or ErrNotFound.
	FindOpenFinancialYear(ctx context.Context) (*domain.FinancialYear, error)
	FindFinancialYearByID(ctx context.Context, financialYearID string) (*domain.FinancialYear, error)
}
