package pgsql

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// accountSelect joins type from the group, nature and cash/bank flag from the class, the optional
// bank record and the opening balance of the open financial year.
const accountSelect = `
	SELECT a.account_id, a.code, a.name, a.group_id, a.class_id, g.account_type, c.nature, c.is_cash_or_bank,
	       a.is_editable, a.balance, COALESCE(ab.opening_balance, 0),
	       bd.bank_name, bd.branch_name, bd.account_number, bd.iban, bd.swift_code,
	       a.created_at, a.created_by, a.last_updated_at, a.last_updated_by
	FROM accounts a
	JOIN account_groups g ON g.group_id = a.group_id
	JOIN account_classes c ON c.class_id = a.class_id
	LEFT JOIN account_bank_details bd ON bd.account_id = a.account_id
	LEFT JOIN financial_years fy ON fy.is_closed = FALSE
	LEFT JOIN account_balances ab ON ab.account_id = a.account_id AND ab.financial_year_id = fy.financial_year_id
`

func scanAccount(row rowScanner) (domain.Account, error) {
	var acc domain.Account
	var bankName, branchName, accountNumber, iban, swift *string
	err := row.Scan(
		&acc.AccountID,
		&acc.Code,
		&acc.Name,
		&acc.GroupID,
		&acc.ClassID,
		&acc.Type,
		&acc.Nature,
		&acc.IsCashOrBank,
		&acc.IsEditable,
		&acc.Balance,
		&acc.OpeningBalance,
		&bankName,
		&branchName,
		&accountNumber,
		&iban,
		&swift,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	if accountNumber != nil {
		acc.Bank = &domain.BankDetails{
			AccountID:     acc.AccountID,
			BankName:      deref(bankName),
			BranchName:    deref(branchName),
			AccountNumber: *accountNumber,
			IBAN:          deref(iban),
			SwiftCode:     deref(swift),
		}
	}
	return acc, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func collectAccounts(rows pgx.Rows, action string) (map[string]domain.Account, error) {
	defer rows.Close()
	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, translateError(err, action)
		}
		accountsMap[acc.AccountID] = acc
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, action)
	}
	return accountsMap, nil
}

// SaveAccount inserts the account, its bank record and its opening-balance snapshot in one transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account, snapshot domain.AccountBalanceSnapshot) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO accounts (account_id, code, name, code_key, name_key, group_id, class_id, is_editable, balance,
		                      created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		account.AccountID,
		account.Code,
		account.Name,
		domain.NormalizeKey(account.Code),
		domain.NormalizeKey(account.Name),
		account.GroupID,
		account.ClassID,
		account.IsEditable,
		account.Balance,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if account.Bank != nil {
		batch.Queue(`
			INSERT INTO account_bank_details (account_id, bank_name, branch_name, account_number, iban, swift_code)
			VALUES ($1, $2, $3, $4, $5, $6);`,
			account.AccountID,
			account.Bank.BankName,
			account.Bank.BranchName,
			account.Bank.AccountNumber,
			nullIfEmpty(account.Bank.IBAN),
			nullIfEmpty(account.Bank.SwiftCode),
		)
	}
	batch.Queue(`
		INSERT INTO account_balances (account_id, financial_year_id, opening_balance)
		VALUES ($1, $2, $3);`,
		snapshot.AccountID, snapshot.FinancialYearID, snapshot.OpeningBalance,
	)

	if err = execBatch(ctx, tx, batch, "save account "+account.Code); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, err := scanAccount(r.Pool.QueryRow(ctx, accountSelect+` WHERE a.account_id = $1;`, accountID))
	if err != nil {
		return nil, notFoundOr(err, "account "+accountID, "find account "+accountID)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
// The caller (service) should check if all needed accounts were retrieved.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	rows, err := r.Pool.Query(ctx, accountSelect+` WHERE a.account_id = ANY($1);`, accountIDs)
	if err != nil {
		return nil, translateError(err, "query accounts by IDs")
	}
	return collectAccounts(rows, "scan accounts")
}

// ListAccounts retrieves a page of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, accountSelect+` ORDER BY a.code LIMIT $1 OFFSET $2;`, limit, offset)
	if err != nil {
		return nil, translateError(err, "list accounts")
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, translateError(err, "scan account row")
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "iterate account rows")
	}
	return accounts, nil
}

func (r *PgxAccountRepository) FindNaturalKeyClashes(ctx context.Context, codeKey, nameKey, excludeAccountID string) (bool, bool, error) {
	query := `
		SELECT
			EXISTS (SELECT 1 FROM accounts WHERE code_key = $1 AND account_id::text <> $3),
			EXISTS (SELECT 1 FROM accounts WHERE name_key = $2 AND account_id::text <> $3);
	`
	var codeTaken, nameTaken bool
	if err := r.Pool.QueryRow(ctx, query, codeKey, nameKey, excludeAccountID).Scan(&codeTaken, &nameTaken); err != nil {
		return false, false, translateError(err, "check account natural keys")
	}
	return codeTaken, nameTaken, nil
}

func (r *PgxAccountRepository) BankAccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM account_bank_details WHERE account_number = $1);`, accountNumber).Scan(&exists)
	if err != nil {
		return false, translateError(err, "check bank account number")
	}
	return exists, nil
}

// FindAccountsByIDsForUpdate retrieves multiple accounts by IDs and locks the rows for update.
// Rows are locked in id order so concurrent postings over overlapping accounts cannot deadlock.
// Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	rows, err := tx.Query(ctx, accountSelect+` WHERE a.account_id = ANY($1) ORDER BY a.account_id FOR UPDATE OF a;`, accountIDs)
	if err != nil {
		return nil, translateError(err, "lock accounts")
	}
	accountsMap, err := collectAccounts(rows, "scan locked accounts")
	if err != nil {
		return nil, err
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %s",
			apperrors.ErrNotFound, strings.Join(missing, ", "))
	}
	return accountsMap, nil
}

// UpdateAccountBalancesInTx updates balances for multiple accounts within a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for _, accountID := range accounting.SortedAccountIDs(balanceChanges) {
		delta := balanceChanges[accountID]
		if delta.IsZero() {
			continue
		}
		batch.Queue(query, accountID, delta, now, userID)
		accountIDs = append(accountIDs, accountID)
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = translateError(err, "update balance of account "+accountIDs[i])
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = translateError(err, "close balance update batch")
	}
	return batchErr
}

// RebaseOpeningBalanceInTx writes the renamed/rebased account row and upserts the opening-balance snapshot.
func (r *PgxAccountRepository) RebaseOpeningBalanceInTx(ctx context.Context, tx pgx.Tx, account domain.Account, financialYearID string) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		UPDATE accounts
		SET name = $2, name_key = $3, balance = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;`,
		account.AccountID,
		account.Name,
		domain.NormalizeKey(account.Name),
		account.Balance,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	batch.Queue(`
		INSERT INTO account_balances (account_id, financial_year_id, opening_balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, financial_year_id) DO UPDATE SET opening_balance = EXCLUDED.opening_balance;`,
		account.AccountID, financialYearID, account.OpeningBalance,
	)
	return execBatch(ctx, tx, batch, "update account "+account.AccountID)
}
