package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultNumberWidth = 4

// PostingEngine is the shared create/approve pipeline of every document kind. It is the
// only writer of account balances and ledger rows.
type PostingEngine struct {
	BaseService
	txManager    portsrepo.TransactionManager
	accountRepo  portsrepo.AccountRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	sequenceRepo portsrepo.SequenceRepository
	numberWidth  int
	now          func() time.Time
	newID        func() string
}

// EngineOption is a functional option for configuring the posting engine
type EngineOption func(*PostingEngine)

// WithNumberWidth sets the zero-padded width of document numbers.
func WithNumberWidth(width int) EngineOption {
	return func(e *PostingEngine) {
		if width > 0 {
			e.numberWidth = width
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EngineOption {
	return func(e *PostingEngine) {
		e.now = now
	}
}

// WithIDGenerator replaces uuid.NewString.
func WithIDGenerator(newID func() string) EngineOption {
	return func(e *PostingEngine) {
		e.newID = newID
	}
}

// NewPostingEngine creates the engine over the given repositories.
func NewPostingEngine(
	txManager portsrepo.TransactionManager,
	accountRepo portsrepo.AccountRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepository,
	options ...EngineOption,
) *PostingEngine {
	e := &PostingEngine{
		txManager:    txManager,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		sequenceRepo: sequenceRepo,
		numberWidth:  defaultNumberWidth,
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// NewID returns a fresh identifier.
func (e *PostingEngine) NewID() string { return e.newID() }

// Now returns the engine clock's current time.
func (e *PostingEngine) Now() time.Time { return e.now() }

// PostedTransactions returns the ledger rows written when the document was approved.
func (e *PostingEngine) PostedTransactions(ctx context.Context, documentID string) ([]domain.Transaction, error) {
	txns, err := e.ledgerRepo.FindTransactionsByDocumentID(ctx, documentID)
	if err != nil {
		e.LogError(ctx, err, "Failed to load posted transactions", slog.String("document_id", documentID))
		return nil, err
	}
	return txns, nil
}

// ValidatePosting resolves the document's accounts and checks the kind-specific rules and that
// no balance would drop below zero if the document were approved now. Nothing is locked or written.
func (e *PostingEngine) ValidatePosting(ctx context.Context, doc domain.Postable) (map[string]domain.Account, error) {
	accounts, err := e.accountRepo.FindAccountsByIDs(ctx, doc.AccountIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	if err := doc.ValidateAccounts(accounts); err != nil {
		return nil, err
	}
	changes, err := accounting.NetChanges(doc.PostingLegs(), accounts)
	if err != nil {
		return nil, err
	}
	if err := accounting.CheckSufficientBalances(changes, accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// CreateNumbered allocates the next number of kind and runs save in the same transaction,
// so a failed save never burns a number.
func (e *PostingEngine) CreateNumbered(ctx context.Context, kind domain.DocumentKind, save func(ctx context.Context, tx pgx.Tx, number string) error) (number string, err error) {
	tx, err := e.txManager.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			e.rollback(ctx, tx)
		}
	}()

	seq, err := e.sequenceRepo.NextValueInTx(ctx, tx, kind.NumberPrefix())
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s number: %w", kind, err)
	}
	number = domain.FormatDocumentNumber(kind.NumberPrefix(), seq, e.numberWidth)

	if err = save(ctx, tx, number); err != nil {
		return "", err
	}
	if err = e.txManager.Commit(ctx, tx); err != nil {
		return "", fmt.Errorf("failed to commit %s: %w", number, err)
	}
	return number, nil
}

// Post approves doc and applies its balance changes in one transaction. markApproved must
// flip the document from PENDING to APPROVED and report whether it did; the account rows are
// locked in id order afterwards, re-validated, updated and a ledger row is appended for each.
func (e *PostingEngine) Post(ctx context.Context, doc domain.Postable, cmd domain.ApproveCommand, markApproved func(ctx context.Context, tx pgx.Tx) (bool, error)) (err error) {
	tx, err := e.txManager.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			e.rollback(ctx, tx)
		}
	}()

	ok, err := markApproved(ctx, tx)
	if err != nil {
		return fmt.Errorf("failed to approve %s: %w", doc.DocumentNumber(), err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotPending, doc.DocumentNumber())
	}

	ids := doc.AccountIDs()
	sort.Strings(ids)
	accounts, err := e.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	if err = doc.ValidateAccounts(accounts); err != nil {
		return asApprovalRejection(err)
	}
	changes, err := accounting.NetChanges(doc.PostingLegs(), accounts)
	if err != nil {
		return err
	}
	if err = accounting.CheckSufficientBalances(changes, accounts); err != nil {
		return asApprovalRejection(err)
	}

	now := e.now()
	if err = e.accountRepo.UpdateAccountBalancesInTx(ctx, tx, changes, cmd.UserID, now); err != nil {
		return asApprovalRejection(fmt.Errorf("failed to update balances: %w", err))
	}
	txns := accounting.BuildTransactions(doc, changes, accounts, cmd, now, e.newID)
	if err = e.ledgerRepo.InsertTransactionsInTx(ctx, tx, txns); err != nil {
		return fmt.Errorf("failed to record transactions: %w", err)
	}
	if err = e.txManager.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit approval of %s: %w", doc.DocumentNumber(), err)
	}

	e.LogDebug(ctx, "Document posted",
		slog.String("record", doc.DocumentNumber()),
		slog.Int("transactions", len(txns)))
	return nil
}

func (e *PostingEngine) rollback(ctx context.Context, tx pgx.Tx) {
	if rbErr := e.txManager.Rollback(ctx, tx); rbErr != nil {
		e.LogError(ctx, rbErr, "Failed to roll back transaction")
	}
}

// asApprovalRejection turns a validation failure found under lock into a business-rule error:
// the request was valid, the ledger state no longer allows it.
func asApprovalRejection(err error) error {
	if errors.Is(err, apperrors.ErrValidation) {
		return apperrors.NewBusinessRuleError(err.Error())
	}
	return err
}
