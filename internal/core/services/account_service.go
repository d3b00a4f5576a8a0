package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/utils/pagination"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo        portsrepo.AccountRepositoryWithTx
	classificationRepo portsrepo.ClassificationReader
	ledgerRepo         portsrepo.LedgerReader
	reportingRepo      portsrepo.ReportingRepository
	engine             *PostingEngine
}

// NewAccountService creates the account registry service.
func NewAccountService(
	accountRepo portsrepo.AccountRepositoryWithTx,
	classificationRepo portsrepo.ClassificationReader,
	ledgerRepo portsrepo.LedgerReader,
	reportingRepo portsrepo.ReportingRepository,
	engine *PostingEngine,
) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:        accountRepo,
		classificationRepo: classificationRepo,
		ledgerRepo:         ledgerRepo,
		reportingRepo:      reportingRepo,
		engine:             engine,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and name are required", apperrors.ErrValidation)
	}
	if req.OpeningBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
	}

	if err := s.checkNaturalKeys(ctx, code, name, ""); err != nil {
		s.LogFailure(ctx, err, "Account natural key rejected", slog.String("code", code))
		return nil, err
	}

	group, class, err := s.resolveClassification(ctx, req.GroupID, req.ClassID)
	if err != nil {
		s.LogFailure(ctx, err, "Account classification rejected", slog.String("code", code))
		return nil, err
	}
	if !strings.HasPrefix(code, group.Code) || !strings.HasPrefix(code, class.Code) {
		return nil, fmt.Errorf("%w: account code %s must start with group code %s and class code %s",
			apperrors.ErrValidation, code, group.Code, class.Code)
	}

	var bank *domain.BankDetails
	if req.Bank != nil {
		if bank, err = s.validateBankDetails(ctx, req.Bank, class); err != nil {
			s.LogFailure(ctx, err, "Bank details rejected", slog.String("code", code))
			return nil, err
		}
	}

	fy, err := s.openFinancialYear(ctx)
	if err != nil {
		return nil, err
	}

	now := s.engine.Now()
	opening := domain.RoundMoney(req.OpeningBalance)
	account := domain.Account{
		AccountID:      s.engine.NewID(),
		Code:           code,
		Name:           name,
		GroupID:        group.GroupID,
		ClassID:        class.ClassID,
		Type:           group.Type,
		Nature:         class.Nature,
		IsCashOrBank:   class.IsCashOrBank,
		IsEditable:     req.IsEditable == nil || *req.IsEditable,
		Balance:        opening,
		OpeningBalance: opening,
		Bank:           bank,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	if bank != nil {
		bank.AccountID = account.AccountID
	}
	snapshot := domain.AccountBalanceSnapshot{
		AccountID:       account.AccountID,
		FinancialYearID: fy.FinancialYearID,
		OpeningBalance:  opening,
	}

	if err := s.accountRepo.SaveAccount(ctx, account, snapshot); err != nil {
		s.LogFailure(ctx, err, "Failed to save account", slog.String("code", code))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) checkNaturalKeys(ctx context.Context, code, name, excludeID string) error {
	codeTaken, nameTaken, err := s.accountRepo.FindNaturalKeyClashes(ctx, domain.NormalizeKey(code), domain.NormalizeKey(name), excludeID)
	if err != nil {
		return fmt.Errorf("failed to check account uniqueness: %w", err)
	}
	if codeTaken {
		return apperrors.NewConflictError(fmt.Sprintf("account code %q is already in use", code))
	}
	if nameTaken {
		return apperrors.NewConflictError(fmt.Sprintf("account name %q is already in use", name))
	}
	return nil
}

func (s *accountService) resolveClassification(ctx context.Context, groupID, classID string) (*domain.AccountGroup, *domain.AccountClass, error) {
	group, err := s.classificationRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, nil, referenceError("account group", groupID, err)
	}
	class, err := s.classificationRepo.FindClassByID(ctx, classID)
	if err != nil {
		return nil, nil, referenceError("account class", classID, err)
	}
	if group.Type != class.Type {
		return nil, nil, fmt.Errorf("%w: group %s is %s but class %s is %s",
			apperrors.ErrValidation, group.Code, group.Type, class.Code, class.Type)
	}
	return group, class, nil
}

func (s *accountService) validateBankDetails(ctx context.Context, req *dto.BankDetailsRequest, class *domain.AccountClass) (*domain.BankDetails, error) {
	if !class.IsCashOrBank {
		return nil, fmt.Errorf("%w: bank details are only allowed on cash or bank classes", apperrors.ErrValidation)
	}
	bank := &domain.BankDetails{
		BankName:      strings.TrimSpace(req.BankName),
		BranchName:    strings.TrimSpace(req.BranchName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		IBAN:          strings.TrimSpace(req.IBAN),
		SwiftCode:     strings.TrimSpace(req.SwiftCode),
	}
	if bank.BankName == "" || bank.BranchName == "" || bank.AccountNumber == "" {
		return nil, fmt.Errorf("%w: bank name, branch name and account number are required", apperrors.ErrValidation)
	}
	exists, err := s.accountRepo.BankAccountNumberExists(ctx, bank.AccountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check bank account number: %w", err)
	}
	if exists {
		return nil, apperrors.NewConflictError(fmt.Sprintf("bank account number %s is already registered", bank.AccountNumber))
	}
	return bank, nil
}

func (s *accountService) openFinancialYear(ctx context.Context) (*domain.FinancialYear, error) {
	fy, err := s.classificationRepo.FindOpenFinancialYear(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			err = apperrors.NewBusinessRuleError("no open financial year")
			s.LogWarn(ctx, err, "Opening balance needs an open financial year")
			return nil, err
		}
		s.LogError(ctx, err, "Failed to load open financial year")
		return nil, err
	}
	return fy, nil
}

// UpdateAccount applies new balance = current balance - old opening balance + new opening balance
// while holding the account row lock.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (account *domain.Account, err error) {
	fy, err := s.openFinancialYear(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := s.accountRepo.Rollback(ctx, tx); rbErr != nil {
				s.LogError(ctx, rbErr, "Failed to roll back account update")
			}
		}
	}()

	locked, err := s.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, []string{accountID})
	if err != nil {
		return nil, fmt.Errorf("failed to lock account: %w", err)
	}
	current, ok := locked[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account %s", accountID))
	}
	if !current.IsEditable {
		err = apperrors.NewBusinessRuleError(fmt.Sprintf("account %s is not editable", current.Code))
		s.LogWarn(ctx, err, "Account update rejected", slog.String("account_id", accountID))
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", apperrors.ErrValidation)
		}
		if err = s.checkNaturalKeys(ctx, current.Code, name, accountID); err != nil {
			s.LogFailure(ctx, err, "Account rename rejected", slog.String("account_id", accountID))
			return nil, err
		}
		current.Name = name
	}

	if req.OpeningBalance != nil {
		newOpening := domain.RoundMoney(*req.OpeningBalance)
		if newOpening.IsNegative() {
			return nil, fmt.Errorf("%w: opening balance must not be negative", apperrors.ErrValidation)
		}
		newBalance := current.Balance.Sub(current.OpeningBalance).Add(newOpening)
		if newBalance.IsNegative() {
			err = apperrors.NewBusinessRuleError(fmt.Sprintf("new opening balance would leave account %s at %s",
				current.Code, domain.FormatMoney(newBalance)))
			s.LogWarn(ctx, err, "Account update rejected", slog.String("account_id", accountID))
			return nil, err
		}
		current.Balance = domain.RoundMoney(newBalance)
		current.OpeningBalance = newOpening
	}

	current.LastUpdatedAt = s.engine.Now()
	current.LastUpdatedBy = userID

	if err = s.accountRepo.RebaseOpeningBalanceInTx(ctx, tx, current, fy.FinancialYearID); err != nil {
		s.LogFailure(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}
	if err = s.accountRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to commit account update: %w", err)
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", accountID),
		slog.String("balance", domain.FormatMoney(current.Balance)))
	return &current, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListParams) ([]domain.Account, error) {
	limit := pagination.ClampLimit(params.Limit)
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) ListTransactions(ctx context.Context, accountID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return nil, err
	}
	limit := pagination.ClampLimit(params.Limit)
	txns, nextToken, err := s.ledgerRepo.ListTransactionsByAccountID(ctx, accountID, limit, params.NextToken)
	if err != nil {
		s.LogFailure(ctx, err, "Failed to list account transactions", slog.String("account_id", accountID))
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

func (s *accountService) ListGroups(ctx context.Context) ([]domain.AccountGroup, error) {
	return s.classificationRepo.ListGroups(ctx)
}

func (s *accountService) ListClasses(ctx context.Context) ([]domain.AccountClass, error) {
	return s.classificationRepo.ListClasses(ctx)
}

func (s *accountService) GetCurrentFinancialYear(ctx context.Context) (*domain.FinancialYear, error) {
	return s.classificationRepo.FindOpenFinancialYear(ctx)
}

func (s *accountService) AggregateBalances(ctx context.Context, groupBy domain.BalanceGrouping) ([]domain.BalanceAggregate, error) {
	if !groupBy.IsValid() {
		return nil, fmt.Errorf("%w: groupBy must be group, class or type", apperrors.ErrValidation)
	}
	rows, err := s.reportingRepo.AggregateBalances(ctx, groupBy)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate balances", slog.String("group_by", string(groupBy)))
		return nil, err
	}
	for i := range rows {
		rows[i].TotalBalance = domain.RoundMoney(rows[i].TotalBalance)
	}
	if rows == nil {
		rows = []domain.BalanceAggregate{}
	}
	return rows, nil
}

// referenceError reports a missing referenced record as a validation failure of the request.
func referenceError(what, id string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s %s does not exist", apperrors.ErrValidation, what, id)
	}
	return fmt.Errorf("failed to load %s %s: %w", what, id, err)
}
