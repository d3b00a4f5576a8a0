package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/accounting_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// budgetService covers budgets and budget adjustments. Neither ever moves an account balance.
type budgetService struct {
	BaseService
	repo               portsrepo.BudgetRepositoryFacade
	accountRepo        portsrepo.AccountReader
	classificationRepo portsrepo.ClassificationReader
	engine             *PostingEngine
}

// NewBudgetService creates the budget engine service.
func NewBudgetService(repo portsrepo.BudgetRepositoryFacade, accountRepo portsrepo.AccountReader, classificationRepo portsrepo.ClassificationReader, engine *PostingEngine) portssvc.BudgetSvcFacade {
	return &budgetService{repo: repo, accountRepo: accountRepo, classificationRepo: classificationRepo, engine: engine}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	budgetID := s.engine.NewID()
	budget := domain.Budget{
		BudgetID:           budgetID,
		FinancialYearID:    req.FinancialYearID,
		Description:        req.Description,
		TotalIncomeAmount:  domain.RoundMoney(req.TotalIncomeAmount),
		TotalExpenseAmount: domain.RoundMoney(req.TotalExpenseAmount),
		Status:             domain.StatusPending,
		Items:              make([]domain.BudgetItem, len(req.Items)),
		AuditFields:        domain.NewAuditFields(userID, s.engine.Now()),
	}
	for i, item := range req.Items {
		budget.Items[i] = domain.BudgetItem{
			ItemID:        s.engine.NewID(),
			BudgetID:      budgetID,
			AccountID:     item.AccountID,
			Type:          item.Type,
			PlannedAmount: domain.RoundMoney(item.PlannedAmount),
		}
	}
	if err := budget.Validate(); err != nil {
		s.LogWarn(ctx, err, "Budget rejected")
		return nil, err
	}

	if _, err := s.classificationRepo.FindFinancialYearByID(ctx, req.FinancialYearID); err != nil {
		return nil, referenceError("financial year", req.FinancialYearID, err)
	}
	exists, err := s.repo.BudgetExistsForFinancialYear(ctx, req.FinancialYearID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing budget: %w", err)
	}
	if exists {
		err = apperrors.NewConflictError(fmt.Sprintf("financial year %s already has a budget", req.FinancialYearID))
		s.LogWarn(ctx, err, "Budget rejected")
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, budget.AccountIDs())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	if err := budget.ValidateAccounts(accounts); err != nil {
		s.LogFailure(ctx, err, "Budget rejected")
		return nil, err
	}

	number, err := s.engine.CreateNumbered(ctx, domain.KindBudget, func(ctx context.Context, tx pgx.Tx, number string) error {
		budget.Number = number
		return s.repo.SaveBudgetInTx(ctx, tx, budget)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save budget", slog.String("budget_id", budgetID))
		return nil, err
	}
	budget.Number = number

	s.LogInfo(ctx, "Budget created successfully",
		slog.String("budget_id", budgetID),
		slog.String("number", number),
		slog.String("financial_year_id", budget.FinancialYearID))
	return &budget, nil
}

// GetBudgetByID attaches the current account balances and, once approved, the variance figures.
func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := s.repo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget", slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, budget.AccountIDs())
	if err != nil {
		return nil, err
	}
	budget.ApplyVariance(accounts)
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, params dto.ListParams) ([]domain.Budget, error) {
	budgets, err := s.repo.ListBudgets(ctx, pagination.ClampLimit(params.Limit), params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *budgetService) ApproveBudget(ctx context.Context, budgetID string, req dto.ApproveRequest, userID string) (*domain.Budget, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	budget, err := s.repo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	approval := domain.ApproveCommand{Date: date, UserID: userID}.Stamp()
	ok := false
	if budget.Status.CanApprove() {
		if ok, err = s.repo.MarkBudgetApproved(ctx, budgetID, approval); err != nil {
			s.LogError(ctx, err, "Failed to approve budget", slog.String("budget_id", budgetID))
			return nil, err
		}
	}
	if !ok {
		err = fmt.Errorf("%w: %s", domain.ErrNotPending, budget.Number)
		s.LogWarn(ctx, err, "Budget approval rejected", slog.String("budget_id", budgetID))
		return nil, err
	}

	budget.Status = domain.StatusApproved
	budget.Approval = approval
	budget.IsAdditional = true
	s.LogInfo(ctx, "Budget approved", slog.String("budget_id", budgetID), slog.String("number", budget.Number))
	return budget, nil
}
