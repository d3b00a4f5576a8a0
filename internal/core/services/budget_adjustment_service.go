package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

// CreateBudgetAdjustment snapshots the planned amount of every referenced budget line.
// The budget must already be approved; its lines are never rewritten.
func (s *budgetService) CreateBudgetAdjustment(ctx context.Context, req dto.CreateBudgetAdjustmentRequest, userID string) (*domain.BudgetAdjustment, error) {
	adjustmentID := s.engine.NewID()
	adjustment := domain.BudgetAdjustment{
		AdjustmentID: adjustmentID,
		BudgetID:     req.BudgetID,
		Description:  req.Description,
		Status:       domain.StatusPending,
		Items:        make([]domain.BudgetAdjustmentItem, len(req.Items)),
		AuditFields:  domain.NewAuditFields(userID, s.engine.Now()),
	}
	for i, item := range req.Items {
		adjustment.Items[i] = domain.BudgetAdjustmentItem{
			ItemID:        s.engine.NewID(),
			AdjustmentID:  adjustmentID,
			BudgetItemID:  item.BudgetItemID,
			CurrentAmount: domain.RoundMoney(item.CurrentAmount),
		}
	}
	if err := adjustment.Validate(); err != nil {
		s.LogWarn(ctx, err, "Budget adjustment rejected")
		return nil, err
	}

	budget, err := s.repo.FindBudgetByID(ctx, req.BudgetID)
	if err != nil {
		return nil, referenceError("budget", req.BudgetID, err)
	}
	if !budget.IsApproved {
		err = apperrors.NewBusinessRuleError(fmt.Sprintf("budget %s must be approved before it can be adjusted", budget.Number))
		s.LogWarn(ctx, err, "Budget adjustment rejected", slog.String("budget_id", budget.BudgetID))
		return nil, err
	}
	if err := adjustment.SnapshotFrom(budget); err != nil {
		s.LogWarn(ctx, err, "Budget adjustment rejected", slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	number, err := s.engine.CreateNumbered(ctx, domain.KindBudgetAdjustment, func(ctx context.Context, tx pgx.Tx, number string) error {
		adjustment.Number = number
		return s.repo.SaveBudgetAdjustmentInTx(ctx, tx, adjustment)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save budget adjustment", slog.String("adjustment_id", adjustmentID))
		return nil, err
	}
	adjustment.Number = number

	s.LogInfo(ctx, "Budget adjustment created successfully",
		slog.String("adjustment_id", adjustmentID),
		slog.String("number", number),
		slog.String("budget_id", budget.BudgetID))
	return &adjustment, nil
}

func (s *budgetService) GetBudgetAdjustmentByID(ctx context.Context, adjustmentID string) (*domain.BudgetAdjustment, error) {
	adjustment, err := s.repo.FindBudgetAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget adjustment", slog.String("adjustment_id", adjustmentID))
		}
		return nil, err
	}
	ids := make([]string, 0, len(adjustment.Items))
	for _, item := range adjustment.Items {
		ids = append(ids, item.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range adjustment.Items {
		if acc, ok := accounts[adjustment.Items[i].AccountID]; ok {
			adjustment.Items[i].Account = &acc
		}
	}
	return adjustment, nil
}

func (s *budgetService) ListBudgetAdjustments(ctx context.Context, budgetID string, params dto.ListParams) ([]domain.BudgetAdjustment, error) {
	adjustments, err := s.repo.ListBudgetAdjustments(ctx, budgetID, pagination.ClampLimit(params.Limit), params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budget adjustments")
		return nil, fmt.Errorf("failed to list budget adjustments: %w", err)
	}
	if adjustments == nil {
		return []domain.BudgetAdjustment{}, nil
	}
	return adjustments, nil
}

func (s *budgetService) ApproveBudgetAdjustment(ctx context.Context, adjustmentID string, req dto.ApproveRequest, userID string) (*domain.BudgetAdjustment, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	adjustment, err := s.repo.FindBudgetAdjustmentByID(ctx, adjustmentID)
	if err != nil {
		return nil, err
	}

	approval := domain.ApproveCommand{Date: date, UserID: userID}.Stamp()
	ok := false
	if adjustment.Status.CanApprove() {
		if ok, err = s.repo.MarkBudgetAdjustmentApproved(ctx, adjustmentID, approval); err != nil {
			s.LogError(ctx, err, "Failed to approve budget adjustment", slog.String("adjustment_id", adjustmentID))
			return nil, err
		}
	}
	if !ok {
		err = fmt.Errorf("%w: %s", domain.ErrNotPending, adjustment.Number)
		s.LogWarn(ctx, err, "Budget adjustment approval rejected", slog.String("adjustment_id", adjustmentID))
		return nil, err
	}

	adjustment.Status = domain.StatusApproved
	adjustment.Approval = approval
	s.LogInfo(ctx, "Budget adjustment approved", slog.String("adjustment_id", adjustmentID), slog.String("number", adjustment.Number))
	return adjustment, nil
}
