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
	"github.com/jackc/pgx/v5"
)

type bankTransferService struct {
	BaseService
	repo        portsrepo.BankTransferRepositoryFacade
	accountRepo portsrepo.AccountReader
	engine      *PostingEngine
}

// NewBankTransferService creates the bank transfer workflow service.
func NewBankTransferService(repo portsrepo.BankTransferRepositoryFacade, accountRepo portsrepo.AccountReader, engine *PostingEngine) portssvc.BankTransferSvcFacade {
	return &bankTransferService{repo: repo, accountRepo: accountRepo, engine: engine}
}

var _ portssvc.BankTransferSvcFacade = (*bankTransferService)(nil)

func (s *bankTransferService) CreateBankTransfer(ctx context.Context, req dto.CreateBankTransferRequest, userID string) (*domain.BankTransfer, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	transfer := domain.BankTransfer{
		BankTransferID: s.engine.NewID(),
		Reference:      strings.TrimSpace(req.Reference),
		Date:           date,
		Description:    req.Description,
		FromAccountID:  req.FromAccountID,
		ToAccountID:    req.ToAccountID,
		Amount:         domain.RoundMoney(req.Amount),
		Status:         domain.StatusPending,
		AuditFields:    domain.NewAuditFields(userID, s.engine.Now()),
	}
	if err := transfer.Validate(); err != nil {
		s.LogWarn(ctx, err, "Bank transfer rejected", slog.String("reference", transfer.Reference))
		return nil, err
	}
	if _, err := s.engine.ValidatePosting(ctx, &transfer); err != nil {
		s.LogFailure(ctx, err, "Bank transfer rejected", slog.String("reference", transfer.Reference))
		return nil, err
	}

	number, err := s.engine.CreateNumbered(ctx, domain.KindBankTransfer, func(ctx context.Context, tx pgx.Tx, number string) error {
		transfer.Number = number
		return s.repo.SaveBankTransferInTx(ctx, tx, transfer)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save bank transfer", slog.String("reference", transfer.Reference))
		return nil, err
	}
	transfer.Number = number

	s.LogInfo(ctx, "Bank transfer created successfully",
		slog.String("bank_transfer_id", transfer.BankTransferID),
		slog.String("number", number))
	return &transfer, nil
}

func (s *bankTransferService) GetBankTransferByID(ctx context.Context, bankTransferID string) (*domain.BankTransfer, error) {
	transfer, err := s.repo.FindBankTransferByID(ctx, bankTransferID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find bank transfer", slog.String("bank_transfer_id", bankTransferID))
		}
		return nil, err
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, transfer.AccountIDs())
	if err != nil {
		return nil, err
	}
	transfer.ResolveAccounts(accounts)
	if transfer.IsApproved {
		if transfer.Postings, err = s.engine.PostedTransactions(ctx, transfer.BankTransferID); err != nil {
			return nil, err
		}
	}
	return transfer, nil
}

func (s *bankTransferService) ListBankTransfers(ctx context.Context, params dto.ListParams) ([]domain.BankTransfer, error) {
	transfers, err := s.repo.ListBankTransfers(ctx, pagination.ClampLimit(params.Limit), params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank transfers")
		return nil, fmt.Errorf("failed to list bank transfers: %w", err)
	}
	if transfers == nil {
		return []domain.BankTransfer{}, nil
	}
	return transfers, nil
}

// ApproveBankTransfer re-checks that the source still covers the amount under lock.
func (s *bankTransferService) ApproveBankTransfer(ctx context.Context, bankTransferID string, req dto.ApproveRequest, userID string) (*domain.BankTransfer, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	transfer, err := s.repo.FindBankTransferByID(ctx, bankTransferID)
	if err != nil {
		return nil, err
	}
	if !transfer.Status.CanApprove() {
		err = fmt.Errorf("%w: %s", domain.ErrNotPending, transfer.Number)
		s.LogWarn(ctx, err, "Bank transfer approval rejected", slog.String("bank_transfer_id", bankTransferID))
		return nil, err
	}

	cmd := domain.ApproveCommand{Date: date, UserID: userID}
	approval := cmd.Stamp()
	err = s.engine.Post(ctx, transfer, cmd, func(ctx context.Context, tx pgx.Tx) (bool, error) {
		return s.repo.MarkBankTransferApprovedInTx(ctx, tx, bankTransferID, approval)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Bank transfer approval failed", slog.String("bank_transfer_id", bankTransferID))
		return nil, err
	}

	transfer.Status = domain.StatusApproved
	transfer.Approval = approval
	s.LogInfo(ctx, "Bank transfer approved", slog.String("bank_transfer_id", bankTransferID), slog.String("number", transfer.Number))
	return transfer, nil
}
