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

type voucherService struct {
	BaseService
	repo        portsrepo.VoucherRepositoryFacade
	accountRepo portsrepo.AccountReader
	attachments portsrepo.AttachmentStore
	engine      *PostingEngine
}

// NewVoucherService creates the payment/receipt voucher workflow service.
func NewVoucherService(repo portsrepo.VoucherRepositoryFacade, accountRepo portsrepo.AccountReader, attachments portsrepo.AttachmentStore, engine *PostingEngine) portssvc.VoucherSvcFacade {
	return &voucherService{repo: repo, accountRepo: accountRepo, attachments: attachments, engine: engine}
}

var _ portssvc.VoucherSvcFacade = (*voucherService)(nil)

func (s *voucherService) CreateVoucher(ctx context.Context, req dto.CreateVoucherRequest, userID string) (*domain.PaymentAndReceipt, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	voucherID := s.engine.NewID()
	voucher := domain.PaymentAndReceipt{
		VoucherID:     voucherID,
		Type:          req.Type,
		Date:          date,
		Description:   req.Description,
		MainAccountID: req.MainAccountID,
		TotalAmount:   domain.RoundMoney(req.TotalAmount),
		Status:        domain.StatusPending,
		Items:         make([]domain.PaymentAndReceiptItem, len(req.Items)),
		AuditFields:   domain.NewAuditFields(userID, s.engine.Now()),
	}
	for i, item := range req.Items {
		voucher.Items[i] = domain.PaymentAndReceiptItem{
			ItemID:    s.engine.NewID(),
			VoucherID: voucherID,
			AccountID: item.AccountID,
			Amount:    domain.RoundMoney(item.Amount),
		}
	}

	if err := voucher.Validate(); err != nil {
		s.LogWarn(ctx, err, "Voucher rejected", slog.String("type", string(req.Type)))
		return nil, err
	}
	if _, err := s.engine.ValidatePosting(ctx, &voucher); err != nil {
		s.LogFailure(ctx, err, "Voucher rejected", slog.String("type", string(req.Type)))
		return nil, err
	}

	if req.Attachment != "" {
		path, err := s.attachments.Save(ctx, req.Attachment)
		if err != nil {
			s.LogFailure(ctx, err, "Failed to store voucher attachment", slog.String("voucher_id", voucherID))
			return nil, err
		}
		voucher.AttachmentPath = path
	}

	number, err := s.engine.CreateNumbered(ctx, voucher.Kind(), func(ctx context.Context, tx pgx.Tx, number string) error {
		voucher.Number = number
		return s.repo.SaveVoucherInTx(ctx, tx, voucher)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save voucher", slog.String("voucher_id", voucherID))
		return nil, err
	}
	voucher.Number = number

	s.LogInfo(ctx, "Voucher created successfully",
		slog.String("voucher_id", voucherID),
		slog.String("number", number),
		slog.String("type", string(voucher.Type)))
	return &voucher, nil
}

func (s *voucherService) GetVoucherByID(ctx context.Context, voucherID string) (*domain.PaymentAndReceipt, error) {
	voucher, err := s.repo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find voucher", slog.String("voucher_id", voucherID))
		}
		return nil, err
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, voucher.AccountIDs())
	if err != nil {
		return nil, err
	}
	voucher.ResolveAccounts(accounts)
	if voucher.IsApproved {
		if voucher.Postings, err = s.engine.PostedTransactions(ctx, voucher.VoucherID); err != nil {
			return nil, err
		}
	}
	return voucher, nil
}

func (s *voucherService) ListVouchers(ctx context.Context, params dto.ListVouchersParams) ([]domain.PaymentAndReceipt, error) {
	vouchers, err := s.repo.ListVouchers(ctx, domain.VoucherType(params.Type), pagination.ClampLimit(params.Limit), params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list vouchers")
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}
	if vouchers == nil {
		return []domain.PaymentAndReceipt{}, nil
	}
	return vouchers, nil
}

func (s *voucherService) ApproveVoucher(ctx context.Context, voucherID string, req dto.ApproveRequest, userID string) (*domain.PaymentAndReceipt, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	voucher, err := s.repo.FindVoucherByID(ctx, voucherID)
	if err != nil {
		return nil, err
	}
	if !voucher.Status.CanApprove() {
		err = fmt.Errorf("%w: %s", domain.ErrNotPending, voucher.Number)
		s.LogWarn(ctx, err, "Voucher approval rejected", slog.String("voucher_id", voucherID))
		return nil, err
	}

	cmd := domain.ApproveCommand{Date: date, UserID: userID}
	approval := cmd.Stamp()
	err = s.engine.Post(ctx, voucher, cmd, func(ctx context.Context, tx pgx.Tx) (bool, error) {
		return s.repo.MarkVoucherApprovedInTx(ctx, tx, voucherID, approval)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Voucher approval failed", slog.String("voucher_id", voucherID))
		return nil, err
	}

	voucher.Status = domain.StatusApproved
	voucher.Approval = approval
	s.LogInfo(ctx, "Voucher approved", slog.String("voucher_id", voucherID), slog.String("number", voucher.Number))
	return voucher, nil
}
