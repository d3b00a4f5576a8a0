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

type journalEntryService struct {
	BaseService
	repo        portsrepo.JournalEntryRepositoryFacade
	accountRepo portsrepo.AccountReader
	engine      *PostingEngine
}

// NewJournalEntryService creates the journal entry workflow service.
func NewJournalEntryService(repo portsrepo.JournalEntryRepositoryFacade, accountRepo portsrepo.AccountReader, engine *PostingEngine) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{repo: repo, accountRepo: accountRepo, engine: engine}
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

func (s *journalEntryService) CreateJournalEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	entryID := s.engine.NewID()
	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		Date:           date,
		Description:    req.Description,
		TotalAmount:    domain.RoundMoney(req.TotalAmount),
		Status:         domain.StatusPending,
		Items:          make([]domain.JournalEntryItem, len(req.Items)),
		AuditFields:    domain.NewAuditFields(userID, s.engine.Now()),
	}
	for i, item := range req.Items {
		entry.Items[i] = domain.JournalEntryItem{
			ItemID:          s.engine.NewID(),
			JournalEntryID:  entryID,
			CreditAccountID: item.CreditAccountID,
			DebitAccountID:  item.DebitAccountID,
			Amount:          domain.RoundMoney(item.Amount),
		}
	}

	if err := entry.Validate(); err != nil {
		s.LogWarn(ctx, err, "Journal entry rejected")
		return nil, err
	}
	if _, err := s.engine.ValidatePosting(ctx, &entry); err != nil {
		s.LogFailure(ctx, err, "Journal entry rejected")
		return nil, err
	}

	number, err := s.engine.CreateNumbered(ctx, domain.KindJournalEntry, func(ctx context.Context, tx pgx.Tx, number string) error {
		entry.Number = number
		return s.repo.SaveJournalEntryInTx(ctx, tx, entry)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Failed to save journal entry", slog.String("journal_entry_id", entryID))
		return nil, err
	}
	entry.Number = number

	s.LogInfo(ctx, "Journal entry created successfully",
		slog.String("journal_entry_id", entryID),
		slog.String("number", number),
		slog.String("total", domain.FormatMoney(entry.TotalAmount)))
	return &entry, nil
}

func (s *journalEntryService) GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.repo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("journal_entry_id", journalEntryID))
		}
		return nil, err
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, entry.AccountIDs())
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve journal entry accounts", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}
	entry.ResolveAccounts(accounts)
	if entry.IsApproved {
		if entry.Postings, err = s.engine.PostedTransactions(ctx, entry.JournalEntryID); err != nil {
			return nil, err
		}
	}
	return entry, nil
}

func (s *journalEntryService) ListJournalEntries(ctx context.Context, params dto.ListParams) ([]domain.JournalEntry, error) {
	entries, err := s.repo.ListJournalEntries(ctx, pagination.ClampLimit(params.Limit), params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	if entries == nil {
		return []domain.JournalEntry{}, nil
	}
	return entries, nil
}

func (s *journalEntryService) ApproveJournalEntry(ctx context.Context, journalEntryID string, req dto.ApproveRequest, userID string) (*domain.JournalEntry, error) {
	date, err := dto.ParseDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.CanApprove() {
		err = fmt.Errorf("%w: %s", domain.ErrNotPending, entry.Number)
		s.LogWarn(ctx, err, "Journal entry approval rejected", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}

	cmd := domain.ApproveCommand{Date: date, UserID: userID}
	approval := cmd.Stamp()
	err = s.engine.Post(ctx, entry, cmd, func(ctx context.Context, tx pgx.Tx) (bool, error) {
		return s.repo.MarkJournalEntryApprovedInTx(ctx, tx, journalEntryID, approval)
	})
	if err != nil {
		s.LogFailure(ctx, err, "Journal entry approval failed", slog.String("journal_entry_id", journalEntryID))
		return nil, err
	}

	entry.Status = domain.StatusApproved
	entry.Approval = approval
	s.LogInfo(ctx, "Journal entry approved", slog.String("journal_entry_id", journalEntryID), slog.String("number", entry.Number))
	return entry, nil
}
