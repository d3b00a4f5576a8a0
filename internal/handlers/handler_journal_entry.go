package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
)

type journalEntryHandler struct {
	journalEntryService portssvc.JournalEntrySvcFacade
}

func registerJournalEntryRoutes(rg *gin.RouterGroup, journalEntryService portssvc.JournalEntrySvcFacade) {
	h := &journalEntryHandler{journalEntryService: journalEntryService}

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createJournalEntry)
		entries.GET("", h.listJournalEntries)
		entries.GET("/:id", h.getJournalEntry)
		entries.POST("/:id/approve", h.approveJournalEntry)
	}
}

// createJournalEntry godoc
// @Summary Create a journal entry
// @Description Creates a pending journal entry of balanced credit/debit pairs and assigns its JE number.
// @Description Balances are only moved on approval.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error, e.g. total mismatch or insufficient balance"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Referenced account not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create journal entry"
// @Security BearerAuth
// @Router /journal-entries [post]
func (h *journalEntryHandler) createJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJournalEntryRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalEntryService.CreateJournalEntry(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created", slog.String("journal_entry_id", entry.JournalEntryID), slog.String("number", entry.Number))
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Journal entry created", ID: entry.JournalEntryID, Number: entry.Number})
}

// getJournalEntry godoc
// @Summary Get a journal entry
// @Description Returns the entry with its items and their resolved accounts
// @Tags journal-entries
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id} [get]
func (h *journalEntryHandler) getJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID, ok := pathID(c, logger, "journal entry")
	if !ok {
		return
	}
	entry, err := h.journalEntryService.GetJournalEntryByID(c.Request.Context(), journalEntryID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listJournalEntries godoc
// @Summary List journal entries
// @Description Returns journal entry headers, newest first
// @Tags journal-entries
// @Produce  json
// @Param   limit query int false "Limit number of results" default(20)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list journal entries"
// @Security BearerAuth
// @Router /journal-entries [get]
func (h *journalEntryHandler) listJournalEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListParams
	if !bindQuery(c, logger, &params) {
		return
	}
	entries, err := h.journalEntryService.ListJournalEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries))
}

// approveJournalEntry godoc
// @Summary Approve a journal entry
// @Description Posts the entry: locks the referenced accounts, re-checks balances, applies the signed
// @Description changes and writes the ledger rows in one transaction. Approval is one-way.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   id path string true "Journal entry ID"
// @Param   approval body dto.ApproveRequest true "Approval date"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid ID or approval date"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Journal entry not found"
// @Failure 422 {object} dto.ErrorResponse "Already approved or insufficient balance"
// @Failure 500 {object} dto.ErrorResponse "Failed to approve journal entry"
// @Security BearerAuth
// @Router /journal-entries/{id}/approve [post]
func (h *journalEntryHandler) approveJournalEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalEntryID, ok := pathID(c, logger, "journal entry")
	if !ok {
		return
	}
	var req dto.ApproveRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	userID, ok := requireUser(c, logger)
	if !ok {
		return
	}

	entry, err := h.journalEntryService.ApproveJournalEntry(c.Request.Context(), journalEntryID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("journal_entry_id", journalEntryID)), err, "Failed to approve journal entry")
		return
	}

	logger.Info("Journal entry approved", slog.String("journal_entry_id", entry.JournalEntryID), slog.String("number", entry.Number))
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Journal entry approved", ID: entry.JournalEntryID, Number: entry.Number})
}
