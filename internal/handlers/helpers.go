package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/dto"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError writes the status mapped from err. Unexpected failures are logged at error
// level and answered with a generic message; rejections echo the error text.
func respondError(c *gin.Context, logger *slog.Logger, err error, failure string) {
	status := apperrors.StatusCode(err)
	if status >= http.StatusInternalServerError {
		logger.Error(failure, slog.String("error", err.Error()))
		c.JSON(status, dto.ErrorResponse{Error: failure})
		return
	}
	logger.Warn(failure, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, dto.ErrorResponse{Error: err.Error()})
}

// requireUser returns the acting user id or answers 401.
func requireUser(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

func bindJSON(c *gin.Context, logger *slog.Logger, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		logger.Warn("Failed to bind JSON", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return false
	}
	return true
}

func bindQuery(c *gin.Context, logger *slog.Logger, params any) bool {
	if err := c.ShouldBindQuery(params); err != nil {
		logger.Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return false
	}
	return true
}

// pathID returns the ":id" path parameter, answering 400 when it is not a UUID.
func pathID(c *gin.Context, logger *slog.Logger, label string) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		logger.Warn("Invalid path ID", slog.String("id", id))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + label + " ID"})
		return "", false
	}
	return id, true
}
