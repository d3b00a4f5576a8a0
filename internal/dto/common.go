package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
)

// DateLayout is the wire format of document and approval dates.
const DateLayout = "2006-01-02"

// MessageResponse is returned by create and approve endpoints.
type MessageResponse struct {
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
	Number  string `json:"number,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ApproveRequest carries the approval date of a document.
type ApproveRequest struct {
	Date string `json:"date" binding:"required,doc_date" example:"2024-06-02"`
}

// ListParams defines offset pagination for document and account lists.
type ListParams struct {
	Limit  int `form:"limit,default=20" binding:"min=0,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ParseDate parses a date in DateLayout, reporting failures as validation errors.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date formatted YYYY-MM-DD", apperrors.ErrValidation, field)
	}
	return t, nil
}
