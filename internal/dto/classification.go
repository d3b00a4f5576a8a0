package dto

import "github.com/SscSPs/accounting_backoffice/internal/core/domain"

// ListAccountGroupsResponse wraps the chart-of-accounts groups.
type ListAccountGroupsResponse struct {
	Groups []domain.AccountGroup `json:"groups"`
}

// ListAccountClassesResponse wraps the chart-of-accounts classes.
type ListAccountClassesResponse struct {
	Classes []domain.AccountClass `json:"classes"`
}
