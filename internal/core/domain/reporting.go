package domain

import (
	"github.com/shopspring/decimal"
)

// BalanceGrouping selects the dimension balances are aggregated on.
type BalanceGrouping string

const (
	GroupByGroup BalanceGrouping = "group"
	GroupByClass BalanceGrouping = "class"
	GroupByType  BalanceGrouping = "type"
)

func (g BalanceGrouping) IsValid() bool {
	return g == GroupByGroup || g == GroupByClass || g == GroupByType
}

// BalanceAggregate is one row of a balance report grouped by group, class or type.
type BalanceAggregate struct {
	Key          string          `json:"key"` // group/class id, or the account type
	Code         string          `json:"code,omitempty"`
	Name         string          `json:"name,omitempty"`
	Type         AccountType     `json:"type"`
	TotalBalance decimal.Decimal `json:"totalBalance"`
	AccountCount int             `json:"accountCount"`
}
