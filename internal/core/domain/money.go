package domain

import (
	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the number of fractional digits stored for every monetary value.
	MoneyScale int32 = 4
	// ComparisonScale is the rounding used when a computed total is compared with a caller-supplied one.
	ComparisonScale int32 = 2
)

// RoundMoney rounds an amount to the storage scale.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// AmountsMatch reports whether two amounts are equal once rounded to ComparisonScale.
func AmountsMatch(a, b decimal.Decimal) bool {
	return a.Round(ComparisonScale).Equal(b.Round(ComparisonScale))
}

// FormatMoney renders an amount as a decimal string with exactly MoneyScale fractional digits.
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(MoneyScale)
}

// SumAmounts adds amounts without any intermediate rounding.
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
