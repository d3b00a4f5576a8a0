package accounting_test

import (
	"testing"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	tests := []struct {
		nature domain.AccountNature
		side   domain.EntrySide
		want   string
	}{
		{domain.Debitor, domain.Debit, "100"},
		{domain.Debitor, domain.Credit, "-100"},
		{domain.Creditor, domain.Debit, "-100"},
		{domain.Creditor, domain.Credit, "100"},
	}
	for _, tt := range tests {
		t.Run(string(tt.nature)+"/"+string(tt.side), func(t *testing.T) {
			got, err := accounting.SignedAmount(tt.nature, tt.side, hundred)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}

	_, err := accounting.SignedAmount("SIDEWAYS", domain.Debit, hundred)
	assert.Error(t, err)
}

func ledgerAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"cash":    {AccountID: "cash", Code: "1101", Nature: domain.Debitor, Balance: decimal.NewFromInt(80)},
		"rent":    {AccountID: "rent", Code: "5101", Nature: domain.Debitor},
		"capital": {AccountID: "capital", Code: "3101", Nature: domain.Creditor, Balance: decimal.NewFromInt(500)},
	}
}

func TestNetChanges(t *testing.T) {
	legs := []domain.PostingLeg{
		{AccountID: "cash", Side: domain.Credit, Amount: decimal.RequireFromString("60.12345")},
		{AccountID: "rent", Side: domain.Debit, Amount: decimal.RequireFromString("60.12345")},
		{AccountID: "cash", Side: domain.Debit, Amount: decimal.NewFromInt(10)},
		{AccountID: "capital", Side: domain.Credit, Amount: decimal.NewFromInt(10)},
	}
	changes, err := accounting.NetChanges(legs, ledgerAccounts())
	require.NoError(t, err)
	assert.Equal(t, "-50.1235", changes["cash"].String())
	assert.Equal(t, "60.1235", changes["rent"].String())
	assert.Equal(t, "10", changes["capital"].String())

	_, err = accounting.NetChanges([]domain.PostingLeg{{AccountID: "ghost", Side: domain.Debit}}, ledgerAccounts())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCheckSufficientBalances(t *testing.T) {
	accounts := ledgerAccounts()
	ok := map[string]decimal.Decimal{"cash": decimal.NewFromInt(-80), "rent": decimal.NewFromInt(80)}
	assert.NoError(t, accounting.CheckSufficientBalances(ok, accounts))

	over := map[string]decimal.Decimal{"cash": decimal.RequireFromString("-80.0001")}
	assert.ErrorIs(t, accounting.CheckSufficientBalances(over, accounts), domain.ErrInsufficientBalance)

	debitToCreditor := map[string]decimal.Decimal{"capital": decimal.NewFromInt(-501)}
	assert.ErrorIs(t, accounting.CheckSufficientBalances(debitToCreditor, accounts), domain.ErrInsufficientBalance)
}

func TestBuildTransactions(t *testing.T) {
	entry := &domain.JournalEntry{JournalEntryID: "je-1", Number: "JE-0001"}
	changes := map[string]decimal.Decimal{"rent": decimal.NewFromInt(100), "cash": decimal.NewFromInt(-100)}
	cmd := domain.ApproveCommand{Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), UserID: "u-1"}
	n := 0
	newID := func() string { n++; return []string{"t1", "t2"}[n-1] }

	txns := accounting.BuildTransactions(entry, changes, ledgerAccounts(), cmd, time.Now(), newID)
	require.Len(t, txns, 2)
	assert.Equal(t, "cash", txns[0].AccountID)
	assert.Equal(t, "t1", txns[0].TransactionID)
	assert.Equal(t, "-100", txns[0].Amount.String())
	assert.Equal(t, domain.JournalEntryTransaction, txns[1].Type)
	for _, txn := range txns {
		assert.Equal(t, "JE-0001", txn.Record)
		assert.Equal(t, "je-1", txn.DocumentID)
		assert.Equal(t, cmd.Date, txn.Date)
	}
}
