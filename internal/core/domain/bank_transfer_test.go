package domain_test

import (
	"testing"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestBankTransfer_Validate(t *testing.T) {
	tr := &domain.BankTransfer{
		Date: day("2024-06-01"), Reference: "TRF-77",
		FromAccountID: "bank", ToAccountID: "cash", Amount: dec("50"),
	}
	assert.NoError(t, tr.Validate())

	tr.ToAccountID = "bank"
	assert.ErrorIs(t, tr.Validate(), domain.ErrSameAccount)

	tr.ToAccountID = "cash"
	tr.Reference = "  "
	assert.ErrorIs(t, tr.Validate(), apperrors.ErrValidation)

	tr.Reference = "TRF-77"
	tr.Amount = dec("-1")
	assert.ErrorIs(t, tr.Validate(), apperrors.ErrValidation)
}

func TestBankTransfer_ValidateAccounts(t *testing.T) {
	tr := &domain.BankTransfer{FromAccountID: "bank", ToAccountID: "cash", Amount: dec("50")}
	accounts := map[string]domain.Account{
		"bank": {AccountID: "bank", Code: "1102", IsCashOrBank: true, Balance: dec("30")},
		"cash": {AccountID: "cash", Code: "1101", IsCashOrBank: true},
	}

	err := tr.ValidateAccounts(accounts)
	assert.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	bank := accounts["bank"]
	bank.Balance = dec("50")
	accounts["bank"] = bank
	assert.NoError(t, tr.ValidateAccounts(accounts))

	cash := accounts["cash"]
	cash.IsCashOrBank = false
	accounts["cash"] = cash
	assert.ErrorIs(t, tr.ValidateAccounts(accounts), apperrors.ErrValidation)

	delete(accounts, "cash")
	assert.ErrorIs(t, tr.ValidateAccounts(accounts), apperrors.ErrNotFound)
}
