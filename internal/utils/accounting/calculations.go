package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/apperrors"
	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SignedAmount applies the balance-delta sign of a posting leg for an account of the given nature.
//
//	DEBIT  to DEBITOR  -> +   CREDIT to DEBITOR  -> -
//	DEBIT  to CREDITOR -> -   CREDIT to CREDITOR -> +
func SignedAmount(nature domain.AccountNature, side domain.EntrySide, amount decimal.Decimal) (decimal.Decimal, error) {
	switch nature {
	case domain.Debitor:
		if side == domain.Credit {
			return amount.Neg(), nil
		}
		return amount, nil
	case domain.Creditor:
		if side == domain.Debit {
			return amount.Neg(), nil
		}
		return amount, nil
	}
	return decimal.Zero, fmt.Errorf("unknown account nature '%s'", nature)
}

// NetChanges folds posting legs into one rounded signed delta per account.
func NetChanges(legs []domain.PostingLeg, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(legs))
	for _, leg := range legs {
		acc, ok := accounts[leg.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, leg.AccountID)
		}
		signed, err := SignedAmount(acc.Nature, leg.Side, leg.Amount)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acc.AccountID, err)
		}
		changes[leg.AccountID] = changes[leg.AccountID].Add(signed)
	}
	for id, delta := range changes {
		changes[id] = domain.RoundMoney(delta)
	}
	return changes, nil
}

// CheckSufficientBalances rejects changes that would leave any account below zero.
func CheckSufficientBalances(changes map[string]decimal.Decimal, accounts map[string]domain.Account) error {
	for _, id := range SortedAccountIDs(changes) {
		delta := changes[id]
		if !delta.IsNegative() {
			continue
		}
		acc := accounts[id]
		if acc.Balance.Add(delta).IsNegative() {
			return fmt.Errorf("%w: account %s holds %s, posting moves %s",
				domain.ErrInsufficientBalance, acc.Code, domain.FormatMoney(acc.Balance), domain.FormatMoney(delta))
		}
	}
	return nil
}

// SortedAccountIDs returns the keys of changes in ascending order, the order rows are locked in.
func SortedAccountIDs(changes map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// BuildTransactions creates one ledger row per touched account carrying the net signed delta.
func BuildTransactions(doc domain.Postable, changes map[string]decimal.Decimal, accounts map[string]domain.Account,
	cmd domain.ApproveCommand, now time.Time, newID func() string) []domain.Transaction {
	ids := SortedAccountIDs(changes)
	txns := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		txns = append(txns, domain.Transaction{
			TransactionID: newID(),
			AccountID:     id,
			DocumentID:    doc.DocumentID(),
			Amount:        changes[id],
			Nature:        accounts[id].Nature,
			Type:          doc.Kind().TransactionType(),
			Record:        doc.DocumentNumber(),
			Date:          cmd.Date,
			CreatedAt:     now,
			CreatedBy:     cmd.UserID,
		})
	}
	return txns
}
