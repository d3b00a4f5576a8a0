package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/accounting_backoffice/internal/core/domain"
	"github.com/SscSPs/accounting_backoffice/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

const testUserID = "user-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decEq(want string) func(decimal.Decimal) bool {
	return func(got decimal.Decimal) bool { return got.Equal(dec(want)) }
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func account(id, code string, accType domain.AccountType, cashOrBank bool, balance string) domain.Account {
	return domain.Account{
		AccountID:      id,
		Code:           code,
		Name:           "Account " + code,
		Type:           accType,
		Nature:         domain.NatureForType(accType),
		IsCashOrBank:   cashOrBank,
		IsEditable:     true,
		Balance:        dec(balance),
		OpeningBalance: dec(balance),
	}
}

func accountsOf(accs ...domain.Account) map[string]domain.Account {
	out := make(map[string]domain.Account, len(accs))
	for _, a := range accs {
		out[a.AccountID] = a
	}
	return out
}

// engineMocks bundles the repositories behind a PostingEngine.
type engineMocks struct {
	txManager    *MockTxManager
	accountRepo  *MockAccountRepository
	ledgerRepo   *MockLedgerRepository
	sequenceRepo *MockSequenceRepository
	engine       *services.PostingEngine
}

func newEngineMocks(options ...services.EngineOption) *engineMocks {
	m := &engineMocks{
		txManager:    new(MockTxManager),
		accountRepo:  new(MockAccountRepository),
		ledgerRepo:   new(MockLedgerRepository),
		sequenceRepo: new(MockSequenceRepository),
	}
	options = append([]services.EngineOption{
		services.WithClock(func() time.Time { return testNow }),
		services.WithIDGenerator(sequentialIDs("id")),
	}, options...)
	m.engine = services.NewPostingEngine(m.txManager, m.accountRepo, m.ledgerRepo, m.sequenceRepo, options...)
	return m
}

// expectNumber stubs a successful numbered save transaction.
func (m *engineMocks) expectNumber(prefix string, seq int64) {
	m.txManager.On("Begin", mock.Anything).Return(nil, nil).Once()
	m.sequenceRepo.On("NextValueInTx", mock.Anything, mock.Anything, prefix).Return(seq, nil).Once()
	m.txManager.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
}

// expectPosting stubs the locked read and the writes of a successful approval.
// lockIDs may be mock.Anything.
func (m *engineMocks) expectPosting(lockIDs interface{}, locked map[string]domain.Account, changes map[string]string, txnCheck func([]domain.Transaction) bool) {
	m.accountRepo.On("FindAccountsByIDsForUpdate", mock.Anything, mock.Anything, lockIDs).Return(locked, nil).Once()
	m.accountRepo.On("UpdateAccountBalancesInTx", mock.Anything, mock.Anything,
		mock.MatchedBy(func(got map[string]decimal.Decimal) bool {
			if len(got) != len(changes) {
				return false
			}
			for id, want := range changes {
				if !got[id].Equal(dec(want)) {
					return false
				}
			}
			return true
		}), testUserID, testNow).Return(nil).Once()
	m.ledgerRepo.On("InsertTransactionsInTx", mock.Anything, mock.Anything, mock.MatchedBy(txnCheck)).Return(nil).Once()
	m.txManager.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
}

func (m *engineMocks) assertExpectations(t *testing.T) {
	m.txManager.AssertExpectations(t)
	m.accountRepo.AssertExpectations(t)
	m.ledgerRepo.AssertExpectations(t)
	m.sequenceRepo.AssertExpectations(t)
}

func (m *engineMocks) assertNothingPosted(t *testing.T) {
	m.accountRepo.AssertNotCalled(t, "UpdateAccountBalancesInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.ledgerRepo.AssertNotCalled(t, "InsertTransactionsInTx", mock.Anything, mock.Anything, mock.Anything)
	m.txManager.AssertNotCalled(t, "Commit", mock.Anything, mock.Anything)
}
