package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	portssvc "github.com/SscSPs/accounting_backoffice/internal/core/ports/services"
	"github.com/SscSPs/accounting_backoffice/internal/handlers"
	"github.com/SscSPs/accounting_backoffice/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

const (
	fixedTransferID   = "0b6f2f0e-5c1d-4d3a-9a61-2f1e8c0b7a01"
	fixedBudgetID     = "0b6f2f0e-5c1d-4d3a-9a61-2f1e8c0b7a02"
	fixedAdjustmentID = "0b6f2f0e-5c1d-4d3a-9a61-2f1e8c0b7a03"
	fixedVoucherID    = "0b6f2f0e-5c1d-4d3a-9a61-2f1e8c0b7a04"
)

// apiTestSuite wires every handler against mocked services behind the real auth middleware.
type apiTestSuite struct {
	suite.Suite
	router        *gin.Engine
	userID        string
	mockAccounts  *MockAccountService
	mockJournals  *MockJournalEntryService
	mockTransfers *MockBankTransferService
	mockVouchers  *MockVoucherService
	mockBudgets   *MockBudgetService
}

func (s *apiTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.Require().NoError(handlers.RegisterValidators())

	s.userID = uuid.NewString()
	s.mockAccounts = new(MockAccountService)
	s.mockJournals = new(MockJournalEntryService)
	s.mockTransfers = new(MockBankTransferService)
	s.mockVouchers = new(MockVoucherService)
	s.mockBudgets = new(MockBudgetService)

	s.router = gin.New()
	v1 := s.router.Group("/api/v1", middleware.AuthMiddleware(testJWTSecret, ""))
	handlers.RegisterAPIRoutes(v1, &portssvc.ServiceContainer{
		Account:      s.mockAccounts,
		JournalEntry: s.mockJournals,
		BankTransfer: s.mockTransfers,
		Voucher:      s.mockVouchers,
		Budget:       s.mockBudgets,
	})
}

func (s *apiTestSuite) TearDownTest() {
	s.mockAccounts.AssertExpectations(s.T())
	s.mockJournals.AssertExpectations(s.T())
	s.mockTransfers.AssertExpectations(s.T())
	s.mockVouchers.AssertExpectations(s.T())
	s.mockBudgets.AssertExpectations(s.T())
}

// generateTestToken creates a signed JWT for userID.
func (s *apiTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "backoffice-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

// do sends an authenticated request. A string body is sent verbatim, anything else as JSON.
func (s *apiTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		s.Require().NoError(err)
	}

	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	s.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+s.generateTestToken(s.userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiTestSuite) decode(w *httptest.ResponseRecorder, into any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), into), w.Body.String())
}
