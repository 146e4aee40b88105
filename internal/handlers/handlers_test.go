package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/project_ledger/internal/apperrors"
	"github.com/SscSPs/project_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/project_ledger/internal/core/ports/services"
	"github.com/SscSPs/project_ledger/internal/core/services"
	"github.com/SscSPs/project_ledger/internal/dto"
	"github.com/SscSPs/project_ledger/internal/handlers"
	"github.com/SscSPs/project_ledger/internal/platform/config"
	"github.com/SscSPs/project_ledger/internal/repositories/database/bolt"
	"github.com/SscSPs/project_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "project-ledger-test"
)

type HandlersTestSuite struct {
	suite.Suite
	router        *gin.Engine
	store         *bolt.DocumentStore
	ledgerSvc     *MockLedgerService
	projectSvc    *MockProjectService
	referenceSvc  *MockReferenceService
	identity      portssvc.IdentitySvcFacade
	userID, token string
}

func (suite *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	store, err := bolt.Open(filepath.Join(suite.T().TempDir(), "ledger.db"))
	suite.Require().NoError(err)
	suite.store = store

	suite.ledgerSvc = new(MockLedgerService)
	suite.projectSvc = new(MockProjectService)
	suite.referenceSvc = new(MockReferenceService)
	suite.identity = services.NewIdentityService(store, services.IdentityConfig{
		JWTSecret: testSecret,
		Issuer:    testIssuer,
		Expiry:    time.Hour,
	})

	suite.router = gin.New()
	cfg := &config.Config{IsProduction: true, LoginRateLimit: "3-M"}
	err = handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		Ledger:    suite.ledgerSvc,
		Project:   suite.projectSvc,
		Reference: suite.referenceSvc,
		Identity:  suite.identity,
	})
	suite.Require().NoError(err)

	suite.userID = uuid.NewString()
	suite.token = suite.generateTestToken(suite.userID)
}

func (suite *HandlersTestSuite) TearDownTest() {
	suite.NoError(suite.store.Close())
}

// generateTestToken signs a session token the auth middleware accepts.
func (suite *HandlersTestSuite) generateTestToken(userID string) string {
	token, _, err := utils.GenerateJWT(userID, testSecret, testIssuer, time.Now(), time.Hour)
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *HandlersTestSuite) do(method, url string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sessionFor(userID string) any {
	return mock.MatchedBy(func(s *domain.Session) bool { return s != nil && s.UserID == userID })
}

// --- Auth ---

func (suite *HandlersTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlersTestSuite) TestProtectedRoutesRequireToken() {
	w := suite.do(http.MethodGet, "/api/v1/projects", nil, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/projects", nil, "not-a-jwt")
	suite.Equal(http.StatusUnauthorized, w.Code)

	expired, _, err := utils.GenerateJWT(suite.userID, testSecret, testIssuer, time.Now().Add(-2*time.Hour), time.Hour)
	suite.Require().NoError(err)
	w = suite.do(http.MethodGet, "/api/v1/projects", nil, expired)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Contains(w.Body.String(), "Token has expired")

	suite.projectSvc.AssertNotCalled(suite.T(), "ListProjects", mock.Anything)
}

func (suite *HandlersTestSuite) TestSignUpLoginMeLogout() {
	w := suite.do(http.MethodPost, "/api/v1/auth/signup", dto.SignUpRequest{Email: "me@example.com", Password: "secret-pw"}, "")
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var signUp dto.SignUpResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &signUp))

	w = suite.do(http.MethodPost, "/api/v1/auth/signup", dto.SignUpRequest{Email: "me@example.com", Password: "secret-pw"}, "")
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "me@example.com", Password: "wrong-pw"}, "")
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "me@example.com", Password: "secret-pw"}, "")
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var login dto.LoginResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &login))
	suite.Equal(signUp.UserID, login.UserID)

	w = suite.do(http.MethodGet, "/api/v1/auth/me", nil, login.Token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), signUp.UserID)

	w = suite.do(http.MethodPost, "/api/v1/auth/logout", nil, login.Token)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/auth/me", nil, login.Token)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlersTestSuite) TestSignUp_ShortPassword() {
	w := suite.do(http.MethodPost, "/api/v1/auth/signup", dto.SignUpRequest{Email: "me@example.com", Password: "123"}, "")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlersTestSuite) TestLogin_RateLimited() {
	var last int
	for i := 0; i < 4; i++ {
		last = suite.do(http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: "x@example.com", Password: "whatever"}, "").Code
	}
	suite.Equal(http.StatusTooManyRequests, last)
}

// --- Projects ---

func (suite *HandlersTestSuite) TestCreateProject() {
	req := dto.CreateProjectRequest{Name: "Trip", Description: "Summer"}
	suite.projectSvc.On("CreateProject", mock.Anything, req, sessionFor(suite.userID)).
		Return(&domain.Project{ProjectID: "p1", Name: "Trip", OwnerID: suite.userID}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/projects", req, suite.token)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var res dto.ProjectResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Equal("p1", res.ProjectID)
	suite.Equal(suite.userID, res.OwnerID)
	suite.projectSvc.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestCreateProject_MissingName() {
	w := suite.do(http.MethodPost, "/api/v1/projects", map[string]string{"description": "x"}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.projectSvc.AssertNotCalled(suite.T(), "CreateProject", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlersTestSuite) TestGetProject_NotFound() {
	suite.projectSvc.On("GetProject", mock.Anything, "nope").Return(nil, apperrors.ErrNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/projects/nope", nil, suite.token)
	suite.Equal(http.StatusNotFound, w.Code)
}

// --- Ledger ---

func (suite *HandlersTestSuite) TestGetLedger() {
	res := &dto.LedgerResponse{
		Project:        &dto.ProjectResponse{ProjectID: "p1", Name: "Trip"},
		Transactions:   []dto.TransactionResponse{{TransactionID: "t1", Amount: decimal.NewFromInt(-500), DisplayDate: "2024-03-01"}},
		Balance:        decimal.NewFromInt(-500),
		BalanceDisplay: "-500",
		State:          "ready",
	}
	suite.ledgerSvc.On("GetLedger", mock.Anything, "p1").Return(res, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/projects/p1/ledger", nil, suite.token)

	suite.Require().Equal(http.StatusOK, w.Code)
	var body dto.LedgerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body.Transactions, 1)
	suite.Equal("t1", body.Transactions[0].TransactionID)
	suite.True(body.Balance.Equal(decimal.NewFromInt(-500)))
}

func (suite *HandlersTestSuite) TestAddTransaction() {
	amount := decimal.NewFromInt(500)
	req := dto.AddTransactionRequest{
		Description: "Rent", Amount: &amount, Category: "Housing", Account: "Checking",
		Type: "expense", Date: "2024-03-01",
	}
	suite.ledgerSvc.On("AddTransaction", mock.Anything, "p1", mock.MatchedBy(func(r dto.AddTransactionRequest) bool {
		return r.Description == "Rent" && r.Amount.Equal(amount) && r.Type == "expense"
	}), sessionFor(suite.userID)).Return(&dto.LedgerResponse{State: "ready"}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/projects/p1/transactions", req, suite.token)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	suite.ledgerSvc.AssertExpectations(suite.T())
}

func (suite *HandlersTestSuite) TestAddTransaction_Errors() {
	tests := []struct {
		name       string
		body       map[string]any
		serviceErr error
		wantStatus int
	}{
		{name: "unknown type rejected by binding", body: map[string]any{"description": "x", "amount": "1", "category": "c", "account": "a", "type": "gift", "date": "2024-03-01"}, wantStatus: http.StatusBadRequest},
		{name: "missing amount", body: map[string]any{"description": "x", "category": "c", "account": "a", "type": "income", "date": "2024-03-01"}, wantStatus: http.StatusBadRequest},
		{name: "validation from service", body: map[string]any{"description": "x", "amount": "-1", "category": "c", "account": "a", "type": "income", "date": "2024-03-01"}, serviceErr: fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation), wantStatus: http.StatusBadRequest},
		{name: "ambiguous write", body: map[string]any{"description": "x", "amount": "1", "category": "c", "account": "a", "type": "income", "date": "2024-03-01"}, serviceErr: fmt.Errorf("%w: %w: refetch failed", apperrors.ErrWrite, apperrors.ErrAmbiguousWrite), wantStatus: http.StatusBadGateway},
		{name: "store failure", body: map[string]any{"description": "x", "amount": "1", "category": "c", "account": "a", "type": "income", "date": "2024-03-01"}, serviceErr: apperrors.ErrWrite, wantStatus: http.StatusInternalServerError},
		{name: "store unavailable", body: map[string]any{"description": "x", "amount": "1", "category": "c", "account": "a", "type": "income", "date": "2024-03-01"}, serviceErr: apperrors.NewAppError(http.StatusServiceUnavailable, "document store unavailable", apperrors.ErrWrite), wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.ledgerSvc.ExpectedCalls = nil
			suite.ledgerSvc.Calls = nil
			if tt.serviceErr != nil {
				suite.ledgerSvc.On("AddTransaction", mock.Anything, "p1", mock.Anything, mock.Anything).Return(nil, tt.serviceErr).Once()
			}

			w := suite.do(http.MethodPost, "/api/v1/projects/p1/transactions", tt.body, suite.token)

			suite.Equal(tt.wantStatus, w.Code, w.Body.String())
			if tt.serviceErr == nil {
				suite.ledgerSvc.AssertNotCalled(suite.T(), "AddTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func (suite *HandlersTestSuite) TestDeleteTransaction_NotFound() {
	suite.ledgerSvc.On("DeleteTransaction", mock.Anything, "p1", "t9", sessionFor(suite.userID)).
		Return(nil, fmt.Errorf("transaction t9: %w", apperrors.ErrNotFound)).Once()

	w := suite.do(http.MethodDelete, "/api/v1/projects/p1/transactions/t9", nil, suite.token)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlersTestSuite) TestCopyAndHighlight() {
	suite.ledgerSvc.On("CopyTransactionID", mock.Anything, "p1", "t1").Return("t1", nil).Once()
	suite.ledgerSvc.On("HighlightLinked", mock.Anything, "p1", "t1").Return([]string{"t1"}, nil).Once()
	suite.ledgerSvc.On("HighlightLinked", mock.Anything, "p1", "gone").Return(nil, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/projects/p1/transactions/t1/link", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"transactionID":"t1"}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/projects/p1/transactions/t1/highlight", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"targetID":"t1","highlighted":["t1"]}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/projects/p1/transactions/gone/highlight", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"targetID":"gone","highlighted":[]}`, w.Body.String())
}

// --- Reference data ---

func (suite *HandlersTestSuite) TestCreateCategory_ReturnsFullList() {
	req := dto.CreateCategoryRequest{Name: "Food"}
	suite.referenceSvc.On("CreateCategory", mock.Anything, req).Return(&domain.Category{CategoryID: "c2", Name: "Food"}, nil).Once()
	suite.referenceSvc.On("ListCategories", mock.Anything).Return([]domain.Category{
		{CategoryID: "c1", Name: "Housing"},
		{CategoryID: "c2", Name: "Food"},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/categories", req, suite.token)

	suite.Require().Equal(http.StatusCreated, w.Code)
	var res []dto.CategoryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &res))
	suite.Len(res, 2)
}

func (suite *HandlersTestSuite) TestAccounts() {
	suite.referenceSvc.On("CreateAccount", mock.Anything, dto.CreateAccountRequest{Name: " "}).
		Return(nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)).Once()
	suite.referenceSvc.On("ListAccounts", mock.Anything).Return([]domain.Account{{AccountID: "a1", Name: "Checking"}}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{Name: " "}, suite.token)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/accounts", nil, suite.token)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[{"accountID":"a1","name":"Checking"}]`, w.Body.String())
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
