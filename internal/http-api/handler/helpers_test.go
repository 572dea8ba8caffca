package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// MockAuthService backs the real auth middleware in handler tests; routes
// are exercised through the same chain production uses.
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) RequestConfirmationCode(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ExchangeConfirmationCode(ctx context.Context, email, code string) (string, string, error) {
	args := m.Called(ctx, email, code)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func userClaims(id, username string) *service.Claims {
	return &service.Claims{UserID: id, Username: username, Role: models.RoleUser}
}

func moderatorClaims(id, username string) *service.Claims {
	return &service.Claims{UserID: id, Username: username, Role: models.RoleModerator}
}

func adminClaims(id, username string) *service.Claims {
	return &service.Claims{UserID: id, Username: username, Role: models.RoleAdmin}
}

// newAuthBackend returns an auth service mock that accepts one token per
// configured claims set.
func newAuthBackend(byToken map[string]*service.Claims) *MockAuthService {
	m := new(MockAuthService)
	for token, claims := range byToken {
		m.On("ValidateToken", token).Return(claims, nil)
	}
	m.On("ValidateToken", mock.Anything).Return(nil, service.ErrInvalidToken)
	return m
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req, err := http.NewRequest(method, path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
