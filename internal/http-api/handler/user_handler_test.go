package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/handler"
	"titlehub/internal/http-api/middleware"
	"titlehub/internal/http-api/models"
	"titlehub/internal/http-api/service"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserService) Create(ctx context.Context, in dto.CreateUserDTO) (*models.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, username string, in dto.UpdateUserDTO) (*models.User, error) {
	args := m.Called(ctx, username, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateSelf(ctx context.Context, id string, in dto.UpdateUserDTO) (*models.User, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func setupUserRouter(svc service.UserService, authService service.AuthService) *gin.Engine {
	r := gin.New()
	v1 := r.Group("/v1")
	handler.NewUserHandler(svc).RegisterRoutes(v1, middleware.AuthMiddleware(authService))
	return r
}

func TestListUsers_Admin(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	users := []models.User{
		{ID: "u-1", Username: "reader", Email: "reader@example.com", Role: models.RoleUser},
		{ID: "m-1", Username: "mod", Email: "mod@example.com", Role: models.RoleModerator},
	}
	svc.On("List", mock.Anything, 1, 20).Return(users, int64(2), nil)

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodGet, "/v1/users", "", "admin-token")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []dto.UserResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, "moderator", resp.Data[1].Role)
}

func TestListUsers_PlainUserForbidden(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"user-token": userClaims("u-1", "reader")})

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodGet, "/v1/users", "", "user-token")

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestListUsers_Anonymous(t *testing.T) {
	r := setupUserRouter(new(MockUserService), newAuthBackend(nil))
	w := doRequest(t, r, http.MethodGet, "/v1/users", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUser_Admin(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("Create", mock.Anything, mock.MatchedBy(func(in dto.CreateUserDTO) bool {
		return in.Username == "mod" && in.Role != nil && *in.Role == models.RoleModerator
	})).Return(&models.User{ID: "m-1", Username: "mod", Email: "mod@example.com", Role: models.RoleModerator}, nil)

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodPost, "/v1/users",
		`{"username":"mod","email":"mod@example.com","role":"moderator"}`, "admin-token")

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateUser_UnknownRole(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("Create", mock.Anything, mock.Anything).Return(nil, service.ErrUnknownRole)

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodPost, "/v1/users",
		`{"username":"x","email":"x@example.com","role":"overlord"}`, "admin-token")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetUser_Admin(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("GetByUsername", mock.Anything, "reader").
		Return(&models.User{ID: "u-1", Username: "reader", Role: models.RoleUser}, nil)

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodGet, "/v1/users/reader", "", "admin-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"reader"`)
}

func TestGetUser_NotFound(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("GetByUsername", mock.Anything, "ghost").Return(nil, service.ErrNotFound)

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodGet, "/v1/users/ghost", "", "admin-token")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMe(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"user-token": userClaims("u-1", "reader")})

	svc.On("GetByID", mock.Anything, "u-1").
		Return(&models.User{ID: "u-1", Username: "reader", Email: "reader@example.com", Role: models.RoleUser}, nil)

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodGet, "/v1/users/me", "", "user-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u-1"`)
}

func TestMe_Anonymous(t *testing.T) {
	r := setupUserRouter(new(MockUserService), newAuthBackend(nil))
	w := doRequest(t, r, http.MethodGet, "/v1/users/me", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateMe_RoleIgnored(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"user-token": userClaims("u-1", "reader")})

	// the service keeps the stored role whatever the payload says
	svc.On("UpdateSelf", mock.Anything, "u-1", mock.MatchedBy(func(in dto.UpdateUserDTO) bool {
		return in.Role != nil && *in.Role == models.RoleAdmin
	})).Return(&models.User{ID: "u-1", Username: "reader", Bio: "hi", Role: models.RoleUser}, nil)

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodPatch, "/v1/users/me", `{"bio":"hi","role":"admin"}`, "user-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"user"`)
}

func TestDeleteUser_Admin(t *testing.T) {
	svc := new(MockUserService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("Delete", mock.Anything, "reader").Return(nil)

	r := setupUserRouter(svc, auth)
	w := doRequest(t, r, http.MethodDelete, "/v1/users/reader", "", "admin-token")

	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}
