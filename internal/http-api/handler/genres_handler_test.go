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

type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) GetAll(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreService) Create(ctx context.Context, g *models.Genre) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenreService) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func setupGenreRouter(svc service.GenreService, authService service.AuthService) *gin.Engine {
	r := gin.New()
	v1 := r.Group("/v1")
	handler.NewGenreHandler(svc).RegisterRoutes(v1, middleware.AuthMiddleware(authService))
	return r
}

func TestListGenres_Anonymous(t *testing.T) {
	svc := new(MockGenreService)
	genres := []models.Genre{
		{ID: 1, Name: "Drama", Slug: "drama"},
		{ID: 2, Name: "Comedy", Slug: "comedy"},
	}
	svc.On("GetAll", mock.Anything, "", 1, 20).Return(genres, int64(2), nil)

	r := setupGenreRouter(svc, newAuthBackend(nil))
	w := doRequest(t, r, http.MethodGet, "/v1/genres", "", "")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []dto.GenreResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	// internal ids never leak; genres are addressed by slug
	assert.NotContains(t, w.Body.String(), `"id"`)
}

func TestListGenres_Search(t *testing.T) {
	svc := new(MockGenreService)
	svc.On("GetAll", mock.Anything, "dra", 1, 20).
		Return([]models.Genre{{ID: 1, Name: "Drama", Slug: "drama"}}, int64(1), nil)

	r := setupGenreRouter(svc, newAuthBackend(nil))
	w := doRequest(t, r, http.MethodGet, "/v1/genres?search=dra", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestCreateGenre_Admin(t *testing.T) {
	svc := new(MockGenreService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("Create", mock.Anything, mock.MatchedBy(func(g *models.Genre) bool {
		return g.Name == "Horror" && g.Slug == "horror"
	})).Return(nil)

	r := setupGenreRouter(svc, auth)
	w := doRequest(t, r, http.MethodPost, "/v1/genres", `{"name":"Horror","slug":"horror"}`, "admin-token")

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateGenre_PlainUserForbidden(t *testing.T) {
	svc := new(MockGenreService)
	auth := newAuthBackend(map[string]*service.Claims{"user-token": userClaims("u-1", "reader")})

	r := setupGenreRouter(svc, auth)
	w := doRequest(t, r, http.MethodPost, "/v1/genres", `{"name":"Horror","slug":"horror"}`, "user-token")

	assert.Equal(t, http.StatusForbidden, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateGenre_DuplicateSlug(t *testing.T) {
	svc := new(MockGenreService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("Create", mock.Anything, mock.Anything).Return(service.ErrAlreadyExists)

	r := setupGenreRouter(svc, auth)
	w := doRequest(t, r, http.MethodPost, "/v1/genres", `{"name":"Drama","slug":"drama"}`, "admin-token")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteGenre_Admin(t *testing.T) {
	svc := new(MockGenreService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("Delete", mock.Anything, "drama").Return(nil)

	r := setupGenreRouter(svc, auth)
	w := doRequest(t, r, http.MethodDelete, "/v1/genres/drama", "", "admin-token")

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestDeleteGenre_NotFound(t *testing.T) {
	svc := new(MockGenreService)
	auth := newAuthBackend(map[string]*service.Claims{"admin-token": adminClaims("a-1", "boss")})

	svc.On("Delete", mock.Anything, "ghost").Return(service.ErrNotFound)

	r := setupGenreRouter(svc, auth)
	w := doRequest(t, r, http.MethodDelete, "/v1/genres/ghost", "", "admin-token")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
