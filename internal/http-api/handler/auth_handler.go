package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"titlehub/internal/http-api/dto"
	"titlehub/internal/http-api/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the auth endpoints; the caller attaches rate
// limiting on the group.
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/mail", h.RequestCode)
	rg.POST("/token", h.ExchangeCode)
	rg.POST("/refresh", h.Refresh)
}

// RequestCode handles POST /v1/auth/mail
func (h *AuthHandler) RequestCode(c *gin.Context) {
	var req dto.EmailRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.RequestConfirmationCode(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, service.ErrMailDispatch) {
			// no transport detail leaks to the caller
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not send the confirmation code"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "confirmation code sent"})
}

// ExchangeCode handles POST /v1/auth/token
func (h *AuthHandler) ExchangeCode(c *gin.Context) {
	var req dto.ConfirmationRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, refresh, err := h.authService.ExchangeConfirmationCode(c.Request.Context(), req.Email, req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		case errors.Is(err, service.ErrBadConfirmationCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "wrong confirmation code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	access, err := h.authService.RefreshAccessToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) || errors.Is(err, service.ErrExpiredRefreshToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{AccessToken: access})
}
