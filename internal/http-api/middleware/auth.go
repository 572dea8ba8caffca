package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"titlehub/internal/http-api/permissions"
	"titlehub/internal/http-api/service"
)

const identityKey = "identity"

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the
// Authorization header and rejects requests without one.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		claims, ok := parseBearer(c, authService, authHeader)
		if !ok {
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a bearer token
// is present but lets anonymous requests through. Read endpoints use it so
// object-level checks still see who is asking.
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		claims, ok := parseBearer(c, authService, authHeader)
		if !ok {
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

func parseBearer(c *gin.Context, authService service.AuthService, authHeader string) (*service.Claims, bool) {
	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		c.Abort()
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *service.Claims) {
	c.Set(identityKey, permissions.Identity{
		UserID:        claims.UserID,
		Username:      claims.Username,
		Role:          claims.Role,
		Staff:         claims.IsStaff,
		Authenticated: true,
	})
}

// CurrentIdentity returns the caller's identity, or the anonymous identity
// when no auth middleware ran or no token was presented.
func CurrentIdentity(c *gin.Context) permissions.Identity {
	v, exists := c.Get(identityKey)
	if !exists {
		return permissions.Anonymous
	}
	id, ok := v.(permissions.Identity)
	if !ok {
		return permissions.Anonymous
	}
	return id
}

// RequireAdmin gates the admin-only routes: staff flag or admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !permissions.IsAdminOrSuperuser(CurrentIdentity(c)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
