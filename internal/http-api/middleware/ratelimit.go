package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns a per-client-IP token bucket middleware. The auth
// endpoints sit behind it so a single caller cannot spam confirmation mail.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	var limiters sync.Map

	return func(c *gin.Context) {
		ip := c.ClientIP()
		v, _ := limiters.LoadOrStore(ip, rate.NewLimiter(rate.Limit(perSecond), burst))
		limiter := v.(*rate.Limiter)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
