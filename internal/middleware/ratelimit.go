package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/ecosept/booking-api/internal/httperr"
)

// RateLimit applies a global token bucket across all clients. The API has
// no per-client fairness requirement; this is a blunt overload guard.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			httperr.Write(c, http.StatusTooManyRequests, "rate_limit_exceeded", "Слишком много запросов, попробуйте позже.")
			c.Abort()
			return
		}
		c.Next()
	}
}
