package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/opd-booking/internal/handler"
)

// RateLimiter bounds how fast commands reach the booking core. The app
// serves one interactive session, so a single global limiter is enough;
// there is no per-client state.
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// RateLimit rejects requests over the limit with the app's error envelope.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				handler.NewErrorResponse("too many requests, slow down"))
			return
		}
		c.Next()
	}
}
