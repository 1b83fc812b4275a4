package middleware

import (
	"time"

	"book-catalog/internal/shared/apperror"
	"book-catalog/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit giới hạn số request/phút cho một route (token bucket dùng chung).
// perMinute <= 0 thì không giới hạn.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)

	return func(c *gin.Context) {
		if !limiter.Allow() {
			response.Fail(c, apperror.RateLimited("Too many requests, please retry later."))
			c.Abort()
			return
		}
		c.Next()
	}
}
