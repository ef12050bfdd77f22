package middleware

import (
	"github.com/easayliu/pdf-store/internal/infrastructure/ratelimit"
	apperrors "github.com/easayliu/pdf-store/internal/shared/errors"
	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware 按客户端IP限流，超限返回429
func RateLimitMiddleware(limiter *ratelimit.ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			_ = c.Error(apperrors.NewServiceError(apperrors.ErrorCodeRateLimit, "Too many requests"))
			c.Abort()
			return
		}
		c.Next()
	}
}
