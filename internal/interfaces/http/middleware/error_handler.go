package middleware

import (
	"net/http"

	apperrors "github.com/easayliu/pdf-store/internal/shared/errors"
	"github.com/easayliu/pdf-store/pkg/logger"
	"github.com/gin-gonic/gin"
)

// statusByCode 业务错误码到HTTP状态码的映射表
var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrorCodeInvalidRequest:   http.StatusBadRequest,
	apperrors.ErrorCodeInternalError:    http.StatusInternalServerError,
	apperrors.ErrorCodePayloadTooLarge:  http.StatusRequestEntityTooLarge,
	apperrors.ErrorCodeRateLimit:        http.StatusTooManyRequests,
	apperrors.ErrorCodeMethodNotAllowed: http.StatusMethodNotAllowed,
}

// StatusFor 将业务错误码映射到HTTP状态码，未知错误码返回500
func StatusFor(code apperrors.ErrorCode) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorHandlerMiddleware 统一错误处理中间件
// 捕获handler中通过 c.Error 设置的错误,转换为 {error, code} 响应
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if serviceErr, ok := apperrors.AsServiceError(err); ok {
			body := gin.H{
				"error": serviceErr.Message,
				"code":  serviceErr.Code,
			}
			if len(serviceErr.Details) > 0 {
				body["details"] = serviceErr.Details
			}
			c.JSON(StatusFor(serviceErr.Code), body)
			return
		}

		// 未知错误,返回500
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"code":  apperrors.ErrorCodeInternalError,
		})
	}
}

// RecoverMiddleware 恢复中间件 - 捕获panic并转换为500错误
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered", "panic", r, "path", c.Request.URL.Path)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  apperrors.ErrorCodeInternalError,
				})
			}
		}()
		c.Next()
	}
}
