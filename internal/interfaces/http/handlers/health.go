package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	storageRoot string
}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler(storageRoot string) *HealthHandler {
	return &HealthHandler{storageRoot: storageRoot}
}

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态及存储目录可用性
// @Tags 健康检查
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/v1/health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if info, err := os.Stat(h.storageRoot); err != nil || !info.IsDir() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "Storage root is not available",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "PDF store service is running",
	})
}
