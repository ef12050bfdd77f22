package routes

import (
	"github.com/easayliu/pdf-store/internal/application/container"
	"github.com/easayliu/pdf-store/internal/interfaces/http/handlers"
	"github.com/easayliu/pdf-store/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// multipartMemory 上传表单在内存中保留的上限，超出部分写入临时文件
const multipartMemory = 8 << 20

// SetupRoutes 使用ServiceContainer设置路由
func SetupRoutes(c *container.ServiceContainer) *gin.Engine {
	cfg := c.GetConfig()

	router := gin.New()
	router.MaxMultipartMemory = multipartMemory
	// 直接使用连接的远端地址作为客户端IP
	_ = router.SetTrustedProxies(nil)

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowOrigins))
	router.Use(middleware.ErrorHandlerMiddleware())

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(c.GetRegistry(), promhttp.HandlerOpts{})))
	}

	storageHandler := handlers.NewStorageHandler(c.GetStorageService(), cfg.Storage.MaxUploadBytes())
	healthHandler := handlers.NewHealthHandler(c.GetStorageRoot())

	// 文件操作路由，与原有前端约定的路径保持一致
	files := router.Group("/", middleware.RateLimitMiddleware(c.GetRateLimiter()))
	{
		files.POST("/upload", storageHandler.Upload)
		files.POST("/delete", storageHandler.Delete)
	}

	api := router.Group("/api/v1")
	{
		api.GET("/health", healthHandler.HealthCheck)
	}

	return router
}
