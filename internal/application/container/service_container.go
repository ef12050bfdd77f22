package container

import (
	"fmt"

	"github.com/easayliu/pdf-store/internal/application/contracts"
	"github.com/easayliu/pdf-store/internal/application/services"
	"github.com/easayliu/pdf-store/internal/infrastructure/config"
	"github.com/easayliu/pdf-store/internal/infrastructure/filesystem"
	"github.com/easayliu/pdf-store/internal/infrastructure/metrics"
	"github.com/easayliu/pdf-store/internal/infrastructure/ratelimit"
	"github.com/easayliu/pdf-store/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServiceContainer 服务容器 - 实现依赖注入
type ServiceContainer struct {
	config *config.Config

	// 基础设施
	fileStore   *filesystem.FileStore
	registry    *prometheus.Registry
	metrics     *metrics.StorageMetrics
	rateLimiter *ratelimit.ClientRateLimiter

	// 应用层服务
	storageService *services.StorageService
	sweeperService *services.SweeperService
}

// NewServiceContainer 创建服务容器
// 存储根目录在此解析并创建，之后整个进程生命周期内不变。
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	logger.Info("Initializing service container")

	rootDir, err := filesystem.ResolveStorageRoot(cfg.Storage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := filesystem.EnsureDirectory(rootDir); err != nil {
		return nil, err
	}

	store, err := filesystem.NewFileStore(rootDir)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	storageMetrics, err := metrics.NewStorageMetrics(registry)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	c := &ServiceContainer{
		config:         cfg,
		fileStore:      store,
		registry:       registry,
		metrics:        storageMetrics,
		rateLimiter:    ratelimit.NewClientRateLimiter(cfg.RateLimit.QPS, cfg.RateLimit.Burst),
		storageService: services.NewStorageService(store, storageMetrics, cfg.Storage.AllowedMIMETypes),
	}

	if cfg.Storage.SweepCron != "" {
		c.sweeperService, err = services.NewSweeperService(store, storageMetrics, cfg.Storage.SweepCron, cfg.Storage.TempMaxAge)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	logger.Info("Service container initialized", "storage_root", rootDir)
	return c, nil
}

// Start 启动后台任务
func (c *ServiceContainer) Start() error {
	if c.sweeperService == nil {
		return nil
	}
	// 启动时先清理一次上次进程遗留的临时文件
	if _, err := c.sweeperService.RunOnce(); err != nil {
		logger.Warn("Initial temp sweep failed", "error", err)
	}
	return c.sweeperService.Start()
}

// Close 停止后台任务并释放存储根目录句柄
func (c *ServiceContainer) Close() error {
	if c.sweeperService != nil {
		c.sweeperService.Stop()
	}
	return c.fileStore.Close()
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// GetStorageService 获取存储服务
func (c *ServiceContainer) GetStorageService() contracts.StorageService {
	return c.storageService
}

// GetStorageRoot 获取存储根目录
func (c *ServiceContainer) GetStorageRoot() string {
	return c.fileStore.RootDir()
}

// GetRegistry 获取指标注册表
func (c *ServiceContainer) GetRegistry() *prometheus.Registry {
	return c.registry
}

// GetRateLimiter 获取限流器
func (c *ServiceContainer) GetRateLimiter() *ratelimit.ClientRateLimiter {
	return c.rateLimiter
}
