package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/easayliu/pdf-store/internal/infrastructure/metrics"
	"github.com/easayliu/pdf-store/pkg/logger"
	"github.com/robfig/cron/v3"
)

// TempSweeper 可清理过期临时文件的存储
type TempSweeper interface {
	SweepTemp(maxAge time.Duration) (int, error)
}

// SweeperService 定时清理中断上传遗留的临时文件
type SweeperService struct {
	cron    *cron.Cron
	store   TempSweeper
	metrics *metrics.StorageMetrics
	spec    string
	maxAge  time.Duration
	mu      sync.Mutex
	running bool
}

// NewSweeperService 创建清理服务，spec 为 cron 表达式（支持 @every 1h 形式）
func NewSweeperService(store TempSweeper, m *metrics.StorageMetrics, spec string, maxAge time.Duration) (*SweeperService, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid cron expression: %w", err)
	}

	return &SweeperService{
		cron:    cron.New(), // 使用标准5字段格式（分 时 日 月 周）
		store:   store,
		metrics: m,
		spec:    spec,
		maxAge:  maxAge,
	}, nil
}

// Start 启动调度器
func (s *SweeperService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("sweeper already running")
	}

	if _, err := s.cron.AddFunc(s.spec, func() { _, _ = s.RunOnce() }); err != nil {
		return fmt.Errorf("failed to schedule sweeper: %w", err)
	}

	s.cron.Start()
	s.running = true
	logger.Info("Temp sweeper started", "schedule", s.spec, "max_age", s.maxAge)

	return nil
}

// Stop 停止调度器并等待正在执行的清理完成
func (s *SweeperService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		<-s.cron.Stop().Done()
		s.running = false
		logger.Info("Temp sweeper stopped")
	}
}

// RunOnce 立即执行一次清理
func (s *SweeperService) RunOnce() (int, error) {
	removed, err := s.store.SweepTemp(s.maxAge)
	if err != nil {
		logger.Error("Temp sweep failed", "error", err)
		return removed, err
	}

	s.metrics.AddTempFilesSwept(removed)
	if removed > 0 {
		logger.Info("Temp sweep completed", "removed", removed)
	}
	return removed, nil
}
