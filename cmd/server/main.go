package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/easayliu/pdf-store/docs"
	"github.com/easayliu/pdf-store/internal/application/container"
	"github.com/easayliu/pdf-store/internal/infrastructure/config"
	"github.com/easayliu/pdf-store/internal/interfaces/http/routes"
	"github.com/easayliu/pdf-store/pkg/logger"
	"github.com/gin-gonic/gin"
)

// @title PDF Store API
// @version 1.0
// @description 基于Gin框架的PDF上传与删除服务

// @license.name MIT

// @host localhost:5000
// @BasePath /
// @schemes http
func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./configs/config.yaml 或 ./config.yaml）")
	flag.Parse()

	// 加载配置
	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadConfigFile(*configPath)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// 初始化日志
	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Close()

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	// 初始化服务容器
	c, err := container.NewServiceContainer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize service container:", err)
	}
	defer c.Close()

	if err := c.Start(); err != nil {
		log.Fatal("Failed to start background services:", err)
	}

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           routes.SetupRoutes(c),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	// 设置信号处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// 启动服务器
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", server.Addr, "storage_root", c.GetStorageRoot())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// 等待退出信号
	select {
	case <-quit:
	case err := <-serverErr:
		logger.Error("Server failed", "error", err)
	}
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}

	logger.Info("Server stopped")
}
