package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plmc/internal/cache"
	"plmc/internal/clients"
	"plmc/internal/router"
	"plmc/internal/services"
	"plmc/pkg/config"
	"plmc/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting Property Lease Management Console...")

	// 初始化上游缓存（Redis不可用时降级为直连上游）
	store := cache.GetRedisCache()
	if store != nil {
		if err := store.Ping(); err != nil {
			appLogger.Warnf("Redis不可用，禁用上游缓存: %v", err)
			store = nil
		}
	}
	defer func() {
		if err := cache.CloseRedisCache(); err != nil {
			appLogger.Error("Failed to close Redis:", err)
		}
	}()

	// 创建协作服务客户端与核心服务
	cs := clients.New(cfg, store)
	sessions := services.NewSessionService(time.Duration(cfg.Console.SessionIdle) * time.Minute)
	views := services.NewViewService(cs.Property, cs.Request, cs.Tenant,
		time.Duration(cfg.Console.NotificationTTL)*time.Second)

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	// 启动控制台刷新调度器（在路由初始化前）
	refreshScheduler := services.NewRefreshScheduler(views, sessions, cfg.Console.RefreshCron)
	if err := refreshScheduler.Start(); err != nil {
		appLogger.Errorf("Failed to start refresh scheduler: %v", err)
		// 不影响主服务启动
	}
	defer refreshScheduler.Stop()

	// 设置路由
	r := router.SetupRouter(cs, views, sessions)

	// 启动服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 启动服务
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := server.Close(); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}
