package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Limkon/Netnope-sub000/internal/config"
	"github.com/Limkon/Netnope-sub000/internal/routes"
	"github.com/Limkon/Netnope-sub000/internal/session"
	"github.com/Limkon/Netnope-sub000/internal/storage"
	"github.com/Limkon/Netnope-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载环境变量
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// 初始化配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	logger.Init(cfg.Log)

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	// 初始化存储
	store, err := storage.NewFileStore(cfg.Storage.DataPath, cfg.Storage.UploadPath)
	if err != nil {
		log.Fatalf("Failed to init storage: %v", err)
	}

	// 初始化会话管理器
	sessions := session.NewManager(routes.SessionTTL(cfg), routes.SweepInterval(cfg))
	defer sessions.Stop()

	// 初始化路由
	router := routes.Setup(store, sessions, cfg)

	// 启动服务器
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// 等待退出信号后优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
