package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/ashwinyue/rag-gateway/internal/config"
	"github.com/ashwinyue/rag-gateway/internal/database"
	"github.com/ashwinyue/rag-gateway/internal/handler"
	"github.com/ashwinyue/rag-gateway/internal/middleware"
	"github.com/ashwinyue/rag-gateway/internal/repository"
	"github.com/ashwinyue/rag-gateway/internal/router"
	"github.com/ashwinyue/rag-gateway/internal/service"
)

func main() {
	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 设置 Gin 模式
	gin.SetMode(cfg.Server.Mode)

	// 初始化数据库
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connected: %s", cfg.Database.DBName)

	// 初始化各层
	repos := repository.NewRepositories(db.DB)
	services, err := service.NewServices(repos, cfg)
	if err != nil {
		log.Fatalf("Failed to init services: %v", err)
	}
	handlers := handler.NewHandlers(services)

	// 初始化限流存储
	limiter := newRateLimitStore(cfg)

	// 初始化路由
	r := router.SetupRouter(handlers, services, limiter)

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// 启动服务器
	go func() {
		log.Printf("Server starting on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// 优雅关闭
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newRateLimitStore 按配置选择限流存储后端
func newRateLimitStore(cfg *config.Config) middleware.RateLimitStore {
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second

	if cfg.RateLimit.Store == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Printf("Rate limit store: redis (%s)", cfg.Redis.GetAddr())
		return middleware.NewRedisStore(redisClient, cfg.RateLimit.Limit, window)
	}

	log.Printf("Rate limit store: memory")
	return middleware.NewMemoryStore(cfg.RateLimit.Limit, window)
}
