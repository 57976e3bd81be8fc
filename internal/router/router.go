// Package router 设置路由
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/rag-gateway/internal/handler"
	"github.com/ashwinyue/rag-gateway/internal/middleware"
	"github.com/ashwinyue/rag-gateway/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(h *handler.Handlers, svc *service.Services, limiter middleware.RateLimitStore) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// 中间件
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware(svc.Config.CORS.AllowedOrigins))
	r.Use(middleware.RateLimitMiddleware(limiter))

	// 公开路由
	r.GET("/", h.System.Info)
	r.GET("/health", h.System.Health)
	r.GET("/debug", h.System.Debug)
	r.POST("/embed", h.Embed.Embed)
	r.POST("/search", h.Search.Search)

	// 受保护路由
	r.POST("/chat", middleware.RequireAuth(svc.Auth), h.Chat.Chat)

	// 未匹配的路径和方法
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{
			Error:   "not_found",
			Message: "route not found",
		})
	})
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, handler.ErrorResponse{
			Error:   "method_not_allowed",
			Message: "method not allowed",
		})
	})

	return r
}
