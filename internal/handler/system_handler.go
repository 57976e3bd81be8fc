package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/rag-gateway/internal/middleware"
	"github.com/ashwinyue/rag-gateway/internal/service"
)

// SystemHandler 系统处理器
type SystemHandler struct {
	svc *service.Services
}

// NewSystemHandler 创建系统处理器
func NewSystemHandler(svc *service.Services) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// Info 服务信息
// GET /
func (h *SystemHandler) Info(c *gin.Context) {
	cfg := h.svc.Config
	c.JSON(http.StatusOK, gin.H{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"endpoints": []string{
			"GET /",
			"GET /health",
			"GET /debug",
			"POST /embed",
			"POST /search",
			"POST /chat",
		},
	})
}

// Health 健康检查
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Debug 诊断回显
// GET /debug
func (h *SystemHandler) Debug(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"client_key": middleware.ResolveClientKey(c),
		"origin":     c.GetHeader("Origin"),
		"user_agent": c.GetHeader("User-Agent"),
		"time":       time.Now().Format(time.RFC3339),
	})
}
