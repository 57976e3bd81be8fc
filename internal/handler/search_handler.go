package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/rag-gateway/internal/service"
)

// SearchHandler 检索处理器
type SearchHandler struct {
	svc *service.Services
}

// NewSearchHandler 创建检索处理器
func NewSearchHandler(svc *service.Services) *SearchHandler {
	return &SearchHandler{svc: svc}
}

// SearchRequest 检索请求
// Limit 和 Threshold 可选，缺省取配置默认值
type SearchRequest struct {
	Query     string   `json:"query"`
	Limit     *int     `json:"limit"`
	Threshold *float64 `json:"threshold"`
}

// Search 相似度检索
// POST /search
func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.Query == "" {
		BadRequest(c, "query is required")
		return
	}

	threshold := h.svc.Config.Retrieval.SearchThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	limit := h.svc.Config.Retrieval.SearchLimit
	if req.Limit != nil && *req.Limit > 0 {
		limit = *req.Limit
	}

	result, err := h.svc.Retrieval.Retrieve(c.Request.Context(), req.Query, threshold, limit)
	if err != nil {
		UpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": result.Documents})
}
