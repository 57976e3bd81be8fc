package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/rag-gateway/internal/service"
)

// EmbedHandler 向量化处理器
type EmbedHandler struct {
	svc *service.Services
}

// NewEmbedHandler 创建向量化处理器
func NewEmbedHandler(svc *service.Services) *EmbedHandler {
	return &EmbedHandler{svc: svc}
}

// EmbedRequest 向量化请求
type EmbedRequest struct {
	Text string `json:"text"`
}

// Embed 文本向量化
// POST /embed
func (h *EmbedHandler) Embed(c *gin.Context) {
	var req EmbedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}
	if req.Text == "" {
		BadRequest(c, "text is required")
		return
	}

	embedding, err := h.svc.Retrieval.Embed(c.Request.Context(), req.Text)
	if err != nil {
		UpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"embedding": embedding})
}
