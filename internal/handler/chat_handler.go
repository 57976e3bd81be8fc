package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ashwinyue/rag-gateway/internal/middleware"
	"github.com/ashwinyue/rag-gateway/internal/service"
	"github.com/ashwinyue/rag-gateway/internal/service/chat"
)

// ChatHandler 聊天处理器
type ChatHandler struct {
	svc *service.Services
}

// NewChatHandler 创建聊天处理器
func NewChatHandler(svc *service.Services) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// ChatRequest 聊天请求
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// Chat 处理一轮对话
// POST /chat
// 校验在调用任何协作方之前完成；校验或鉴权失败不产生外部调用
func (h *ChatHandler) Chat(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request body")
		return
	}

	if err := chat.ValidateMessage(req.Message); err != nil {
		BadRequest(c, err.Error())
		return
	}

	resp, err := h.svc.Chat.Send(c.Request.Context(), &chat.SendRequest{
		UserID:    userID,
		SessionID: req.SessionID,
		Message:   req.Message,
	})
	if err != nil {
		if errors.Is(err, chat.ErrSessionNotFound) {
			NotFound(c, "session not found")
			return
		}
		UpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
