// Package handler 提供 HTTP 处理器
package handler

import "github.com/ashwinyue/rag-gateway/internal/service"

// Handlers 处理器集合
type Handlers struct {
	System *SystemHandler
	Embed  *EmbedHandler
	Search *SearchHandler
	Chat   *ChatHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		System: NewSystemHandler(svc),
		Embed:  NewEmbedHandler(svc),
		Search: NewSearchHandler(svc),
		Chat:   NewChatHandler(svc),
	}
}
