// Package repository 定义数据访问接口
// 接口抽象使依赖注入和单元测试成为可能
package repository

import (
	"context"

	"github.com/ashwinyue/rag-gateway/internal/model"
)

// ========== ChatRepository 接口 ==========

// ChatRepository 聊天数据访问接口
// 接口定义使 Service 层可以轻松 mock 进行单元测试
type ChatRepository interface {
	// 会话操作
	CreateSession(ctx context.Context, session *model.ChatSession) error
	// GetSessionByIDAndUser 按 id 和 user_id 双条件查询
	// 归属关系靠过滤条件保证，查不到返回 gorm.ErrRecordNotFound
	GetSessionByIDAndUser(ctx context.Context, id, userID string) (*model.ChatSession, error)

	// 消息操作
	// CreateMessages 单条批量 INSERT 写入整个对话轮次
	CreateMessages(ctx context.Context, messages []*model.ChatMessage) error
	// GetRecentMessages 返回会话最近 limit 条消息，按创建时间升序
	GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]*model.ChatMessage, error)
}

// ========== DocumentRepository 接口 ==========

// DocumentRepository 文档检索数据访问接口
type DocumentRepository interface {
	// MatchDocuments 调用存储端的 match_documents 函数做向量相似度检索
	MatchDocuments(ctx context.Context, embedding []float64, threshold float64, limit int) ([]model.SearchResult, error)
}

// ========== AuthRepository 接口 ==========

// AuthRepository 用户数据访问接口
type AuthRepository interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// 确保实现满足接口
var (
	_ ChatRepository     = (*chatRepositoryImpl)(nil)
	_ DocumentRepository = (*documentRepositoryImpl)(nil)
	_ AuthRepository     = (*authRepositoryImpl)(nil)
)
