package repository

import (
	"context"

	"github.com/ashwinyue/rag-gateway/internal/model"
	"gorm.io/gorm"
)

// chatRepositoryImpl 聊天数据访问
type chatRepositoryImpl struct {
	db *gorm.DB
}

// NewChatRepository 创建聊天仓库
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepositoryImpl{db: db}
}

// CreateSession 创建会话
func (r *chatRepositoryImpl) CreateSession(ctx context.Context, session *model.ChatSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

// GetSessionByIDAndUser 获取会话，按 id 和 user_id 双条件过滤
func (r *chatRepositoryImpl) GetSessionByIDAndUser(ctx context.Context, id, userID string) (*model.ChatSession, error) {
	var session model.ChatSession
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateMessages 批量创建消息，整轮对话落在一条 INSERT 里
func (r *chatRepositoryImpl) CreateMessages(ctx context.Context, messages []*model.ChatMessage) error {
	if len(messages) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&messages).Error
}

// GetRecentMessages 获取会话最近 limit 条消息
// 先按时间倒序取最近的，再反转为升序返回，供拼接提示词使用
func (r *chatRepositoryImpl) GetRecentMessages(ctx context.Context, sessionID string, limit int) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
