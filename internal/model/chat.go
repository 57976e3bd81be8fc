package model

import "time"

// ChatSession 聊天会话
// 会话归属于创建它的 UserID，查询时始终带 user_id 过滤
type ChatSession struct {
	ID        string        `gorm:"primaryKey;size:36" json:"id"`
	UserID    string        `gorm:"index;size:36" json:"user_id"`
	Title     string        `gorm:"size:255" json:"title"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	Messages  []ChatMessage `gorm:"foreignKey:SessionID" json:"-"`
}

// ChatMessage 聊天消息
// 只追加，网关不修改也不删除历史消息
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	SessionID string    `gorm:"index;size:36" json:"session_id"`
	Role      string    `gorm:"size:20;index" json:"role"` // user, assistant, system
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName 指定表名
func (ChatSession) TableName() string {
	return "chat_sessions"
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
