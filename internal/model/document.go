package model

import "time"

// Document 知识文档
// Embedding 列为 pgvector 类型，由入库侧写入；网关只做相似度查询
type Document struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Embedding string    `gorm:"type:vector(1536)" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SearchResult 相似度检索命中
// 由 match_documents 返回，按相似度降序；请求结束即丢弃
type SearchResult struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
}

// TableName 指定表名
func (Document) TableName() string {
	return "documents"
}
