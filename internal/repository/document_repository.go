package repository

import (
	"context"
	"strconv"
	"strings"

	"github.com/ashwinyue/rag-gateway/internal/model"
	"gorm.io/gorm"
)

// documentRepositoryImpl 文档数据访问
type documentRepositoryImpl struct {
	db *gorm.DB
}

// NewDocumentRepository 创建文档仓库
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

// MatchDocuments 调用 match_documents 函数做相似度检索
// 函数签名：match_documents(query_embedding vector, match_threshold float8, match_count int)
// 返回 (title, content, similarity)，按相似度降序
func (r *documentRepositoryImpl) MatchDocuments(ctx context.Context, embedding []float64, threshold float64, limit int) ([]model.SearchResult, error) {
	var results []model.SearchResult
	err := r.db.WithContext(ctx).
		Raw("SELECT title, content, similarity FROM match_documents(?::vector, ?, ?)",
			vectorLiteral(embedding), threshold, limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// vectorLiteral 将向量编码为 pgvector 文本格式 [x1,x2,...]
func vectorLiteral(embedding []float64) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
	}
	sb.WriteByte(']')
	return sb.String()
}
