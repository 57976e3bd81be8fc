// Package retrieval 提供向量化与相似度检索服务
package retrieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/retriever"

	"github.com/ashwinyue/rag-gateway/internal/model"
	"github.com/ashwinyue/rag-gateway/internal/repository"
)

// Service 检索服务
// 默认走存储端的 match_documents 向量检索；配置了 retriever 时走 Elasticsearch
type Service struct {
	embedder  embedding.Embedder
	docs      repository.DocumentRepository
	retriever retriever.Retriever
}

// NewService 创建检索服务
// esRetriever 可以为 nil，此时只使用 postgres 后端
func NewService(embedder embedding.Embedder, docs repository.DocumentRepository, esRetriever retriever.Retriever) *Service {
	return &Service{
		embedder:  embedder,
		docs:      docs,
		retriever: esRetriever,
	}
}

// Result 检索结果
type Result struct {
	Embedding []float64            `json:"embedding"`
	Documents []model.SearchResult `json:"documents"`
}

// Embed 将文本向量化
// 向量维度由模型决定，本地不做校验
func (s *Service) Embed(ctx context.Context, text string) ([]float64, error) {
	vectors, err := s.embedder.EmbedStrings(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed text: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedding returned no vectors")
	}
	return vectors[0], nil
}

// Retrieve 向量化查询并检索相似文档
func (s *Service) Retrieve(ctx context.Context, query string, threshold float64, limit int) (*Result, error) {
	vector, err := s.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	var docs []model.SearchResult
	if s.retriever != nil {
		docs, err = s.retrieveES(ctx, query, threshold, limit)
	} else {
		docs, err = s.docs.MatchDocuments(ctx, vector, threshold, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search documents: %w", err)
	}

	if docs == nil {
		docs = []model.SearchResult{}
	}

	return &Result{Embedding: vector, Documents: docs}, nil
}

// retrieveES 通过 Elasticsearch 稠密向量检索
func (s *Service) retrieveES(ctx context.Context, query string, threshold float64, limit int) ([]model.SearchResult, error) {
	found, err := s.retriever.Retrieve(ctx, query, retriever.WithTopK(limit))
	if err != nil {
		return nil, err
	}

	results := make([]model.SearchResult, 0, len(found))
	for _, doc := range found {
		if doc.Score() < threshold {
			continue
		}
		title, _ := doc.MetaData["title"].(string)
		results = append(results, model.SearchResult{
			Title:      title,
			Content:    doc.Content,
			Similarity: doc.Score(),
		})
	}
	return results, nil
}

// BuildContext 将检索结果拼接为模型上下文
// 没有命中时返回空字符串，空串仍会被插入系统提示词
func BuildContext(docs []model.SearchResult) string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.Title+": "+doc.Content)
	}
	return strings.Join(parts, "\n\n")
}
