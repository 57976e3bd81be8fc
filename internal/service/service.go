// Package service 聚合业务服务与 AI 组件
package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cloudwego/eino-ext/components/embedding/dashscope"
	openaiembed "github.com/cloudwego/eino-ext/components/embedding/openai"
	openaimodel "github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino-ext/components/retriever/es8"
	"github.com/cloudwego/eino-ext/components/retriever/es8/search_mode"
	"github.com/cloudwego/eino/components/embedding"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/retriever"
	"github.com/elastic/go-elasticsearch/v8"

	"github.com/ashwinyue/rag-gateway/internal/config"
	"github.com/ashwinyue/rag-gateway/internal/repository"
	"github.com/ashwinyue/rag-gateway/internal/service/auth"
	"github.com/ashwinyue/rag-gateway/internal/service/chat"
	"github.com/ashwinyue/rag-gateway/internal/service/retrieval"
)

// Services 服务集合
type Services struct {
	// 业务服务
	Auth      *auth.Service
	Chat      *chat.Service
	Retrieval *retrieval.Service

	// 配置
	Config *config.Config

	// Eino 组件（直接使用 eino 类型，无封装）
	Embedder  embedding.Embedder
	ChatModel model.BaseChatModel
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config) (*Services, error) {
	ctx := context.Background()

	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	embedder, err := newEmbedder(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	// Elasticsearch 检索后端可选，缺省走 postgres 的 match_documents
	var esRetriever retriever.Retriever
	if cfg.Retrieval.Backend == "elasticsearch" {
		esRetriever = newES8Retriever(ctx, cfg, embedder)
	}

	retrievalSvc := retrieval.NewService(embedder, repo.Document, esRetriever)

	return &Services{
		Auth: auth.NewService(repo.Auth, cfg.Auth.JWTSecret),
		Chat: chat.NewService(
			repo.Chat,
			retrievalSvc,
			chatModel,
			cfg.Retrieval.ChatThreshold,
			cfg.Retrieval.ChatTopK,
		),
		Retrieval: retrievalSvc,

		Config:    cfg,
		Embedder:  embedder,
		ChatModel: chatModel,
	}, nil
}

// newChatModel 创建 ChatModel
func newChatModel(ctx context.Context, cfg *config.Config) (model.BaseChatModel, error) {
	aiCfg := cfg.AI

	var apiKey, baseURL, modelName string

	switch aiCfg.Provider {
	case "openai", "":
		apiKey = aiCfg.OpenAI.APIKey
		baseURL = aiCfg.OpenAI.BaseURL
		modelName = aiCfg.OpenAI.Model
	case "alibaba", "qwen", "dashscope":
		apiKey = aiCfg.DashScope.APIKey
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
		modelName = aiCfg.DashScope.Model
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", aiCfg.Provider)
	}

	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	return openaimodel.NewChatModel(ctx, &openaimodel.ChatModelConfig{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   modelName,
	})
}

// newEmbedder 创建 Embedding 器
func newEmbedder(ctx context.Context, cfg *config.Config) (embedding.Embedder, error) {
	embCfg := cfg.AI.Embedding

	if embCfg.APIKey == "" {
		return nil, fmt.Errorf("embedding api_key is required")
	}

	switch embCfg.Provider {
	case "openai", "":
		embConfig := &openaiembed.EmbeddingConfig{
			APIKey:  embCfg.APIKey,
			BaseURL: embCfg.BaseURL,
			Model:   embCfg.Model,
		}
		if embCfg.Timeout > 0 {
			embConfig.Timeout = time.Duration(embCfg.Timeout) * time.Second
		}
		if embCfg.Dimensions > 0 {
			embConfig.Dimensions = &embCfg.Dimensions
		}
		return openaiembed.NewEmbedder(ctx, embConfig)
	case "alibaba", "qwen", "dashscope":
		embConfig := &dashscope.EmbeddingConfig{
			APIKey: embCfg.APIKey,
			Model:  embCfg.Model,
		}
		if embCfg.Timeout > 0 {
			embConfig.Timeout = time.Duration(embCfg.Timeout) * time.Second
		}
		if embCfg.Dimensions > 0 {
			embConfig.Dimensions = &embCfg.Dimensions
		}
		return dashscope.NewEmbedder(ctx, embConfig)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", embCfg.Provider)
	}
}

// newES8Retriever 创建 ES8 检索器
func newES8Retriever(ctx context.Context, cfg *config.Config, embedder embedding.Embedder) retriever.Retriever {
	esCfg := cfg.Elastic

	if esCfg.Host == "" {
		log.Printf("Warning: elasticsearch host not configured")
		return nil
	}

	esClient, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esCfg.Host},
		Username:  esCfg.Username,
		Password:  esCfg.Password,
	})
	if err != nil {
		log.Printf("Warning: failed to create es client: %v", err)
		return nil
	}

	indexName := esCfg.IndexPrefix + "_documents"

	esRetriever, err := es8.NewRetriever(ctx, &es8.RetrieverConfig{
		Client:     esClient,
		Index:      indexName,
		TopK:       cfg.Retrieval.SearchLimit,
		SearchMode: search_mode.SearchModeDenseVectorSimilarity(search_mode.DenseVectorSimilarityTypeCosineSimilarity, "content_vector"),
		Embedding:  embedder,
	})
	if err != nil {
		log.Printf("Warning: failed to create retriever: %v", err)
		return nil
	}

	return esRetriever
}
