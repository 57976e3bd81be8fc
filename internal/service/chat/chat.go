// Package chat 提供会话管理与 RAG 对话服务
package chat

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"
	"gorm.io/gorm"

	appmodel "github.com/ashwinyue/rag-gateway/internal/model"
	"github.com/ashwinyue/rag-gateway/internal/repository"
	"github.com/ashwinyue/rag-gateway/internal/service/retrieval"
)

const (
	// 拼入提示词的历史消息条数上限
	historyLimit = 10
	// 单次回复的 token 上限
	completionMaxTokens = 1000
	// 采样温度
	completionTemperature = float32(0.7)

	defaultSessionTitle = "New Chat"

	systemPromptFormat = `You are a helpful assistant. Answer the user's question using the context below.

Context:
%s

If the context does not contain enough information to answer, say you don't know instead of guessing.`
)

// ErrSessionNotFound 指定的会话不存在或不属于当前用户
var ErrSessionNotFound = errors.New("session not found")

// Retriever 检索协作方
type Retriever interface {
	Retrieve(ctx context.Context, query string, threshold float64, limit int) (*retrieval.Result, error)
}

// Service 聊天服务
type Service struct {
	repo      repository.ChatRepository
	retriever Retriever
	chatModel model.BaseChatModel
	threshold float64
	topK      int
}

// NewService 创建聊天服务
// threshold 和 topK 控制对话时的检索参数
func NewService(repo repository.ChatRepository, retriever Retriever, chatModel model.BaseChatModel, threshold float64, topK int) *Service {
	return &Service{
		repo:      repo,
		retriever: retriever,
		chatModel: chatModel,
		threshold: threshold,
		topK:      topK,
	}
}

// SendRequest 发送消息请求
type SendRequest struct {
	UserID    string
	SessionID string
	Message   string
}

// SendResponse 发送消息响应
type SendResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`
}

// Send 处理一轮对话：解析会话、检索上下文、调用模型、落库
// 落库在响应返回前同步执行，落库失败整个请求失败
func (s *Service) Send(ctx context.Context, req *SendRequest) (*SendResponse, error) {
	session, err := s.resolveSession(ctx, req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.GetRecentMessages(ctx, session.ID, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	result, err := s.retriever.Retrieve(ctx, req.Message, s.threshold, s.topK)
	if err != nil {
		return nil, err
	}

	messages := buildMessages(retrieval.BuildContext(result.Documents), history, req.Message)

	reply, err := s.chatModel.Generate(ctx, messages,
		model.WithMaxTokens(completionMaxTokens),
		model.WithTemperature(completionTemperature),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate completion: %w", err)
	}

	if err := s.record(ctx, session.ID, req.Message, reply.Content); err != nil {
		return nil, fmt.Errorf("failed to record messages: %w", err)
	}

	return &SendResponse{Response: reply.Content, SessionID: session.ID}, nil
}

// resolveSession 解析会话
// 未提供 sessionID 时创建新会话；提供时按 id+user_id 查询，
// 查不到返回 ErrSessionNotFound，不区分"不存在"和"不属于该用户"
func (s *Service) resolveSession(ctx context.Context, sessionID, userID string) (*appmodel.ChatSession, error) {
	if sessionID == "" {
		session := &appmodel.ChatSession{
			ID:     uuid.New().String(),
			UserID: userID,
			Title:  defaultSessionTitle,
		}
		if err := s.repo.CreateSession(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to create session: %w", err)
		}
		return session, nil
	}

	session, err := s.repo.GetSessionByIDAndUser(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// buildMessages 组装提示词：系统消息 + 历史 + 本轮用户消息
func buildMessages(contextText string, history []*appmodel.ChatMessage, userMessage string) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, &schema.Message{
		Role:    schema.System,
		Content: fmt.Sprintf(systemPromptFormat, contextText),
	})

	for _, msg := range history {
		messages = append(messages, &schema.Message{
			Role:    schema.RoleType(msg.Role),
			Content: msg.Content,
		})
	}

	messages = append(messages, &schema.Message{
		Role:    schema.User,
		Content: userMessage,
	})
	return messages
}

// record 将用户消息和助手回复作为一个批次写入
func (s *Service) record(ctx context.Context, sessionID, userMessage, assistantMessage string) error {
	return s.repo.CreateMessages(ctx, []*appmodel.ChatMessage{
		{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Role:      "user",
			Content:   userMessage,
		},
		{
			ID:        uuid.New().String(),
			SessionID: sessionID,
			Role:      "assistant",
			Content:   assistantMessage,
		},
	})
}
