// Package auth 提供令牌校验服务
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ashwinyue/rag-gateway/internal/model"
	"github.com/ashwinyue/rag-gateway/internal/repository"
)

// ErrInvalidToken 令牌缺失、过期或对应用户不存在
var ErrInvalidToken = errors.New("invalid token")

// Service 认证服务
// 只校验外部签发的令牌，不负责注册和登录
type Service struct {
	repo   repository.AuthRepository
	secret []byte
}

// NewService 创建认证服务
// secret 为空时生成随机密钥，此时所有外部令牌都会校验失败
func NewService(repo repository.AuthRepository, secret string) *Service {
	if secret == "" {
		randomBytes := make([]byte, 32)
		if _, err := rand.Read(randomBytes); err != nil {
			panic(fmt.Sprintf("failed to generate JWT secret: %v", err))
		}
		secret = base64.StdEncoding.EncodeToString(randomBytes)
	}
	return &Service{repo: repo, secret: []byte(secret)}
}

// VerifyToken 验证令牌并返回对应用户
func (s *Service) VerifyToken(ctx context.Context, tokenString string) (*model.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	return user, nil
}
