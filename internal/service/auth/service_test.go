// Package auth 认证服务单元测试
package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ashwinyue/rag-gateway/internal/model"
)

const testSecret = "test-secret"

// mockAuthRepo Mock 用户仓库
type mockAuthRepo struct {
	users map[string]*model.User
}

func (m *mockAuthRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if user, ok := m.users[id]; ok {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func signToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func newTestAuth() (*Service, *mockAuthRepo) {
	repo := &mockAuthRepo{users: map[string]*model.User{
		"user-1": {ID: "user-1", Email: "u1@example.com", IsActive: true},
		"user-2": {ID: "user-2", Email: "u2@example.com", IsActive: false},
	}}
	return NewService(repo, testSecret), repo
}

func TestVerifyTokenValid(t *testing.T) {
	svc, _ := newTestAuth()

	user, err := svc.VerifyToken(context.Background(), signToken(t, testSecret, "user-1", time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("user.ID = %q", user.ID)
	}
}

func TestVerifyTokenFailures(t *testing.T) {
	svc, _ := newTestAuth()

	tests := []struct {
		name  string
		token string
	}{
		{"garbage token", "not-a-jwt"},
		{"wrong secret", signToken(t, "other-secret", "user-1", time.Hour)},
		{"expired", signToken(t, testSecret, "user-1", -time.Hour)},
		{"unknown user", signToken(t, testSecret, "ghost", time.Hour)},
		{"inactive user", signToken(t, testSecret, "user-2", time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.VerifyToken(context.Background(), tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("err = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestVerifyTokenMissingSubject(t *testing.T) {
	svc, _ := newTestAuth()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, _ := token.SignedString([]byte(testSecret))

	if _, err := svc.VerifyToken(context.Background(), signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestEmptySecretRejectsOutsideTokens(t *testing.T) {
	repo := &mockAuthRepo{users: map[string]*model.User{
		"user-1": {ID: "user-1", IsActive: true},
	}}
	svc := NewService(repo, "")

	if _, err := svc.VerifyToken(context.Background(), signToken(t, testSecret, "user-1", time.Hour)); err == nil {
		t.Fatal("random secret must reject tokens signed elsewhere")
	}
}
