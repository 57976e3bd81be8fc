package repository

import (
	"context"

	"github.com/ashwinyue/rag-gateway/internal/model"
	"gorm.io/gorm"
)

// authRepositoryImpl 用户数据访问
type authRepositoryImpl struct {
	db *gorm.DB
}

// NewAuthRepository 创建用户仓库
func NewAuthRepository(db *gorm.DB) AuthRepository {
	return &authRepositoryImpl{db: db}
}

// GetUserByID 获取用户
func (r *authRepositoryImpl) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
