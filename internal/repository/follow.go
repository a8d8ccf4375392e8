package repository

import (
	"context"

	"packmarket/internal/model"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Exists(ctx context.Context, followerID, sellerID string) (bool, error)
}

type followRepoImpl struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepoImpl{
		db: db,
	}
}

func (r *followRepoImpl) Exists(ctx context.Context, followerID, sellerID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND seller_id = ?", followerID, sellerID).
		Count(&count).Error

	return count > 0, err
}
