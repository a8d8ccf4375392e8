package repository

import (
	"context"
	"time"

	"packmarket/internal/model"

	"gorm.io/gorm"
)

type DownloadRepository interface {
	Create(ctx context.Context, download *model.Download) error
	CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error)
}

type downloadRepoImpl struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &downloadRepoImpl{
		db: db,
	}
}

func (r *downloadRepoImpl) Create(ctx context.Context, download *model.Download) error {
	return r.db.WithContext(ctx).Create(download).Error
}

func (r *downloadRepoImpl) CountByUserSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Download{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error

	return count, err
}
