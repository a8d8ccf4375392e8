package repository

import (
	"context"
	"errors"
	"time"

	"packmarket/internal/errs"
	"packmarket/internal/model"

	"gorm.io/gorm"
)

type PackRepository interface {
	FindByID(ctx context.Context, packID string) (*model.Pack, error)
	ListBySeller(ctx context.Context, sellerID string) ([]*model.Pack, error)
	CountBySeller(ctx context.Context, sellerID string) (int64, error)
	CountBySellerSince(ctx context.Context, sellerID string, since time.Time) (int64, error)
}

type packRepoImpl struct {
	db *gorm.DB
}

func NewPackRepository(db *gorm.DB) PackRepository {
	return &packRepoImpl{
		db: db,
	}
}

func (r *packRepoImpl) FindByID(ctx context.Context, packID string) (*model.Pack, error) {
	var pack model.Pack
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", packID, false).
		First(&pack).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return &pack, nil
}

func (r *packRepoImpl) ListBySeller(ctx context.Context, sellerID string) ([]*model.Pack, error) {
	var packs []*model.Pack
	err := r.db.WithContext(ctx).
		Where("seller_id = ? AND deleted = ?", sellerID, false).
		Find(&packs).Error

	if err != nil {
		return nil, err
	}

	return packs, nil
}

func (r *packRepoImpl) CountBySeller(ctx context.Context, sellerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Pack{}).
		Where("seller_id = ? AND deleted = ?", sellerID, false).
		Count(&count).Error

	return count, err
}

func (r *packRepoImpl) CountBySellerSince(ctx context.Context, sellerID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Pack{}).
		Where("seller_id = ? AND deleted = ? AND created_at >= ?", sellerID, false, since).
		Count(&count).Error

	return count, err
}
