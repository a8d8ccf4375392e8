package repository

import (
	"context"
	"errors"

	"packmarket/internal/errs"
	"packmarket/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlanPriceRepository interface {
	Seed(ctx context.Context) error
	Get(ctx context.Context, tier string) (*model.PlanPrice, error)
	// UpdateCurrentPrice applies the new price only while it stays within
	// the immutable base price. Returns false when the bound rejected it.
	UpdateCurrentPrice(ctx context.Context, tier string, price int64) (bool, error)
}

type planPriceRepoImpl struct {
	db *gorm.DB
}

func NewPlanPriceRepository(db *gorm.DB) PlanPriceRepository {
	return &planPriceRepoImpl{
		db: db,
	}
}

func (r *planPriceRepoImpl) Seed(ctx context.Context) error {
	prices := []model.PlanPrice{
		{Tier: "pro", BasePrice: 9_99, CurrentPrice: 9_99},
		{Tier: "studio", BasePrice: 24_99, CurrentPrice: 24_99},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&prices).Error
}

func (r *planPriceRepoImpl) Get(ctx context.Context, tier string) (*model.PlanPrice, error) {
	var price model.PlanPrice
	err := r.db.WithContext(ctx).
		Where("tier = ?", tier).
		First(&price).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return &price, nil
}

func (r *planPriceRepoImpl) UpdateCurrentPrice(ctx context.Context, tier string, price int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.PlanPrice{}).
		Where("tier = ? AND base_price >= ?", tier, price).
		UpdateColumn("current_price", price)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
