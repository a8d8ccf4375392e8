package repository

import (
	"context"
	"errors"
	"strings"

	"packmarket/internal/errs"
	"packmarket/internal/model"

	"gorm.io/gorm"
)

type DiscountCodeRepository interface {
	FindByPackAndCode(ctx context.Context, packID, code string) (*model.DiscountCode, error)
	// IncrementUsage bumps uses_count only while the cap is not yet
	// consumed. The guard lives in the UPDATE itself so two concurrent
	// redemptions cannot both pass an application-level check. Returns
	// false when the cap blocked the increment.
	IncrementUsage(ctx context.Context, codeID string) (bool, error)
	// ForceIncrementUsage bumps uses_count unconditionally. Used to
	// record an over-redemption that was already honored.
	ForceIncrementUsage(ctx context.Context, codeID string) error
}

type discountCodeRepoImpl struct {
	db *gorm.DB
}

func NewDiscountCodeRepository(db *gorm.DB) DiscountCodeRepository {
	return &discountCodeRepoImpl{
		db: db,
	}
}

func (r *discountCodeRepoImpl) FindByPackAndCode(ctx context.Context, packID, code string) (*model.DiscountCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	var dc model.DiscountCode
	err := r.db.WithContext(ctx).
		Where("pack_id = ? AND code = ?", packID, normalized).
		First(&dc).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return &dc, nil
}

func (r *discountCodeRepoImpl) IncrementUsage(ctx context.Context, codeID string) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.DiscountCode{}).
		Where("id = ? AND (max_uses IS NULL OR uses_count < max_uses)", codeID).
		UpdateColumn("uses_count", gorm.Expr("uses_count + 1"))

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *discountCodeRepoImpl) ForceIncrementUsage(ctx context.Context, codeID string) error {
	result := r.db.WithContext(ctx).Model(&model.DiscountCode{}).
		Where("id = ?", codeID).
		UpdateColumn("uses_count", gorm.Expr("uses_count + 1"))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
