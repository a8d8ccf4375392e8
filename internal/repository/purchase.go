package repository

import (
	"context"
	"time"

	"packmarket/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *model.Purchase) error
	SetPreferenceID(ctx context.Context, purchaseID, preferenceID string) error
	Delete(ctx context.Context, purchaseID string) error
	MarkFailed(ctx context.Context, purchaseID string) error
	// MarkCompletedByPreference flips a pending purchase to completed.
	// Conditional on the pending status so replayed notifications are
	// no-ops.
	MarkCompletedByPreference(ctx context.Context, preferenceID string) error
	CountByBuyer(ctx context.Context, buyerID string) (int64, error)
	ListCompletedByPacks(ctx context.Context, packIDs []string) ([]*model.Purchase, error)
}

type purchaseRepoImpl struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepoImpl{
		db: db,
	}
}

func (r *purchaseRepoImpl) Create(ctx context.Context, purchase *model.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *purchaseRepoImpl) SetPreferenceID(ctx context.Context, purchaseID, preferenceID string) error {
	result := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("id = ?", purchaseID).
		Updates(map[string]interface{}{
			"payment_preference_id": preferenceID,
			"updated_at":            time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *purchaseRepoImpl) Delete(ctx context.Context, purchaseID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", purchaseID).
		Delete(&model.Purchase{}).Error
}

func (r *purchaseRepoImpl) MarkFailed(ctx context.Context, purchaseID string) error {
	return r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("id = ?", purchaseID).
		Updates(map[string]interface{}{
			"status":     model.PurchaseStatusFailed,
			"updated_at": time.Now(),
		}).Error
}

func (r *purchaseRepoImpl) MarkCompletedByPreference(ctx context.Context, preferenceID string) error {
	return r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("payment_preference_id = ? AND status = ?", preferenceID, model.PurchaseStatusPending).
		Updates(map[string]interface{}{
			"status":     model.PurchaseStatusCompleted,
			"updated_at": time.Now(),
		}).Error
}

func (r *purchaseRepoImpl) CountByBuyer(ctx context.Context, buyerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Purchase{}).
		Where("buyer_id = ?", buyerID).
		Count(&count).Error

	return count, err
}

func (r *purchaseRepoImpl) ListCompletedByPacks(ctx context.Context, packIDs []string) ([]*model.Purchase, error) {
	var purchases []*model.Purchase
	err := r.db.WithContext(ctx).
		Where("pack_id IN ? AND status = ?", packIDs, model.PurchaseStatusCompleted).
		Find(&purchases).Error

	if err != nil {
		return nil, err
	}

	return purchases, nil
}
