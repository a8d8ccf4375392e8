package repository

import (
	"context"
	"errors"

	"packmarket/internal/errs"
	"packmarket/internal/model"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByID(ctx context.Context, profileID string) (*model.Profile, error)
}

type profileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepoImpl{
		db: db,
	}
}

func (r *profileRepoImpl) FindByID(ctx context.Context, profileID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("id = ?", profileID).
		First(&profile).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	return &profile, nil
}
