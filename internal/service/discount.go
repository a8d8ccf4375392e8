package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"packmarket/internal/errs"
	"packmarket/internal/model"
	"packmarket/internal/repository"
)

// ValidatedDiscount is the outcome of a successful code validation.
// Validation never touches uses_count: the increment belongs to the
// orchestrator, after the purchase is durably recorded, so a use is
// never burned on an attempt that failed later.
type ValidatedDiscount struct {
	CodeID string
	Amount int64
}

type DiscountValidator interface {
	Validate(ctx context.Context, code string, pack *model.Pack, buyerID string) (*ValidatedDiscount, error)
}

type discountValidatorImpl struct {
	codeRepo     repository.DiscountCodeRepository
	followRepo   repository.FollowRepository
	purchaseRepo repository.PurchaseRepository
	now          func() time.Time
}

func NewDiscountValidator(
	codeRepo repository.DiscountCodeRepository,
	followRepo repository.FollowRepository,
	purchaseRepo repository.PurchaseRepository,
) DiscountValidator {
	return &discountValidatorImpl{
		codeRepo:     codeRepo,
		followRepo:   followRepo,
		purchaseRepo: purchaseRepo,
		now:          time.Now,
	}
}

// Validate runs the eligibility checks in order, short-circuiting on
// the first failure. Expiry and exhaustion are independent checks:
// either alone rejects the code.
func (v *discountValidatorImpl) Validate(ctx context.Context, code string, pack *model.Pack, buyerID string) (*ValidatedDiscount, error) {
	dc, err := v.codeRepo.FindByPackAndCode(ctx, pack.ID, code)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, &errs.DiscountError{Reason: errs.DiscountNotFound}
		}
		return nil, fmt.Errorf("lookup discount code: %w", err)
	}

	if dc.ExpiresAt != nil && dc.ExpiresAt.Before(v.now()) {
		return nil, &errs.DiscountError{Reason: errs.DiscountExpired}
	}

	if dc.MaxUses != nil && dc.UsesCount >= *dc.MaxUses {
		return nil, &errs.DiscountError{Reason: errs.DiscountExhausted}
	}

	if dc.ForFollowersOnly {
		follows, err := v.followRepo.Exists(ctx, buyerID, pack.SellerID)
		if err != nil {
			return nil, fmt.Errorf("check follow relationship: %w", err)
		}
		if !follows {
			return nil, &errs.DiscountError{Reason: errs.DiscountNotEligible}
		}
	}

	if dc.ForFirstPurchaseOnly {
		count, err := v.purchaseRepo.CountByBuyer(ctx, buyerID)
		if err != nil {
			return nil, fmt.Errorf("count buyer purchases: %w", err)
		}
		if count > 0 {
			return nil, &errs.DiscountError{Reason: errs.DiscountNotEligible}
		}
	}

	price := SellerDiscountedPrice(pack)

	var amount int64
	switch dc.DiscountType {
	case model.DiscountTypePercentage:
		amount = price * dc.DiscountValue / 100
	case model.DiscountTypeFixed:
		amount = dc.DiscountValue
	default:
		return nil, fmt.Errorf("unknown discount type %q on code %s", dc.DiscountType, dc.ID)
	}

	// Clamp so the resulting price never goes below zero.
	if amount > price {
		amount = price
	}
	if amount < 0 {
		amount = 0
	}

	return &ValidatedDiscount{
		CodeID: dc.ID,
		Amount: amount,
	}, nil
}
