package service

import (
	"context"
	"fmt"
	"sync"

	"packmarket/internal/errs"
	"packmarket/internal/plan"
	"packmarket/internal/repository"
)

// PlanPriceService serves the runtime-editable subscription prices.
// Reads go through a cache invalidated on write, so they always
// reflect the latest committed value without a query per checkout.
type PlanPriceService interface {
	CurrentPrice(ctx context.Context, tier plan.Tier) (int64, error)
	UpdatePrice(ctx context.Context, tier plan.Tier, price int64) error
}

type planPriceServiceImpl struct {
	planPriceRepo repository.PlanPriceRepository

	mu    sync.RWMutex
	cache map[plan.Tier]int64
}

func NewPlanPriceService(planPriceRepo repository.PlanPriceRepository) PlanPriceService {
	return &planPriceServiceImpl{
		planPriceRepo: planPriceRepo,
		cache:         make(map[plan.Tier]int64),
	}
}

func (s *planPriceServiceImpl) CurrentPrice(ctx context.Context, tier plan.Tier) (int64, error) {
	s.mu.RLock()
	price, ok := s.cache[tier]
	s.mu.RUnlock()
	if ok {
		return price, nil
	}

	row, err := s.planPriceRepo.Get(ctx, string(tier))
	if err != nil {
		return 0, fmt.Errorf("get plan price for %s: %w", tier, err)
	}

	s.mu.Lock()
	s.cache[tier] = row.CurrentPrice
	s.mu.Unlock()

	return row.CurrentPrice, nil
}

func (s *planPriceServiceImpl) UpdatePrice(ctx context.Context, tier plan.Tier, price int64) error {
	if !plan.Paid(tier) {
		return errs.ErrValidation
	}
	if price < 0 {
		return errs.ErrValidation
	}

	applied, err := s.planPriceRepo.UpdateCurrentPrice(ctx, string(tier), price)
	if err != nil {
		return fmt.Errorf("update plan price for %s: %w", tier, err)
	}
	if !applied {
		// Either the tier row is missing or the price exceeds the
		// immutable base price.
		return errs.ErrValidation
	}

	s.mu.Lock()
	delete(s.cache, tier)
	s.mu.Unlock()

	return nil
}
