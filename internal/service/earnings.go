package service

import (
	"context"
	"fmt"

	"packmarket/internal/dto"
	"packmarket/internal/plan"
	"packmarket/internal/repository"
)

// EarningsService builds the seller dashboard view. It uses the
// fee-absorbed convention: the buyer pays the listed price and the
// platform's cut comes out of the seller's proceeds.
type EarningsService interface {
	Summary(ctx context.Context, sellerID string) (*dto.EarningsResponse, error)
}

type earningsServiceImpl struct {
	packRepo     repository.PackRepository
	profileRepo  repository.ProfileRepository
	purchaseRepo repository.PurchaseRepository
}

func NewEarningsService(
	packRepo repository.PackRepository,
	profileRepo repository.ProfileRepository,
	purchaseRepo repository.PurchaseRepository,
) EarningsService {
	return &earningsServiceImpl{
		packRepo:     packRepo,
		profileRepo:  profileRepo,
		purchaseRepo: purchaseRepo,
	}
}

func (s *earningsServiceImpl) Summary(ctx context.Context, sellerID string) (*dto.EarningsResponse, error) {
	seller, err := s.profileRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("load seller %s: %w", sellerID, err)
	}
	features := plan.FeaturesOf(plan.Tier(seller.PlanTier))

	packs, err := s.packRepo.ListBySeller(ctx, sellerID)
	if err != nil {
		return nil, fmt.Errorf("list seller packs: %w", err)
	}

	resp := &dto.EarningsResponse{
		Packs: make([]*dto.PackEarnings, 0, len(packs)),
	}

	packIDs := make([]string, 0, len(packs))
	for _, pack := range packs {
		packIDs = append(packIDs, pack.ID)

		breakdown, err := ResolvePrice(pack, features, 0, FeeAbsorbed)
		if err != nil {
			return nil, err
		}

		resp.Packs = append(resp.Packs, &dto.PackEarnings{
			PackID:      pack.ID,
			Title:       pack.Title,
			ListPrice:   breakdown.FinalPrice,
			PlatformFee: breakdown.PlatformFee,
			NetPerSale:  breakdown.FinalPrice - breakdown.PlatformFee,
		})
	}

	if len(packIDs) > 0 {
		purchases, err := s.purchaseRepo.ListCompletedByPacks(ctx, packIDs)
		if err != nil {
			return nil, fmt.Errorf("list completed purchases: %w", err)
		}
		for _, p := range purchases {
			resp.TotalGross += p.AmountCharged
			resp.TotalFees += p.PlatformFee
			resp.TotalEarnings += p.AmountCharged - p.PlatformFee
		}
	}

	return resp, nil
}
