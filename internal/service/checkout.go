package service

import (
	"context"
	"errors"
	"fmt"

	"packmarket/internal/client"
	"packmarket/internal/errs"
	"packmarket/internal/model"
	"packmarket/internal/plan"
	"packmarket/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type CheckoutResult struct {
	RedirectURL string
	PurchaseID  string
}

type CheckoutService interface {
	PurchasePack(ctx context.Context, buyerID, packID, discountCode string) (*CheckoutResult, error)
	SubscribePlan(ctx context.Context, buyerID, planID string) (*CheckoutResult, error)
	// CompleteByPreference is called from the provider's payment
	// notification once the charge is confirmed.
	CompleteByPreference(ctx context.Context, preferenceID string) error
}

type checkoutServiceImpl struct {
	packRepo          repository.PackRepository
	profileRepo       repository.ProfileRepository
	purchaseRepo      repository.PurchaseRepository
	codeRepo          repository.DiscountCodeRepository
	discountValidator DiscountValidator
	planPrices        PlanPriceService
	paymentClient     client.PaymentClient
	serviceBaseURL    string
}

func NewCheckoutService(
	packRepo repository.PackRepository,
	profileRepo repository.ProfileRepository,
	purchaseRepo repository.PurchaseRepository,
	codeRepo repository.DiscountCodeRepository,
	discountValidator DiscountValidator,
	planPrices PlanPriceService,
	paymentClient client.PaymentClient,
	serviceBaseURL string,
) CheckoutService {
	return &checkoutServiceImpl{
		packRepo:          packRepo,
		profileRepo:       profileRepo,
		purchaseRepo:      purchaseRepo,
		codeRepo:          codeRepo,
		discountValidator: discountValidator,
		planPrices:        planPrices,
		paymentClient:     paymentClient,
		serviceBaseURL:    serviceBaseURL,
	}
}

// PurchasePack drives a pack checkout end to end: self-purchase check,
// price resolution, pending purchase insert, preference creation with
// the provider, then the preference patch and discount-usage increment.
// The pending row is the durability checkpoint; it is compensated away
// when preference creation fails.
func (s *checkoutServiceImpl) PurchasePack(ctx context.Context, buyerID, packID, discountCode string) (*CheckoutResult, error) {
	pack, err := s.packRepo.FindByID(ctx, packID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load pack %s: %w", packID, err)
	}

	seller, err := s.profileRepo.FindByID(ctx, pack.SellerID)
	if err != nil {
		return nil, fmt.Errorf("load seller %s: %w", pack.SellerID, err)
	}

	buyer, err := s.profileRepo.FindByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load buyer %s: %w", buyerID, err)
	}

	if isSelfPurchase(buyer, seller) {
		return nil, errs.ErrSelfPurchase
	}

	// An invalid code degrades to no discount; the purchase proceeds.
	var discount *ValidatedDiscount
	if discountCode != "" {
		discount, err = s.discountValidator.Validate(ctx, discountCode, pack, buyerID)
		if err != nil {
			var de *errs.DiscountError
			if !errors.As(err, &de) {
				return nil, fmt.Errorf("validate discount code: %w", err)
			}
			log.Warn().
				Str("pack_id", pack.ID).
				Str("buyer_id", buyerID).
				Str("reason", string(de.Reason)).
				Msg("discount code rejected, continuing without discount")
			discount = nil
		}
	}

	var discountAmount int64
	var discountCodeID *string
	if discount != nil {
		discountAmount = discount.Amount
		discountCodeID = &discount.CodeID
	}

	features := plan.FeaturesOf(plan.Tier(seller.PlanTier))
	breakdown, err := ResolvePrice(pack, features, discountAmount, FeeOnTop)
	if err != nil {
		return nil, err
	}

	purchase := &model.Purchase{
		ID:             uuid.NewString(),
		BuyerID:        buyerID,
		Kind:           model.PurchaseKindPack,
		PackID:         pack.ID,
		BaseAmount:     breakdown.BasePrice,
		DiscountAmount: breakdown.DiscountAmount,
		PlatformFee:    breakdown.PlatformFee,
		AmountCharged:  breakdown.FinalPrice,
		Currency:       pack.Currency,
		DiscountCodeID: discountCodeID,
		Status:         model.PurchaseStatusPending,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("store pending purchase: %w", err)
	}

	pref, err := s.paymentClient.CreatePreference(ctx, &client.PreferenceRequest{
		Title:             pack.Title,
		Amount:            breakdown.FinalPrice,
		Currency:          pack.Currency,
		BuyerEmail:        buyer.Email,
		ExternalReference: purchase.ID,
		SuccessURL:        s.serviceBaseURL + "/api/checkout/success",
		FailureURL:        s.serviceBaseURL + "/api/checkout/failure",
		NotificationURL:   s.serviceBaseURL + "/api/checkout/notify",
	})
	if err != nil {
		s.compensatePending(ctx, purchase.ID, err)
		return nil, errs.ErrPaymentPreference
	}

	if err := s.purchaseRepo.SetPreferenceID(ctx, purchase.ID, pref.ID); err != nil {
		// The preference exists; losing its id makes the purchase
		// unreconcilable, so this cannot be papered over.
		log.Error().Err(err).
			Str("purchase_id", purchase.ID).
			Str("preference_id", pref.ID).
			Msg("failed to patch purchase with preference id")
		return nil, fmt.Errorf("patch purchase %s with preference id: %w", purchase.ID, err)
	}

	if discount != nil {
		s.spendDiscountUse(ctx, discount.CodeID, purchase.ID)
	}

	return &CheckoutResult{
		RedirectURL: pref.RedirectURL,
		PurchaseID:  purchase.ID,
	}, nil
}

// SubscribePlan runs the same spine for a plan subscription: current
// plan price, pending purchase, preference, patch or compensate.
// Discount codes do not apply to subscriptions.
func (s *checkoutServiceImpl) SubscribePlan(ctx context.Context, buyerID, planID string) (*CheckoutResult, error) {
	tier := plan.Tier(planID)
	if !plan.Paid(tier) {
		return nil, errs.ErrValidation
	}

	buyer, err := s.profileRepo.FindByID(ctx, buyerID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, fmt.Errorf("load buyer %s: %w", buyerID, err)
	}

	price, err := s.planPrices.CurrentPrice(ctx, tier)
	if err != nil {
		return nil, fmt.Errorf("resolve plan price: %w", err)
	}
	if price < 0 {
		return nil, fmt.Errorf("%w: negative plan price %d for %s", errs.ErrInvalidPriceState, price, tier)
	}

	purchase := &model.Purchase{
		ID:            uuid.NewString(),
		BuyerID:       buyerID,
		Kind:          model.PurchaseKindSubscription,
		PlanTier:      string(tier),
		BaseAmount:    price,
		AmountCharged: price,
		Currency:      "USD",
		Status:        model.PurchaseStatusPending,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("store pending purchase: %w", err)
	}

	pref, err := s.paymentClient.CreatePreference(ctx, &client.PreferenceRequest{
		Title:             fmt.Sprintf("%s plan subscription", tier),
		Amount:            price,
		Currency:          "USD",
		BuyerEmail:        buyer.Email,
		ExternalReference: purchase.ID,
		SuccessURL:        s.serviceBaseURL + "/api/checkout/success",
		FailureURL:        s.serviceBaseURL + "/api/checkout/failure",
		NotificationURL:   s.serviceBaseURL + "/api/checkout/notify",
	})
	if err != nil {
		s.compensatePending(ctx, purchase.ID, err)
		return nil, errs.ErrPaymentPreference
	}

	if err := s.purchaseRepo.SetPreferenceID(ctx, purchase.ID, pref.ID); err != nil {
		log.Error().Err(err).
			Str("purchase_id", purchase.ID).
			Str("preference_id", pref.ID).
			Msg("failed to patch purchase with preference id")
		return nil, fmt.Errorf("patch purchase %s with preference id: %w", purchase.ID, err)
	}

	return &CheckoutResult{
		RedirectURL: pref.RedirectURL,
		PurchaseID:  purchase.ID,
	}, nil
}

func (s *checkoutServiceImpl) CompleteByPreference(ctx context.Context, preferenceID string) error {
	if err := s.purchaseRepo.MarkCompletedByPreference(ctx, preferenceID); err != nil {
		return fmt.Errorf("mark purchase completed for preference %s: %w", preferenceID, err)
	}
	return nil
}

// Both id equality and a shared provider account are fatal: the second
// signal catches sellers buying through an alias account.
func isSelfPurchase(buyer, seller *model.Profile) bool {
	if buyer.ID == seller.ID {
		return true
	}
	return buyer.PaymentAccountID != "" && buyer.PaymentAccountID == seller.PaymentAccountID
}

// compensatePending removes the pending row after a failed preference
// request. The provider's raw error stays log-only. If the delete
// itself fails the row is marked failed instead, so pending rows never
// silently accumulate.
func (s *checkoutServiceImpl) compensatePending(ctx context.Context, purchaseID string, cause error) {
	log.Error().Err(cause).
		Str("purchase_id", purchaseID).
		Msg("payment preference creation failed")

	if err := s.purchaseRepo.Delete(ctx, purchaseID); err != nil {
		log.Error().Err(err).
			Str("purchase_id", purchaseID).
			Msg("compensating delete failed, marking purchase failed")
		if err := s.purchaseRepo.MarkFailed(ctx, purchaseID); err != nil {
			log.Error().Err(err).
				Str("purchase_id", purchaseID).
				Msg("failed to mark purchase failed, orphaned pending row")
		}
	}
}

// spendDiscountUse increments the code's usage counter after the
// preference is confirmed, the single point where the counter moves.
// When the guarded increment reports the cap was already consumed by a
// concurrent redemption, the purchase is still honored; the counter is
// force-bumped and the over-redemption logged for reconciliation.
func (s *checkoutServiceImpl) spendDiscountUse(ctx context.Context, codeID, purchaseID string) {
	applied, err := s.codeRepo.IncrementUsage(ctx, codeID)
	if err != nil {
		log.Error().Err(err).
			Str("code_id", codeID).
			Str("purchase_id", purchaseID).
			Msg("failed to increment discount usage")
		return
	}
	if !applied {
		log.Warn().
			Str("code_id", codeID).
			Str("purchase_id", purchaseID).
			Msg("discount code over-redeemed, honoring purchase")
		if err := s.codeRepo.ForceIncrementUsage(ctx, codeID); err != nil {
			log.Error().Err(err).
				Str("code_id", codeID).
				Msg("failed to record over-redemption")
		}
	}
}
