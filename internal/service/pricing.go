package service

import (
	"fmt"

	"packmarket/internal/errs"
	"packmarket/internal/model"
	"packmarket/internal/plan"
)

// FeeMode selects which of the two commission conventions applies.
// Call sites must pick one explicitly; there is no default.
type FeeMode int

const (
	// FeeOnTop adds the platform fee to the buyer's charge.
	FeeOnTop FeeMode = iota
	// FeeAbsorbed leaves the buyer's charge at the discounted price and
	// takes the fee out of the seller's proceeds.
	FeeAbsorbed
)

// Breakdown is the resolved charge for one purchase. Recomputed on
// every request, never cached: codes and plan pricing can change
// between requests.
type Breakdown struct {
	BasePrice      int64
	DiscountAmount int64
	PlatformFee    int64
	FeePercentage  float64
	FinalPrice     int64
}

// SellerDiscountedPrice is the pack's base price after the seller's own
// unconditional discount, floored.
func SellerDiscountedPrice(pack *model.Pack) int64 {
	if pack.OwnerDiscountPercent <= 0 {
		return pack.BasePrice
	}
	return pack.BasePrice * int64(100-pack.OwnerDiscountPercent) / 100
}

// ResolvePrice composes the seller discount, an optional code discount
// and the plan commission into the final charge. All amounts are
// integer minor units; fractional intermediates floor, never round up,
// so the platform's cut is never inflated.
func ResolvePrice(pack *model.Pack, features plan.Features, discountAmount int64, mode FeeMode) (*Breakdown, error) {
	basePrice := SellerDiscountedPrice(pack)

	if discountAmount > basePrice {
		discountAmount = basePrice
	}
	if discountAmount < 0 {
		discountAmount = 0
	}
	afterCode := basePrice - discountAmount

	fee := platformFee(afterCode, features.CommissionRate)

	var finalPrice int64
	switch mode {
	case FeeOnTop:
		finalPrice = afterCode + fee
	case FeeAbsorbed:
		finalPrice = afterCode
	default:
		return nil, fmt.Errorf("unknown fee mode %d", mode)
	}

	b := &Breakdown{
		BasePrice:      basePrice,
		DiscountAmount: discountAmount,
		PlatformFee:    fee,
		FeePercentage:  features.CommissionRate * 100,
		FinalPrice:     finalPrice,
	}

	if b.BasePrice < 0 || b.DiscountAmount < 0 || b.PlatformFee < 0 || b.FinalPrice < 0 {
		return nil, fmt.Errorf("%w: breakdown %+v for pack %s", errs.ErrInvalidPriceState, b, pack.ID)
	}

	return b, nil
}

// platformFee floors amount*rate. The rate is converted to basis
// points once so the money arithmetic stays in integer space.
func platformFee(amount int64, rate float64) int64 {
	bp := int64(rate*10000 + 0.5)
	return amount * bp / 10000
}
