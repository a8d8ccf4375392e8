package service

import (
	"context"
	"testing"

	"packmarket/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEarningsSummary(t *testing.T) {
	packs := &fakePackRepo{packs: map[string]*model.Pack{
		"pack-1": {ID: "pack-1", SellerID: "seller-1", Title: "Drum Kit Vol. 1", BasePrice: 4500, Currency: "USD"},
	}}
	profiles := &fakeProfileRepo{profiles: map[string]*model.Profile{
		"seller-1": {ID: "seller-1", PlanTier: "pro"},
	}}
	purchases := newFakePurchaseRepo()
	require.NoError(t, purchases.Create(context.Background(), &model.Purchase{
		ID: "purchase-1", BuyerID: "buyer-1", PackID: "pack-1",
		AmountCharged: 4950, PlatformFee: 450,
		Status: model.PurchaseStatusCompleted,
	}))
	// Pending purchases do not count toward earnings.
	require.NoError(t, purchases.Create(context.Background(), &model.Purchase{
		ID: "purchase-2", BuyerID: "buyer-2", PackID: "pack-1",
		AmountCharged: 4950, PlatformFee: 450,
		Status: model.PurchaseStatusPending,
	}))

	svc := NewEarningsService(packs, profiles, purchases)

	summary, err := svc.Summary(context.Background(), "seller-1")
	require.NoError(t, err)

	require.Len(t, summary.Packs, 1)
	// Fee-absorbed view: buyer pays the list price, the cut comes out
	// of the seller's side.
	assert.Equal(t, int64(4500), summary.Packs[0].ListPrice)
	assert.Equal(t, int64(450), summary.Packs[0].PlatformFee)
	assert.Equal(t, int64(4050), summary.Packs[0].NetPerSale)

	assert.Equal(t, int64(4950), summary.TotalGross)
	assert.Equal(t, int64(450), summary.TotalFees)
	assert.Equal(t, int64(4500), summary.TotalEarnings)
}
