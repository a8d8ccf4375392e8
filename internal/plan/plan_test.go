package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeaturesOf(t *testing.T) {
	free := FeaturesOf(TierFree)
	assert.Equal(t, 0.15, free.CommissionRate)
	assert.NotNil(t, free.MaxPacksTotal)
	assert.Nil(t, free.MaxPacksPerMonth)

	pro := FeaturesOf(TierPro)
	assert.Equal(t, 0.10, pro.CommissionRate)
	assert.Nil(t, pro.MaxPacksTotal)
	assert.NotNil(t, pro.MaxPacksPerMonth)
	assert.Nil(t, pro.MaxPackPrice)

	studio := FeaturesOf(TierStudio)
	assert.Equal(t, 0.05, studio.CommissionRate)
	assert.Nil(t, studio.MaxPacksTotal)
	assert.Nil(t, studio.MaxPacksPerMonth)
	assert.Nil(t, studio.MaxFreeDownloadsPerMonth)
}

func TestFeaturesOf_UnknownTierPanics(t *testing.T) {
	assert.Panics(t, func() {
		FeaturesOf(Tier("platinum"))
	})
}

func TestValidAndPaid(t *testing.T) {
	assert.True(t, Valid(TierFree))
	assert.True(t, Valid(TierPro))
	assert.False(t, Valid(Tier("platinum")))

	assert.False(t, Paid(TierFree))
	assert.True(t, Paid(TierPro))
	assert.True(t, Paid(TierStudio))
}
