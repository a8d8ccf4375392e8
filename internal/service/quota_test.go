package service

import (
	"testing"
	"time"

	"packmarket/internal/plan"

	"github.com/stretchr/testify/assert"
)

func TestCanUpload_FreeTierLifetimeCap(t *testing.T) {
	features := plan.FeaturesOf(plan.TierFree)

	assert.True(t, CanUpload(features, 4, 4).Allowed)

	decision := CanUpload(features, 5, 0)
	assert.False(t, decision.Allowed)
	assert.NotEmpty(t, decision.Reason)
}

func TestCanUpload_PaidTierMonthlyCap(t *testing.T) {
	features := plan.FeaturesOf(plan.TierPro)

	// No lifetime cap on paid tiers.
	assert.True(t, CanUpload(features, 500, 19).Allowed)

	decision := CanUpload(features, 500, 20)
	assert.False(t, decision.Allowed)
	assert.NotEmpty(t, decision.Reason)
}

func TestCanUpload_StudioUnlimited(t *testing.T) {
	features := plan.FeaturesOf(plan.TierStudio)
	assert.True(t, CanUpload(features, 100000, 100000).Allowed)
}

func TestCanDownloadFree(t *testing.T) {
	free := plan.FeaturesOf(plan.TierFree)
	assert.True(t, CanDownloadFree(free, 9).Allowed)
	assert.False(t, CanDownloadFree(free, 10).Allowed)

	studio := plan.FeaturesOf(plan.TierStudio)
	assert.True(t, CanDownloadFree(studio, 100000).Allowed)
}

func TestValidatePackPrice(t *testing.T) {
	free := plan.FeaturesOf(plan.TierFree)
	assert.True(t, ValidatePackPrice(free, 500_00).Allowed)
	assert.False(t, ValidatePackPrice(free, 500_01).Allowed)
	assert.False(t, ValidatePackPrice(free, -1).Allowed)

	pro := plan.FeaturesOf(plan.TierPro)
	assert.True(t, ValidatePackPrice(pro, 10_000_00).Allowed)
}

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	now := time.Date(2025, time.March, 17, 22, 41, 5, 0, loc)

	start := MonthStart(now)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, loc, start.Location())
}
