package plan

import "fmt"

type Tier string

const (
	TierFree   Tier = "free"
	TierPro    Tier = "pro"
	TierStudio Tier = "studio"
)

// Features describes what a plan tier entitles a seller to.
// Nil caps mean unlimited.
type Features struct {
	CommissionRate           float64
	MaxPacksTotal            *int
	MaxPacksPerMonth         *int
	MaxPackPrice             *int64
	MaxDiscountPercent       int
	MaxFreeDownloadsPerMonth *int
}

var features = map[Tier]Features{
	TierFree: {
		CommissionRate:           0.15,
		MaxPacksTotal:            intPtr(5),
		MaxPackPrice:             int64Ptr(500_00),
		MaxDiscountPercent:       50,
		MaxFreeDownloadsPerMonth: intPtr(10),
	},
	TierPro: {
		CommissionRate:           0.10,
		MaxPacksPerMonth:         intPtr(20),
		MaxDiscountPercent:       80,
		MaxFreeDownloadsPerMonth: intPtr(100),
	},
	TierStudio: {
		CommissionRate:     0.05,
		MaxDiscountPercent: 100,
	},
}

// FeaturesOf returns the feature set for a tier. The tier column is
// constrained to the closed enum, so an unknown tier is a bug in the
// caller, not user input.
func FeaturesOf(t Tier) Features {
	f, ok := features[t]
	if !ok {
		panic(fmt.Sprintf("plan: unknown tier %q", t))
	}
	return f
}

func Valid(t Tier) bool {
	_, ok := features[t]
	return ok
}

// Paid reports whether the tier is a paid subscription.
func Paid(t Tier) bool {
	return t == TierPro || t == TierStudio
}

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }
