package service

import (
	"fmt"
	"time"

	"packmarket/internal/plan"
)

// Decision is the outcome of a quota check. Reason is set only when
// the operation is denied.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(format string, args ...interface{}) Decision {
	return Decision{Allowed: false, Reason: fmt.Sprintf(format, args...)}
}

// CanUpload checks the plan's pack quotas. The free tier is capped on
// lifetime total packs; paid tiers are capped per calendar month.
// A nil cap means unlimited.
func CanUpload(features plan.Features, totalPacks, packsThisMonth int64) Decision {
	if features.MaxPacksTotal != nil && totalPacks >= int64(*features.MaxPacksTotal) {
		return deny("pack limit of %d reached, upgrade your plan to upload more", *features.MaxPacksTotal)
	}
	if features.MaxPacksPerMonth != nil && packsThisMonth >= int64(*features.MaxPacksPerMonth) {
		return deny("monthly upload limit of %d reached", *features.MaxPacksPerMonth)
	}
	return allow()
}

// CanDownloadFree checks the plan's monthly free-download quota.
func CanDownloadFree(features plan.Features, downloadsThisMonth int64) Decision {
	if features.MaxFreeDownloadsPerMonth != nil && downloadsThisMonth >= int64(*features.MaxFreeDownloadsPerMonth) {
		return deny("monthly free download limit of %d reached", *features.MaxFreeDownloadsPerMonth)
	}
	return allow()
}

// ValidatePackPrice enforces the plan's price ceiling, independent of
// the quota counts.
func ValidatePackPrice(features plan.Features, price int64) Decision {
	if price < 0 {
		return deny("price must not be negative")
	}
	if features.MaxPackPrice != nil && price > *features.MaxPackPrice {
		return deny("price exceeds your plan's maximum of %d", *features.MaxPackPrice)
	}
	return allow()
}

// MonthStart is the first instant of now's calendar month in now's
// location. Monthly quotas reset at this boundary.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
