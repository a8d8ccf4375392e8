package model

import "time"

type Profile struct {
	ID               string `gorm:"primaryKey;size:64;not null"`
	Email            string `gorm:"size:255"`
	PlanTier         string `gorm:"size:16;index;not null"` // free, pro, studio
	PaymentAccountID string `gorm:"size:64;index"`          // linked payment-provider account, empty when not connected
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type Pack struct {
	ID                   string `gorm:"primaryKey;size:64;not null"`
	SellerID             string `gorm:"size:64;index;not null"` // FK → profile.id
	Title                string `gorm:"size:255;not null"`
	BasePrice            int64  `gorm:"not null"` // minor currency units
	OwnerDiscountPercent int    `gorm:"not null;default:0"`
	Currency             string `gorm:"size:8;not null"`
	Deleted              bool   `gorm:"index;not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type DiscountCode struct {
	ID                   string `gorm:"primaryKey;size:64;not null"`
	PackID               string `gorm:"size:64;uniqueIndex:idx_pack_code;not null"`
	Code                 string `gorm:"size:64;uniqueIndex:idx_pack_code;not null"` // stored upper-case
	DiscountType         string `gorm:"size:16;not null"`                           // percentage, fixed
	DiscountValue        int64  `gorm:"not null"`
	ExpiresAt            *time.Time
	MaxUses              *int // nil = unlimited
	UsesCount            int  `gorm:"not null;default:0"`
	ForFollowersOnly     bool `gorm:"not null;default:false"`
	ForFirstPurchaseOnly bool `gorm:"not null;default:false"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Purchase struct {
	ID                  string `gorm:"primaryKey;size:64;not null"`
	BuyerID             string `gorm:"size:64;index;not null"`
	Kind                string `gorm:"size:16;not null"` // pack, subscription
	PackID              string `gorm:"size:64;index"`    // empty for subscription purchases
	PlanTier            string `gorm:"size:16"`          // set for subscription purchases
	BaseAmount          int64  `gorm:"not null"`
	DiscountAmount      int64  `gorm:"not null"`
	PlatformFee         int64  `gorm:"not null"`
	AmountCharged       int64  `gorm:"not null"`
	Currency            string `gorm:"size:8;not null"`
	DiscountCodeID      *string
	Status              string `gorm:"size:16;index;not null"` // pending, completed, failed
	PaymentPreferenceID string `gorm:"size:128;index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Follow struct {
	FollowerID string `gorm:"primaryKey;size:64;not null"`
	SellerID   string `gorm:"primaryKey;size:64;not null"`
	CreatedAt  time.Time
}

type Download struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"size:64;index;not null"`
	PackID    string `gorm:"size:64;index;not null"`
	CreatedAt time.Time
}

type PlanPrice struct {
	Tier         string `gorm:"primaryKey;size:16;not null"`
	BasePrice    int64  `gorm:"not null"` // immutable ceiling for current_price
	CurrentPrice int64  `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusFailed    = "failed"

	PurchaseKindPack         = "pack"
	PurchaseKindSubscription = "subscription"

	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)
