package dto

type PurchaseRequest struct {
	PackID       string `json:"pack_id"`
	DiscountCode string `json:"discount_code,omitempty"`
}

type SubscribeRequest struct {
	PlanID string `json:"plan_id"`
}

type CheckoutResponse struct {
	RedirectURL string `json:"redirect_url"`
	PurchaseID  string `json:"purchase_id"`
}

type NotifyRequest struct {
	PreferenceID string `json:"preference_id"`
}

type ValidateUploadRequest struct {
	Price int64 `json:"price"`
}

type QuotaDecisionResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

type PriceBreakdownResponse struct {
	BasePrice      int64   `json:"base_price"`
	DiscountAmount int64   `json:"discount_amount"`
	PlatformFee    int64   `json:"platform_fee"`
	FeePercentage  float64 `json:"fee_percentage"`
	FinalPrice     int64   `json:"final_price"`
}

type UpdatePlanPriceRequest struct {
	Price int64 `json:"price"`
}

type PackEarnings struct {
	PackID      string `json:"pack_id"`
	Title       string `json:"title"`
	ListPrice   int64  `json:"list_price"`
	PlatformFee int64  `json:"platform_fee"`
	NetPerSale  int64  `json:"net_per_sale"`
}

type EarningsResponse struct {
	Packs         []*PackEarnings `json:"packs"`
	TotalGross    int64           `json:"total_gross"`
	TotalFees     int64           `json:"total_fees"`
	TotalEarnings int64           `json:"total_earnings"`
}
