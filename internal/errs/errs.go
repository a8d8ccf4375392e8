package errs

import "fmt"

// Error carries an HTTP status and a message safe to show callers.
// Internal detail stays in the wrapping error chain and the logs.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

var (
	ErrValidation        = &Error{Status: 400, Code: "VALIDATION", Message: "invalid request"}
	ErrNotAuthenticated  = &Error{Status: 401, Code: "NOT_AUTHENTICATED", Message: "authentication required"}
	ErrSelfPurchase      = &Error{Status: 403, Code: "SELF_PURCHASE", Message: "you cannot buy your own pack"}
	ErrNotEligible       = &Error{Status: 403, Code: "NOT_ELIGIBLE", Message: "not eligible for this operation"}
	ErrNotFound          = &Error{Status: 404, Code: "NOT_FOUND", Message: "resource not found"}
	ErrPaymentPreference = &Error{Status: 500, Code: "PAYMENT_PREFERENCE", Message: "could not start payment, please try again"}
	ErrInvalidPriceState = &Error{Status: 500, Code: "INVALID_PRICE_STATE", Message: "internal pricing error"}
)

type DiscountReason string

const (
	DiscountNotFound    DiscountReason = "not_found"
	DiscountExpired     DiscountReason = "expired"
	DiscountExhausted   DiscountReason = "exhausted"
	DiscountNotEligible DiscountReason = "not_eligible"
)

// DiscountError is kept separate from Error because an invalid code is
// non-fatal in the purchase path: the purchase proceeds without the
// discount instead of aborting.
type DiscountError struct {
	Reason DiscountReason
}

func (e *DiscountError) Error() string {
	return fmt.Sprintf("discount code %s", e.Reason)
}
