package handler

import (
	"net/http"

	"packmarket/internal/dto"
	"packmarket/internal/errs"
	"packmarket/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func userIDFromContext(c echo.Context) (string, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return "", errs.ErrNotAuthenticated
	}
	return userID, nil
}

func (h *CheckoutHandler) Purchase(c echo.Context) error {
	ctx := c.Request().Context()

	buyerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.PurchaseRequest
	if err := c.Bind(&req); err != nil {
		return errs.ErrValidation
	}
	if req.PackID == "" {
		return errs.ErrValidation
	}

	result, err := h.checkoutService.PurchasePack(ctx, buyerID, req.PackID, req.DiscountCode)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CheckoutResponse{
		RedirectURL: result.RedirectURL,
		PurchaseID:  result.PurchaseID,
	})
}

func (h *CheckoutHandler) Subscribe(c echo.Context) error {
	ctx := c.Request().Context()

	buyerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.SubscribeRequest
	if err := c.Bind(&req); err != nil {
		return errs.ErrValidation
	}
	if req.PlanID == "" {
		return errs.ErrValidation
	}

	result, err := h.checkoutService.SubscribePlan(ctx, buyerID, req.PlanID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.CheckoutResponse{
		RedirectURL: result.RedirectURL,
		PurchaseID:  result.PurchaseID,
	})
}

// Notify receives the provider's payment confirmation and flips the
// matching pending purchase to completed.
func (h *CheckoutHandler) Notify(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.NotifyRequest
	if err := c.Bind(&req); err != nil {
		return errs.ErrValidation
	}
	if req.PreferenceID == "" {
		req.PreferenceID = c.QueryParam("preference_id")
	}
	if req.PreferenceID == "" {
		return errs.ErrValidation
	}

	if err := h.checkoutService.CompleteByPreference(ctx, req.PreferenceID); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}
