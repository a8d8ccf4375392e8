package handler

import (
	"net/http"

	"packmarket/internal/dto"
	"packmarket/internal/errs"
	"packmarket/internal/plan"
	"packmarket/internal/service"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct {
	planPrices service.PlanPriceService
}

func NewAdminHandler(planPrices service.PlanPriceService) *AdminHandler {
	return &AdminHandler{
		planPrices: planPrices,
	}
}

// UpdatePlanPrice changes the current price of a paid plan tier. The
// new price is bounded server-side by the tier's immutable base price.
func (h *AdminHandler) UpdatePlanPrice(c echo.Context) error {
	ctx := c.Request().Context()

	tier := plan.Tier(c.Param("tier"))
	if !plan.Valid(tier) {
		return errs.ErrNotFound
	}

	var req dto.UpdatePlanPriceRequest
	if err := c.Bind(&req); err != nil {
		return errs.ErrValidation
	}

	if err := h.planPrices.UpdatePrice(ctx, tier, req.Price); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "updated",
	})
}
