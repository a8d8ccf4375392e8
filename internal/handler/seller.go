package handler

import (
	"net/http"

	"packmarket/internal/service"

	"github.com/labstack/echo/v4"
)

type SellerHandler struct {
	earningsService service.EarningsService
}

func NewSellerHandler(earningsService service.EarningsService) *SellerHandler {
	return &SellerHandler{
		earningsService: earningsService,
	}
}

func (h *SellerHandler) Earnings(c echo.Context) error {
	ctx := c.Request().Context()

	sellerID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	summary, err := h.earningsService.Summary(ctx, sellerID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, summary)
}
