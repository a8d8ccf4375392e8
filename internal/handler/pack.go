package handler

import (
	"errors"
	"net/http"
	"time"

	"packmarket/internal/dto"
	"packmarket/internal/errs"
	"packmarket/internal/model"
	"packmarket/internal/plan"
	"packmarket/internal/repository"
	"packmarket/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type PackHandler struct {
	packRepo          repository.PackRepository
	profileRepo       repository.ProfileRepository
	downloadRepo      repository.DownloadRepository
	discountValidator service.DiscountValidator
}

func NewPackHandler(
	packRepo repository.PackRepository,
	profileRepo repository.ProfileRepository,
	downloadRepo repository.DownloadRepository,
	discountValidator service.DiscountValidator,
) *PackHandler {
	return &PackHandler{
		packRepo:          packRepo,
		profileRepo:       profileRepo,
		downloadRepo:      downloadRepo,
		discountValidator: discountValidator,
	}
}

// ValidateUpload checks the caller's plan quotas and price ceiling
// before the (separately handled) file upload begins.
func (h *PackHandler) ValidateUpload(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	var req dto.ValidateUploadRequest
	if err := c.Bind(&req); err != nil {
		return errs.ErrValidation
	}

	profile, err := h.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	features := plan.FeaturesOf(plan.Tier(profile.PlanTier))

	if decision := service.ValidatePackPrice(features, req.Price); !decision.Allowed {
		return c.JSON(http.StatusOK, &dto.QuotaDecisionResponse{Allowed: false, Reason: decision.Reason})
	}

	total, err := h.packRepo.CountBySeller(ctx, userID)
	if err != nil {
		return err
	}
	thisMonth, err := h.packRepo.CountBySellerSince(ctx, userID, service.MonthStart(time.Now()))
	if err != nil {
		return err
	}

	decision := service.CanUpload(features, total, thisMonth)
	return c.JSON(http.StatusOK, &dto.QuotaDecisionResponse{
		Allowed: decision.Allowed,
		Reason:  decision.Reason,
	})
}

// FreeDownload consumes one unit of the caller's monthly free-download
// quota and records the download.
func (h *PackHandler) FreeDownload(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	pack, err := h.packRepo.FindByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	profile, err := h.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	features := plan.FeaturesOf(plan.Tier(profile.PlanTier))

	used, err := h.downloadRepo.CountByUserSince(ctx, userID, service.MonthStart(time.Now()))
	if err != nil {
		return err
	}

	decision := service.CanDownloadFree(features, used)
	if !decision.Allowed {
		return c.JSON(http.StatusOK, &dto.QuotaDecisionResponse{Allowed: false, Reason: decision.Reason})
	}

	if err := h.downloadRepo.Create(ctx, &model.Download{
		UserID: userID,
		PackID: pack.ID,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.QuotaDecisionResponse{Allowed: true})
}

// PricePreview resolves the charge the caller would pay right now,
// including an optional discount code. Purely informational; nothing
// is persisted and no code use is spent.
func (h *PackHandler) PricePreview(c echo.Context) error {
	ctx := c.Request().Context()

	userID, err := userIDFromContext(c)
	if err != nil {
		return err
	}

	pack, err := h.packRepo.FindByID(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	seller, err := h.profileRepo.FindByID(ctx, pack.SellerID)
	if err != nil {
		return err
	}
	features := plan.FeaturesOf(plan.Tier(seller.PlanTier))

	var discountAmount int64
	if code := c.QueryParam("code"); code != "" {
		discount, err := h.discountValidator.Validate(ctx, code, pack, userID)
		if err != nil {
			var de *errs.DiscountError
			if !errors.As(err, &de) {
				return err
			}
			log.Debug().
				Str("pack_id", pack.ID).
				Str("reason", string(de.Reason)).
				Msg("discount code rejected in price preview")
		} else {
			discountAmount = discount.Amount
		}
	}

	breakdown, err := service.ResolvePrice(pack, features, discountAmount, service.FeeOnTop)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, &dto.PriceBreakdownResponse{
		BasePrice:      breakdown.BasePrice,
		DiscountAmount: breakdown.DiscountAmount,
		PlatformFee:    breakdown.PlatformFee,
		FeePercentage:  breakdown.FeePercentage,
		FinalPrice:     breakdown.FinalPrice,
	})
}
