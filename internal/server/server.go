package server

import (
	"errors"
	"net/http"

	"packmarket/internal/errs"
	"packmarket/internal/handler"
	custommw "packmarket/internal/middleware"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	packHandler     *handler.PackHandler
	sellerHandler   *handler.SellerHandler
	adminHandler    *handler.AdminHandler
}

func NewServer(
	checkoutHandler *handler.CheckoutHandler,
	packHandler *handler.PackHandler,
	sellerHandler *handler.SellerHandler,
	adminHandler *handler.AdminHandler,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger())
	e.Use(custommw.AuthMiddleware())

	s := &Server{
		echo:            e,
		checkoutHandler: checkoutHandler,
		packHandler:     packHandler,
		sellerHandler:   sellerHandler,
		adminHandler:    adminHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- checkout --------
	checkout := api.Group("/checkout")
	checkout.POST("/purchase", s.checkoutHandler.Purchase)
	checkout.POST("/subscribe", s.checkoutHandler.Subscribe)
	checkout.POST("/notify", s.checkoutHandler.Notify)

	// -------- packs --------
	packs := api.Group("/packs")
	packs.POST("/validate-upload", s.packHandler.ValidateUpload)
	packs.GET("/:id/price", s.packHandler.PricePreview)
	packs.POST("/:id/free-download", s.packHandler.FreeDownload)

	// -------- sellers --------
	api.GET("/sellers/me/earnings", s.sellerHandler.Earnings)

	// -------- admin --------
	api.PUT("/admin/plans/:tier/price", s.adminHandler.UpdatePlanPrice)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}

// httpErrorHandler maps typed app errors to their status and a safe
// message. Anything else is logged in full and returned as a generic
// 500 so provider and datastore detail never reaches callers.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("path", c.Request().URL.Path).
				Msg("request failed")
		}
		_ = c.JSON(appErr.Status, map[string]string{"error": appErr.Message})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, map[string]string{"error": http.StatusText(httpErr.Code)})
		return
	}

	log.Error().Err(err).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")
	_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
