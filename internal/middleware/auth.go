package middleware

import "github.com/labstack/echo/v4"

// sample auth middleware reading the user id from a trusted header
// later we can expand this to jwt auth or session auth
func AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID := c.Request().Header.Get("X-User-Id"); userID != "" {
				c.Set("user_id", userID)
			}
			return next(c)
		}
	}
}
