package api

import (
	"github.com/labstack/echo/v4"
)

const cacheControlKey = "cache-control-value"

// WithCacheControl configures the value SetCacheControl writes.
func WithCacheControl(enabled bool, value string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if enabled {
				c.Set(cacheControlKey, value)
			}
			return next(c)
		}
	}
}

// SetCacheControl sets the Cache-Control header to the value
// configured with WithCacheControl, or does nothing.
// Headers must be written before the body, and error responses should not be cached,
// so handlers call it themselves just before writing a successful body.
func SetCacheControl(c echo.Context) {
	if value, ok := c.Get(cacheControlKey).(string); ok {
		c.Response().Header().Set("Cache-Control", value)
	}
}
