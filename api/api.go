/*
Package api builds an echo application with the plumbing every assay endpoint relies on.
It sets up /statusz and /healthz endpoints,
and sets up logging middleware that takes care of the following
interconnected tasks:

  - Extract (or add) a trace ID header to the request and response.
    The trace ID can be retrieved with api.TraceId(echo.Context).
  - Add that trace ID to a request-scoped slog logger,
    retrievable with api.Logger(echo.Context) or, from plain code,
    logctx.Logger(api.StdContext(c)).
  - Log one request_finished record per request, at a level chosen by status code.
  - Recover from panics.
  - Coerce all errors into api.Error and marshal them as JSON.
*/
package api

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lithictech/go-assay/logctx"
)

type Config struct {
	// If not provided, create an echo.New.
	App    *echo.Echo
	Logger *slog.Logger
	// Configures the request logging middleware.
	LoggingMiddlewareConfig LoggingMiddlewareConfig
	// Origins for echo's CORS middleware.
	// If it and CorsConfig are empty, do not add the middleware.
	CorsOrigins []string
	// Config for echo's CORS middleware. Supercedes CorsOrigins.
	CorsConfig *middleware.CORSConfig
	// Debug adds DebugMiddleware when Enabled.
	Debug DebugMiddlewareConfig
	// Return this from the health endpoint.
	// Defaults to {"o":"k"}.
	HealthResponse map[string]interface{}
	// Defaults to /healthz.
	HealthPath string
	// If the health endpoint is not static, provide this instead of HealthResponse.
	HealthHandler echo.HandlerFunc
	// Return this from the status endpoint.
	StatusResponse map[string]interface{}
	// Defaults to /statusz
	StatusPath string
	// If the status endpoint is not static, provide this instead of StatusResponse.
	StatusHandler echo.HandlerFunc
}

func New(cfg Config) *echo.Echo {
	if cfg.Logger == nil {
		cfg.Logger = logctx.UnconfiguredLogger()
	}
	if cfg.HealthHandler == nil {
		if cfg.HealthResponse == nil {
			cfg.HealthResponse = map[string]interface{}{"o": "k"}
		}
		cfg.HealthHandler = staticJSON(cfg.HealthResponse)
	}
	if cfg.HealthPath == "" {
		cfg.HealthPath = HealthPath
	}
	if cfg.StatusHandler == nil {
		if cfg.StatusResponse == nil {
			cfg.StatusResponse = map[string]interface{}{"version": "not configured"}
		}
		cfg.StatusHandler = staticJSON(cfg.StatusResponse)
	}
	if cfg.StatusPath == "" {
		cfg.StatusPath = StatusPath
	}
	e := cfg.App
	if e == nil {
		e = echo.New()
	}
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(e)
	e.Use(LoggingMiddlewareWithConfig(cfg.Logger, cfg.LoggingMiddlewareConfig))
	if cfg.CorsConfig == nil && cfg.CorsOrigins != nil {
		cfg.CorsConfig = &middleware.CORSConfig{AllowOrigins: cfg.CorsOrigins, AllowCredentials: true}
	}
	if cfg.CorsConfig != nil {
		e.Use(middleware.CORSWithConfig(*cfg.CorsConfig))
	}
	if cfg.Debug.Enabled {
		e.Use(DebugMiddleware(cfg.Debug))
	}
	e.GET(cfg.HealthPath, cfg.HealthHandler)
	e.GET(cfg.StatusPath, cfg.StatusHandler)
	return e
}

func staticJSON(body map[string]interface{}) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, body)
	}
}

const HealthPath = "/healthz"
const StatusPath = "/statusz"
