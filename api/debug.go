package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/lithictech/go-assay/logctx"
)

// DebugMiddlewareConfig says what DebugMiddleware logs for every request.
// Bodies of validation requests can hold passwords; enable it only locally.
type DebugMiddlewareConfig struct {
	Enabled             bool `env:"DEBUG_HTTP"`
	DumpRequestBody     bool
	DumpResponseBody    bool
	DumpRequestHeaders  bool
	DumpResponseHeaders bool
	DumpAll             bool `env:"DEBUG_HTTP_DUMP_ALL"`
}

func DebugMiddleware(cfg DebugMiddlewareConfig) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	if cfg.DumpAll {
		cfg.DumpRequestHeaders = true
		cfg.DumpRequestBody = true
		cfg.DumpResponseHeaders = true
		cfg.DumpResponseBody = true
	}
	return middleware.BodyDump(func(c echo.Context, reqBody []byte, resBody []byte) {
		var attrs []any
		if cfg.DumpRequestBody {
			attrs = append(attrs, "debug_request_body", string(reqBody))
		}
		if cfg.DumpResponseBody {
			attrs = append(attrs, "debug_response_body", string(resBody))
		}
		if cfg.DumpRequestHeaders {
			attrs = append(attrs, "debug_request_headers", headerToMap(c.Request().Header))
		}
		if cfg.DumpResponseHeaders {
			attrs = append(attrs, "debug_response_headers", headerToMap(c.Response().Header()))
		}
		logctx.Logger(StdContext(c)).Debug("request_debug", attrs...)
	})
}

func headerToMap(h http.Header) map[string]string {
	r := make(map[string]string, len(h))
	for k := range h {
		r[k] = h.Get(k)
	}
	return r
}
