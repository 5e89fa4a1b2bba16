package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-assay/logctx"
)

// StdContext returns a context.Context for code that should not know about echo,
// like the I/O-backed validators.
// It derives from the request context, so a client disconnect cancels it,
// and carries the request trace id and logger through logctx.
func StdContext(c echo.Context) context.Context {
	cc := c.Request().Context()
	cc = context.WithValue(cc, logctx.RequestTraceIdKey, TraceId(c))
	return logctx.WithLogger(cc, Logger(c))
}
