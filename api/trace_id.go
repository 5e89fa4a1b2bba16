package api

import (
	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-assay/logctx"
)

const TraceIdHeader = "Trace-Id"

// Headers a trace id is read from, in order of preference.
var candidateTraceHeaders = []string{
	TraceIdHeader,
	"X-Request-Id",
}

// TraceId returns the trace id for the request.
// It is taken from the echo context if already set,
// then from one of the candidate request headers,
// and is otherwise generated.
// The first call echoes it in the Trace-Id response header.
func TraceId(c echo.Context) string {
	traceIdKey := string(logctx.RequestTraceIdKey)
	if id, ok := c.Get(traceIdKey).(string); ok {
		return id
	}
	id := ""
	for _, header := range candidateTraceHeaders {
		if id = c.Request().Header.Get(header); id != "" {
			break
		}
	}
	if id == "" {
		id = logctx.IdProvider()
	}
	c.Set(traceIdKey, id)
	c.Response().Header().Set(TraceIdHeader, id)
	return id
}
