package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithictech/go-assay/logctx"
)

func Logger(c echo.Context) *slog.Logger {
	logger, ok := c.Get(logctx.LoggerKey).(*slog.Logger)
	if !ok {
		logger = logctx.UnconfiguredLogger()
		logger.Error("No logger configured for request!")
	}
	return logger
}

func SetLogger(c echo.Context, logger *slog.Logger) {
	c.Set(logctx.LoggerKey, logger)
}

const logAttrsKey = "assay.request_log_attrs"

// AddLogAttrs adds key/value pairs to the request_finished line,
// such as the symbology or profile a handler checked against.
func AddLogAttrs(c echo.Context, args ...any) {
	existing, _ := c.Get(logAttrsKey).([]any)
	c.Set(logAttrsKey, append(existing, args...))
}

type LoggingMiddlewareConfig struct {
	// If true, log request headers (except Authorization and Cookie).
	RequestHeaders bool
	// If true, log response headers (except Set-Cookie).
	ResponseHeaders bool
	// If true, do not add trace_id to the request logger.
	// Use this when the handler adds it, like logctx.TracingHandler.
	SkipTraceAttrs bool

	// If provided, the returned logger is the one handlers see.
	BeforeRequest func(echo.Context, *slog.Logger) *slog.Logger
	// If provided, the returned logger is used for response logging.
	AfterRequest func(echo.Context, *slog.Logger) *slog.Logger
	// The function that does the actual logging.
	// Defaults to LoggingMiddlewareDefaultDoLog.
	DoLog func(echo.Context, *slog.Logger)
}

func LoggingMiddleware(outerLogger *slog.Logger) echo.MiddlewareFunc {
	return LoggingMiddlewareWithConfig(outerLogger, LoggingMiddlewareConfig{})
}

func LoggingMiddlewareWithConfig(outerLogger *slog.Logger, cfg LoggingMiddlewareConfig) echo.MiddlewareFunc {
	if cfg.DoLog == nil {
		cfg.DoLog = LoggingMiddlewareDefaultDoLog
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := req.URL.Path
			if path == "" {
				path = "/"
			}
			bytesIn := req.Header.Get(echo.HeaderContentLength)
			if bytesIn == "" {
				bytesIn = "0"
			}

			logger := outerLogger
			if !cfg.SkipTraceAttrs {
				logger = logger.With(string(logctx.RequestTraceIdKey), TraceId(c))
			}
			if cfg.BeforeRequest != nil {
				logger = cfg.BeforeRequest(c, logger)
			}
			SetLogger(c, logger)

			err := adaptToError(safeInvokeNext(logger, next, c))
			if err != nil {
				c.Error(err)
			}

			stop := time.Now()
			res := c.Response()
			logger = Logger(c).With(
				"request_started_at", start.Format(time.RFC3339),
				"request_remote_ip", c.RealIP(),
				"request_method", req.Method,
				"request_route", c.Path(),
				"request_path", path,
				"request_query", req.URL.RawQuery,
				"request_user_agent", req.UserAgent(),
				"request_bytes_in", bytesIn,
				"request_status", res.Status,
				"request_latency_ms", stop.Sub(start).Milliseconds(),
				"request_bytes_out", strconv.FormatInt(res.Size, 10),
			)
			if extra, ok := c.Get(logAttrsKey).([]any); ok {
				logger = logger.With(extra...)
			}
			if cfg.RequestHeaders {
				for k, v := range req.Header {
					if len(v) > 0 && k != "Authorization" && k != "Cookie" {
						logger = logger.With("request_header."+k, v[0])
					}
				}
			}
			if cfg.ResponseHeaders {
				for k, v := range res.Header() {
					if len(v) > 0 && k != "Set-Cookie" {
						logger = logger.With("response_header."+k, v[0])
					}
				}
			}
			if err != nil {
				logger = logger.With("request_error", err.Error())
			}
			if cfg.AfterRequest != nil {
				logger = cfg.AfterRequest(c, logger)
			}
			if logger != nil {
				cfg.DoLog(c, logger)
			}
			// c.Error was already called
			return nil
		}
	}
}

func LoggingMiddlewareDefaultDoLog(c echo.Context, logger *slog.Logger) {
	req := c.Request()
	res := c.Response()
	logMethod := logger.Info
	if req.Method == http.MethodOptions {
		logMethod = logger.Debug
	} else if res.Status >= 500 {
		logMethod = logger.Error
	} else if res.Status >= 400 {
		logMethod = logger.Warn
	} else if req.URL.Path == HealthPath || req.URL.Path == StatusPath {
		logMethod = logger.Debug
	}
	logMethod("request_finished")
}

// safeInvokeNext recovers a panic in next into the returned error.
func safeInvokeNext(logger *slog.Logger, next echo.HandlerFunc, c echo.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
			stack := make([]byte, 4<<10)
			length := runtime.Stack(stack, false)
			logger.Error("panic_recover", "error", err.Error(), "stack", string(stack[:length]))
		}
	}()
	err = next(c)
	return
}

func adaptToError(e error) error {
	if e == nil {
		return nil
	}
	var apiErr Error
	if errors.As(e, &apiErr) {
		return apiErr
	}
	var ee *echo.HTTPError
	if errors.As(e, &ee) {
		apiErr := NewError(ee.Code, "echo", ee.Internal)
		apiErr.Message = fmt.Sprintf("%v", ee.Message)
		return apiErr
	}
	return NewInternalError(e)
}

func NewHTTPErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var apiErr Error
		if ok := errors.As(err, &apiErr); !ok {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}
		if c.Response().Committed {
			return
		}
		// No body for 204, 304 and HEAD, even for an error.
		noContent := c.Request().Method == http.MethodHead ||
			apiErr.HTTPStatus == http.StatusNoContent ||
			apiErr.HTTPStatus == http.StatusNotModified
		var werr error
		if noContent {
			werr = c.NoContent(apiErr.HTTPStatus)
		} else {
			werr = c.JSON(apiErr.HTTPStatus, apiErr)
		}
		if werr != nil {
			Logger(c).Error("http_error_handler_error", "error", werr.Error())
		}
	}
}
