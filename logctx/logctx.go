// Package logctx carries a *slog.Logger and trace ids through a context.Context.
package logctx

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/google/uuid"
)

type IdProviderT func() string

func DefaultIdProvider() string {
	return uuid.New().String()
}

var IdProvider IdProviderT = DefaultIdProvider

type contextKey string

// LoggerKey is the context (and echo.Context) key holding the logger.
const LoggerKey = "logger"

const loggerKey contextKey = LoggerKey

type TraceIdKey string

// RequestTraceIdKey is the trace ID key for API requests.
const RequestTraceIdKey TraceIdKey = "trace_id"

// BatchTraceIdKey is the trace ID key for a batch of checks run from the command line.
const BatchTraceIdKey TraceIdKey = "batch_trace_id"

// ProcessTraceIdKey is the trace ID key for the overall process.
const ProcessTraceIdKey TraceIdKey = "process_trace_id"

// MissingTraceIdKey is the key that will be present to indicate tracing is misconfigured.
const MissingTraceIdKey TraceIdKey = "missing_trace_id"

const SpanIdKey TraceIdKey = "span_id"

func UnconfiguredLogger() *slog.Logger {
	return slog.Default().With("unconfigured_logger", "true")
}

// WithLogger returns a new context holding logger,
// which can be retrieved with Logger.
func WithLogger(c context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(c, loggerKey, logger)
}

// WithTracingLogger adds the ActiveTraceId to the context's logger.
// Use it like WithTracingLogger(WithTraceId(WithLogger(ctx, logger), key)).
func WithTracingLogger(c context.Context) context.Context {
	tkey, trace := ActiveTraceId(c)
	return WithLogger(c, Logger(c).With(string(tkey), trace))
}

// WithTraceId adds a new trace id under key.
func WithTraceId(c context.Context, key TraceIdKey) context.Context {
	return context.WithValue(c, key, IdProvider())
}

func LoggerOrNil(c context.Context) *slog.Logger {
	logger, _ := c.Value(loggerKey).(*slog.Logger)
	return logger
}

// Logger returns the context's logger, or an unconfigured logger
// (with a warning) if there is none.
func Logger(c context.Context) *slog.Logger {
	if logger := LoggerOrNil(c); logger != nil {
		return logger
	}
	logger := UnconfiguredLogger()
	logger.Warn("Logger called with no logger in context. " +
		"It should always be there to ensure consistent logs from a single logger")
	return logger
}

// ActiveTraceId returns the first trace key and value in the context,
// preferring request, then batch, then process ids,
// or MissingTraceIdKey if there is none.
// Values that are not string-like are returned with '!BADVALUE-' prepended.
func ActiveTraceId(c context.Context) (TraceIdKey, string) {
	for _, key := range []TraceIdKey{RequestTraceIdKey, BatchTraceIdKey, ProcessTraceIdKey} {
		if tv := c.Value(key); tv != nil {
			return key, toTraceVal(tv)
		}
	}
	return MissingTraceIdKey, "no-trace-id-in-context"
}

func toTraceVal(v any) string {
	if s, ok := AsString(v); ok {
		return s
	}
	return fmt.Sprintf("!BADVALUE-%v", v)
}

// AsString returns o as a string and true if o is a string,
// a fmt.Stringer, or a reflect.String kind (subtype of string).
// Otherwise, return "" and false.
func AsString(o any) (string, bool) {
	switch s := o.(type) {
	case nil:
		return "", false
	case string:
		return s, true
	case fmt.Stringer:
		return s.String(), true
	}
	if r := reflect.ValueOf(o); r.Kind() == reflect.String {
		return r.String(), true
	}
	return "", false
}

// ActiveTraceIdValue returns only the value part of ActiveTraceId.
func ActiveTraceIdValue(c context.Context) string {
	_, v := ActiveTraceId(c)
	return v
}

// AddTo returns a context whose logger has args added.
func AddTo(c context.Context, args ...any) context.Context {
	ctx, _ := AddToR(c, args...)
	return ctx
}

// AddToR is AddTo that also returns the new logger.
func AddToR(c context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := Logger(c).With(args...)
	return WithLogger(c, logger), logger
}
