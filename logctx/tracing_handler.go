package logctx

import (
	"context"
	"log/slog"
)

// TracingHandler adds the active trace id, and the span id if any,
// to every record logged with a context.
// The trace id is logged under its own key (trace_id, batch_trace_id or
// process_trace_id), so request, batch and process records stay distinguishable.
type TracingHandler struct {
	h slog.Handler
	// TraceKeys maps a trace key to the attribute name it is logged under.
	// Keys not in the map log under their own name.
	TraceKeys map[TraceIdKey]string
	// SpanIdLogKey defaults to "span_id".
	SpanIdLogKey string
}

func NewTracingHandler(h slog.Handler) *TracingHandler {
	return &TracingHandler{h: h, SpanIdLogKey: string(SpanIdKey)}
}

func (t *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.h.Enabled(ctx, level)
}

func (t *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if ctx == nil {
		return t.h.Handle(ctx, record)
	}
	if key, trace := ActiveTraceId(ctx); key != MissingTraceIdKey {
		record.AddAttrs(slog.String(t.traceAttr(key), trace))
	}
	if sid := ctx.Value(SpanIdKey); sid != nil {
		record.Add(t.SpanIdLogKey, sid)
	}
	return t.h.Handle(ctx, record)
}

func (t *TracingHandler) traceAttr(key TraceIdKey) string {
	if name, ok := t.TraceKeys[key]; ok {
		return name
	}
	return string(key)
}

func (t *TracingHandler) with(h slog.Handler) *TracingHandler {
	c := *t
	c.h = h
	return &c
}

func (t *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.with(t.h.WithAttrs(attrs))
}

func (t *TracingHandler) WithGroup(name string) slog.Handler {
	return t.with(t.h.WithGroup(name))
}

var _ slog.Handler = &TracingHandler{}
