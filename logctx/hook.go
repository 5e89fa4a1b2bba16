package logctx

import (
	"context"
	"log/slog"
	"sync"
)

// HookRecord is a record captured by a Hook, along with the attributes
// the logger had when it was logged.
type HookRecord struct {
	Record slog.Record
	Attrs  []slog.Attr
	Group  string
}

// AttrMap merges the logger's attributes with the record's own.
func (r HookRecord) AttrMap() map[string]any {
	m := attrMap(r.Attrs)
	r.Record.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value.Any()
		return true
	})
	return m
}

func NewHook() *Hook {
	return &Hook{records: &hookRecords{r: make([]HookRecord, 0, 4)}}
}

// Hook is a hook designed for dealing with logs in test scenarios.
type Hook struct {
	records *hookRecords
	attrs   []slog.Attr
	group   string
}

var _ slog.Handler = &Hook{}

func (t *Hook) Enabled(context.Context, slog.Level) bool {
	return true
}

func (t *Hook) Handle(_ context.Context, r slog.Record) error {
	t.records.Add(HookRecord{Record: r, Attrs: t.attrs, Group: t.group})
	return nil
}

func (t *Hook) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(t.attrs)+len(attrs))
	merged = append(merged, t.attrs...)
	return &Hook{
		records: t.records,
		attrs:   append(merged, attrs...),
		group:   t.group,
	}
}

func (t *Hook) WithGroup(group string) slog.Handler {
	return &Hook{
		records: t.records,
		attrs:   t.attrs,
		group:   group,
	}
}

// Messages returns the message of every record, in order.
func (t *Hook) Messages() []string {
	records := t.records.Records()
	result := make([]string, 0, len(records))
	for _, r := range records {
		result = append(result, r.Record.Message)
	}
	return result
}

// LastRecord returns the last record that was logged or nil.
func (t *Hook) LastRecord() *HookRecord {
	return t.records.LastRecord()
}

// Records returns all records that were logged.
func (t *Hook) Records() []HookRecord {
	return t.records.Records()
}

func (t *Hook) AttrMap() map[string]any {
	return attrMap(t.attrs)
}

type hookRecords struct {
	r   []HookRecord
	mux sync.RWMutex
}

func (h *hookRecords) Add(r HookRecord) {
	h.mux.Lock()
	defer h.mux.Unlock()
	h.r = append(h.r, r)
}

func (h *hookRecords) Records() []HookRecord {
	h.mux.RLock()
	defer h.mux.RUnlock()
	return append([]HookRecord(nil), h.r...)
}

func (h *hookRecords) LastRecord() *HookRecord {
	h.mux.RLock()
	defer h.mux.RUnlock()
	i := len(h.r) - 1
	if i < 0 {
		return nil
	}
	return &h.r[i]
}

func attrMap(attrs []slog.Attr) map[string]any {
	result := make(map[string]any, len(attrs))
	for _, a := range attrs {
		result[a.Key] = a.Value.Any()
	}
	return result
}

// NewNullLogger returns a logger that records into the returned Hook.
func NewNullLogger() (*slog.Logger, *Hook) {
	hook := NewHook()
	return slog.New(hook), hook
}

// WithNullLogger adds a NewNullLogger logger to c (default context.Background).
// Use the hook to get the log records.
func WithNullLogger(c context.Context) (context.Context, *Hook) {
	if c == nil {
		c = context.Background()
	}
	logger, hook := NewNullLogger()
	return WithLogger(c, logger.With("testlogger", true)), hook
}
