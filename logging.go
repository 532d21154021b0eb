package fieldfmt

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Handler is a [slog.Handler] that renders each record as one fieldfmt
// document. Every line carries timestamp_epoch_ms, message, and code, plus
// span-level fields added via WithAttrs and the record's own attrs.
type Handler struct {
	out    io.Writer
	mu     *sync.Mutex
	attrs  []slog.Attr
	format Format
}

var _ slog.Handler = (*Handler)(nil)

// NewHandler creates a handler writing one document per record to w.
func NewHandler(w io.Writer, f Format) *Handler {
	return &Handler{out: w, mu: &sync.Mutex{}, format: f}
}

// Enabled reports true for all levels; filtering belongs to the slog layer.
func (h *Handler) Enabled(context.Context, slog.Level) bool { return true }

// Handle renders and writes a single record.
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	m := make(map[string]any, 4+len(h.attrs)+r.NumAttrs())
	m["timestamp_epoch_ms"] = r.Time.UnixMilli()
	m["message"] = r.Message

	for _, a := range h.attrs {
		m[a.Key] = attrValue(a.Value)
	}

	// Event fields override span fields; an explicit code attr overrides
	// the level mapping.
	hasCode := false
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "code" {
			hasCode = true
		}
		m[a.Key] = attrValue(a.Value)
		return true
	})
	if !hasCode {
		m["code"] = levelCode(r.Level)
	}

	line, err := Render(h.format, m)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = io.WriteString(h.out, line+"\n")
	return err
}

// WithAttrs returns a handler whose records carry additional span fields.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	combined := make([]slog.Attr, len(h.attrs), len(h.attrs)+len(attrs))
	copy(combined, h.attrs)
	combined = append(combined, attrs...)
	return &Handler{out: h.out, mu: h.mu, attrs: combined, format: h.format}
}

// WithGroup returns the handler unchanged: documents use a flat field
// space and groups only appear through group-valued attrs.
func (h *Handler) WithGroup(string) slog.Handler { return h }

func levelCode(l slog.Level) string {
	switch {
	case l < slog.LevelDebug:
		return "trace"
	case l < slog.LevelInfo:
		return "debug"
	case l < slog.LevelWarn:
		return "info"
	case l < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}

// attrValue converts a slog value into the renderer's value model.
// Durations become milliseconds and times become epoch milliseconds so the
// suffix rules can pick them up under _ms / _epoch_ms keys.
func attrValue(v slog.Value) any {
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindInt64:
		return v.Int64()
	case slog.KindUint64:
		return v.Uint64()
	case slog.KindFloat64:
		return v.Float64()
	case slog.KindBool:
		return v.Bool()
	case slog.KindDuration:
		return v.Duration().Milliseconds()
	case slog.KindTime:
		return v.Time().UnixMilli()
	case slog.KindGroup:
		attrs := v.Group()
		m := make(map[string]any, len(attrs))
		for _, a := range attrs {
			m[a.Key] = attrValue(a.Value)
		}
		return m
	default:
		return v.String()
	}
}

type spanKey struct{}

// WithSpan returns a context whose logger carries the given fields on
// every record logged through it.
func WithSpan(ctx context.Context, fields map[string]any) context.Context {
	parent := LoggerFrom(ctx)
	attrs := make([]slog.Attr, 0, len(fields))
	for k, v := range fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	child := slog.New(parent.Handler().WithAttrs(attrs))
	return context.WithValue(ctx, spanKey{}, child)
}

// LoggerFrom returns the span logger carried by ctx, or [slog.Default].
func LoggerFrom(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(spanKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

// ParseLogFilters normalizes log filter entries: trim, lowercase,
// deduplicate, drop empties. Accepts pre-split entries, e.g. after
// strings.Split(flag, ",").
func ParseLogFilters(entries []string) []string {
	var out []string
	for _, entry := range entries {
		s := strings.ToLower(strings.TrimSpace(entry))
		if s == "" {
			continue
		}
		duplicate := false
		for _, existing := range out {
			if existing == s {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, s)
		}
	}
	return out
}
