package log

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"
)

// MaskValue replaces masked attribute values.
const MaskValue = "***REDACTED***"

// DefaultMaxValueLen is the rune limit for string attribute values.
const DefaultMaxValueLen = 256

// truncationMark is appended to truncated values.
const truncationMark = "…"

// sensitiveKeywords mark attribute keys whose values are never logged.
// The bare word "key" is excluded because of false positives such as
// "primary_key".
var sensitiveKeywords = []string{
	"password", "passwd", "secret", "token", "auth", "cookie",
	"credential", "api_key", "apikey", "session",
}

// SafeHandler wraps an slog.Handler and cleans attribute values.
type SafeHandler struct {
	handler     slog.Handler
	maxValueLen int
}

// HandlerOption configures a SafeHandler.
type HandlerOption func(*SafeHandler)

// WithMaxValueLen sets the rune limit for string values. Zero or less
// disables truncation.
func WithMaxValueLen(n int) HandlerOption {
	return func(h *SafeHandler) {
		h.maxValueLen = n
	}
}

// NewSafeHandler creates a SafeHandler wrapping handler.
// If handler is nil, slog.Default().Handler() is used.
func NewSafeHandler(handler slog.Handler, opts ...HandlerOption) *SafeHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	h := &SafeHandler{handler: handler, maxValueLen: DefaultMaxValueLen}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Enabled delegates to the underlying handler.
func (h *SafeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle cleans the record's attributes and passes it on.
func (h *SafeHandler) Handle(ctx context.Context, r slog.Record) error {
	cleaned := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		cleaned.AddAttrs(h.cleanAttr(a))
		return true
	})
	return h.handler.Handle(ctx, cleaned)
}

// WithAttrs returns a handler with the cleaned attributes added.
func (h *SafeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	cleaned := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		cleaned[i] = h.cleanAttr(a)
	}
	return &SafeHandler{handler: h.handler.WithAttrs(cleaned), maxValueLen: h.maxValueLen}
}

// WithGroup returns a handler with the given group name.
func (h *SafeHandler) WithGroup(name string) slog.Handler {
	return &SafeHandler{handler: h.handler.WithGroup(name), maxValueLen: h.maxValueLen}
}

// cleanAttr cleans a single attribute, recursing into groups.
func (h *SafeHandler) cleanAttr(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		cleaned := make([]slog.Attr, len(attrs))
		for i, ga := range attrs {
			cleaned[i] = h.cleanAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(cleaned...)}
	}

	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return slog.String(a.Key, h.cleanString(a.Value.String()))
	case slog.KindAny:
		// Errors and Stringers can carry URLs too.
		switch v := a.Value.Any().(type) {
		case error:
			return slog.String(a.Key, h.cleanString(v.Error()))
		case *url.URL:
			return slog.String(a.Key, h.cleanString(v.Redacted()))
		}
	}
	return a
}

// cleanString redacts URL credentials and truncates s.
func (h *SafeHandler) cleanString(s string) string {
	s = redactURLs(s)
	if h.maxValueLen > 0 && utf8.RuneCountInString(s) > h.maxValueLen {
		runes := []rune(s)
		s = string(runes[:h.maxValueLen]) + truncationMark
	}
	return s
}

// isSensitiveKey reports whether a key names a secret.
func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

// redactURLs replaces the password of every URL with userinfo found in s.
func redactURLs(s string) string {
	if !strings.Contains(s, "://") || !strings.Contains(s, "@") {
		return s
	}
	fields := strings.Fields(s)
	changed := false
	for i, f := range fields {
		trimmed := strings.Trim(f, `"'(),:`)
		u, err := url.Parse(trimmed)
		if err != nil || u.User == nil || u.Host == "" {
			continue
		}
		fields[i] = strings.Replace(f, trimmed, redactUser(u), 1)
		changed = true
	}
	if !changed {
		return s
	}
	return strings.Join(fields, " ")
}

// redactUser masks both the user name and the password.
func redactUser(u *url.URL) string {
	c := *u
	c.User = url.User(MaskValue)
	return c.String()
}

// LevelFor maps the CLI verbosity flags to a log level.
// verbose wins over quiet.
func LevelFor(verbose, quiet bool) slog.Level {
	switch {
	case verbose:
		return slog.LevelDebug
	case quiet:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a text logger writing to w through a SafeHandler.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	textHandler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSafeHandler(textHandler))
}

// NewJSONLogger creates a JSON logger writing to w through a SafeHandler.
func NewJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewSafeHandler(jsonHandler))
}
