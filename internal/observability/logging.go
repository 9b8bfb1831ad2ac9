// Package observability provides structured logging and Prometheus metrics.
package observability

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const (
	userIDKey   contextKey = "log_user_id"
	userSlotKey contextKey = "log_user_slot"
)

// userSlot lets middleware that runs before authentication see the user id
// set further down the chain.
type userSlot struct {
	mu sync.Mutex
	id string
}

func (s *userSlot) set(id string) {
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}

func (s *userSlot) get() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// ctxHandler adds request-scoped values to every record logged with a context.
type ctxHandler struct {
	slog.Handler
}

func (h *ctxHandler) Handle(ctx context.Context, r slog.Record) error {
	if rid := chimw.GetReqID(ctx); rid != "" {
		r.AddAttrs(slog.String("request_id", rid))
	}
	if uid, ok := ctx.Value(userIDKey).(string); ok {
		r.AddAttrs(slog.String("user_id", uid))
	} else if slot, ok := ctx.Value(userSlotKey).(*userSlot); ok {
		if uid := slot.get(); uid != "" {
			r.AddAttrs(slog.String("user_id", uid))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ctxHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ctxHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ctxHandler) WithGroup(name string) slog.Handler {
	return &ctxHandler{h.Handler.WithGroup(name)}
}

// NewLogger builds the process logger: JSON in production, text elsewhere.
func NewLogger(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(env, "production") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(&ctxHandler{handler})
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithUserSlot returns a context whose log records pick up a user id that
// WithUserID records later on a derived context.
func WithUserSlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, userSlotKey, &userSlot{})
}

// WithUserID tags ctx so later log records carry the authenticated user.
func WithUserID(ctx context.Context, userID string) context.Context {
	if slot, ok := ctx.Value(userSlotKey).(*userSlot); ok {
		slot.set(userID)
	}
	return context.WithValue(ctx, userIDKey, userID)
}
