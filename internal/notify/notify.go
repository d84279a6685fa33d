// Package notify delivers user-facing toasts and asks for confirmations.
package notify

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Level is the toast style
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notification is one toast
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier shows toasts to the user
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

// Success, Error, Warning and Info are shorthands for Notify
func Success(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notification{Level: LevelSuccess, Message: msg})
}

func Error(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notification{Level: LevelError, Message: msg})
}

func Warning(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notification{Level: LevelWarning, Message: msg})
}

func Info(ctx context.Context, n Notifier, msg string) {
	n.Notify(ctx, Notification{Level: LevelInfo, Message: msg})
}

type zapNotifier struct {
	logger *zap.Logger
}

// NewZapNotifier logs every toast
func NewZapNotifier(logger *zap.Logger) Notifier {
	return &zapNotifier{logger: logger}
}

func (z *zapNotifier) Notify(_ context.Context, n Notification) {
	fields := []zap.Field{zap.String("level", string(n.Level)), zap.String("message", n.Message)}
	if n.Level == LevelError {
		z.logger.Warn("Toast", fields...)
		return
	}
	z.logger.Info("Toast", fields...)
}

// Recorder keeps the toasts raised so they can be returned with a response
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// Drain returns the recorded toasts and forgets them
func (r *Recorder) Drain() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.items
	r.items = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Multi fans a toast out to several notifiers
func Multi(notifiers ...Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notification) {
		for _, nt := range notifiers {
			nt.Notify(ctx, n)
		}
	})
}

type ctxKey struct{}

// WithNotifier attaches a per-request notifier to ctx
func WithNotifier(ctx context.Context, n Notifier) context.Context {
	return context.WithValue(ctx, ctxKey{}, n)
}

// FromContext returns the notifier attached to ctx, if any
func FromContext(ctx context.Context) (Notifier, bool) {
	n, ok := ctx.Value(ctxKey{}).(Notifier)
	return n, ok
}

// Contextual delivers to fallback and to any notifier attached to the
// request context.
func Contextual(fallback Notifier) Notifier {
	return NotifierFunc(func(ctx context.Context, n Notification) {
		fallback.Notify(ctx, n)
		if extra, ok := FromContext(ctx); ok {
			extra.Notify(ctx, n)
		}
	})
}

// Confirmer asks the user to confirm a destructive action
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a function to Confirmer
type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Answer is a Confirmer with a fixed reply, used when the answer arrived
// with the request.
type Answer bool

func (a Answer) Confirm(context.Context, string) bool { return bool(a) }
