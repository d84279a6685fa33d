package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/cache"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/internal/session"
)

// DefaultIdleTimeout is how long an unused service stays registered
const DefaultIdleTimeout = 30 * time.Minute

type registered struct {
	svc      *Service
	lastUsed time.Time
}

// Registry keeps one Service per signed-in user. All services share a bus, so
// a change made through one of them reaches every observer of that user.
// Services idle for longer than the idle timeout are closed and dropped; the
// next request rebuilds them from device storage.
type Registry struct {
	mu       sync.Mutex
	services map[string]*registered
	idle     time.Duration
	swept    time.Time
	now      func() time.Time

	backend  Backend
	storage  cache.Storage
	notifier notify.Notifier
	bus      *Bus
	logger   *zap.Logger
}

// NewRegistry scopes storage per user; notifier receives every toast
func NewRegistry(backend Backend, storage cache.Storage, notifier notify.Notifier, logger *zap.Logger) *Registry {
	return &Registry{
		services: make(map[string]*registered),
		idle:     DefaultIdleTimeout,
		now:      time.Now,
		backend:  backend,
		storage:  storage,
		notifier: notifier,
		bus:      NewBus(logger),
		logger:   logger,
	}
}

// SetIdleTimeout changes the eviction window. Zero keeps services forever.
func (r *Registry) SetIdleTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idle = d
}

// For returns user's service, creating it on first use
func (r *Registry) For(ctx context.Context, user domain.User) *Service {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.sweepLocked(now)

	if entry, ok := r.services[user.ID]; ok {
		entry.lastUsed = now
		return entry.svc
	}

	svc := NewService(ctx, Dependencies{
		Backend:  r.backend,
		Storage:  cache.ForUser(r.storage, user.ID),
		Sessions: session.Static(&user),
		Notifier: r.notifier,
		Bus:      r.bus,
	}, r.logger.With(zap.String("user_id", user.ID)))
	r.services[user.ID] = &registered{svc: svc, lastUsed: now}

	r.logger.Debug("Cart service created", zap.String("user_id", user.ID), zap.Int("services", len(r.services)))
	return svc
}

// sweepLocked closes idle services, at most twice per idle window
func (r *Registry) sweepLocked(now time.Time) {
	if r.idle <= 0 || now.Sub(r.swept) < r.idle/2 {
		return
	}
	r.swept = now

	for id, entry := range r.services {
		if now.Sub(entry.lastUsed) > r.idle {
			entry.svc.Close()
			delete(r.services, id)
			r.logger.Debug("Cart service evicted", zap.String("user_id", id))
		}
	}
}

// Bus is the change signal shared by all services
func (r *Registry) Bus() *Bus { return r.bus }

// Len is the number of live services
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.services)
}

// Close detaches every service from the bus
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, entry := range r.services {
		entry.svc.Close()
		delete(r.services, id)
	}
}
