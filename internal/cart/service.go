// Package cart keeps the shopping-cart page state in sync with the
// storefront backend and decides whether the cart can be checked out.
package cart

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/cache"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/notify"
	"github.com/jafarshop/storefront/internal/session"
	"github.com/jafarshop/storefront/internal/storefront"
	"github.com/jafarshop/storefront/pkg/errors"
)

// Backend is the part of the storefront API the cart page uses
type Backend interface {
	FetchCart(ctx context.Context, userID string) ([]domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	ClearCart(ctx context.Context, userID string) error
	UpdateOptions(ctx context.Context, userID string, req storefront.UpdateOptionsRequest) (*storefront.UpdateOptionsResponse, error)
}

var _ Backend = (*storefront.Client)(nil)

// Dependencies are the collaborators a Service is built from
type Dependencies struct {
	Backend  Backend
	Storage  cache.Storage
	Sessions session.Provider
	Notifier notify.Notifier
	Bus      *Bus
}

// Service is the cart sync client: it performs cart calls against the
// backend and turns their results into store updates and toasts.
type Service struct {
	backend  Backend
	store    *Store
	storage  cache.Storage
	sessions session.Provider
	notifier notify.Notifier
	bus      *Bus
	logger   *zap.Logger

	updating    atomic.Bool
	now         func() time.Time
	unsubscribe func()
}

// NewService builds the store from the cached snapshot and subscribes the
// service to its own change signal.
func NewService(ctx context.Context, deps Dependencies, logger *zap.Logger) *Service {
	if deps.Bus == nil {
		deps.Bus = NewBus(logger)
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.NewZapNotifier(logger)
	}

	s := &Service{
		backend:  deps.Backend,
		store:    NewStore(ctx, deps.Storage, logger),
		storage:  deps.Storage,
		sessions: deps.Sessions,
		notifier: deps.Notifier,
		bus:      deps.Bus,
		logger:   logger,
		now:      time.Now,
	}
	s.unsubscribe = s.bus.Subscribe(ObserverFunc(s.onCartEvent))
	return s
}

// Close detaches the service from the bus
func (s *Service) Close() {
	s.unsubscribe()
}

func (s *Service) Store() *Store { return s.store }

func (s *Service) Bus() *Bus { return s.bus }

// Updating reports whether a mutation is in flight
func (s *Service) Updating() bool { return s.updating.Load() }

func (s *Service) onCartEvent(ctx context.Context, e Event) {
	if e.Type != EventCartUpdated {
		return
	}
	user, err := s.sessions.Current(ctx)
	if err != nil || user.ID != e.UserID {
		return
	}
	s.fetch(ctx, user)
}

// user resolves the session or raises the auth-required toast
func (s *Service) user(ctx context.Context) (*domain.User, error) {
	user, err := s.sessions.Current(ctx)
	if err != nil {
		notify.Error(ctx, s.notifier, msgLoginRequired)
		return nil, err
	}
	return user, nil
}

// begin claims the updating flag; the caller must call end
func (s *Service) begin(ctx context.Context) error {
	if !s.updating.CompareAndSwap(false, true) {
		notify.Warning(ctx, s.notifier, msgBusy)
		return &errors.ErrBusy{}
	}
	return nil
}

func (s *Service) end() {
	s.updating.Store(false)
}

// Fetch loads the cart. Backend failures leave an empty cart and no toast.
func (s *Service) Fetch(ctx context.Context) error {
	user, err := s.user(ctx)
	if err != nil {
		return err
	}
	s.fetch(ctx, user)
	return nil
}

func (s *Service) fetch(ctx context.Context, user *domain.User) {
	items, err := s.backend.FetchCart(ctx, user.ID)
	if err != nil {
		s.logger.Warn("Failed to fetch cart, showing it empty",
			zap.String("user_id", user.ID),
			zap.Error(err),
		)
		s.store.Reset()
		return
	}
	s.store.Replace(ctx, items)
}

// line finds a cart line, reading the cart once when the store does not
// hold it, so a mutation on a service with no snapshot still reaches the
// backend.
func (s *Service) line(ctx context.Context, user *domain.User, find func() (domain.CartItem, bool)) (domain.CartItem, bool) {
	if item, ok := find(); ok {
		return item, true
	}
	s.fetch(ctx, user)
	return find()
}

// commit signals a cart change: timestamps go to device storage, then the
// event is published and every observer (this service included) re-reads.
func (s *Service) commit(ctx context.Context, user *domain.User, action string) {
	now := s.now()
	stamp := []byte(strconv.FormatInt(now.UnixMilli(), 10))
	for _, key := range []string{cache.KeyCartUpdated, cache.KeyLastCartUpdate} {
		if err := s.storage.Set(ctx, key, stamp); err != nil {
			s.logger.Warn("Failed to persist cart timestamp", zap.String("key", key), zap.Error(err))
		}
	}

	s.bus.Publish(ctx, Event{
		ID:     uuid.New(),
		Type:   EventCartUpdated,
		UserID: user.ID,
		Action: action,
		At:     now,
	})
}

// Incomplete returns the lines that block checkout
func (s *Service) Incomplete() []Incomplete {
	return ValidateCart(s.store.Items())
}

// CanCheckout is true when every required option of every line is filled
func (s *Service) CanCheckout() bool {
	return CanCheckout(s.store.Items())
}

// RememberedOptions returns the options last saved for productID
func (s *Service) RememberedOptions(ctx context.Context, productID string) (map[string]string, error) {
	selected := map[string]string{}
	if _, err := cache.GetJSON(ctx, s.storage, cache.ProductOptionsKey(productID), &selected); err != nil {
		return nil, err
	}
	return selected, nil
}
