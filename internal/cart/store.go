package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/cache"
	"github.com/jafarshop/storefront/internal/domain"
)

// Store holds the cart lines in server order and mirrors them into device
// storage. Aggregates are recomputed on every write.
type Store struct {
	mu         sync.RWMutex
	items      []domain.CartItem
	totalItems int
	totalPrice decimal.Decimal
	surcharges decimal.Decimal
	hydrated   bool
	attempted  bool

	storage cache.Storage
	logger  *zap.Logger
}

// NewStore loads the cached snapshot, if any, so the first render has data
func NewStore(ctx context.Context, storage cache.Storage, logger *zap.Logger) *Store {
	s := &Store{
		storage:    storage,
		logger:     logger,
		totalPrice: decimal.Zero,
		surcharges: decimal.Zero,
	}

	var cached []domain.CartItem
	found, err := cache.GetJSON(ctx, storage, cache.KeyCartItems, &cached)
	if err != nil {
		logger.Warn("Ignoring unreadable cart cache", zap.Error(err))
		return s
	}
	if found {
		s.hydrated = true
		s.setLocked(cached)
	}
	return s
}

func (s *Store) setLocked(items []domain.CartItem) {
	if items == nil {
		items = []domain.CartItem{}
	}
	s.items = items
	s.totalItems = 0
	s.totalPrice = decimal.Zero
	s.surcharges = decimal.Zero
	for _, item := range items {
		s.totalItems += item.Quantity
		s.totalPrice = s.totalPrice.Add(item.LineTotal())
		s.surcharges = s.surcharges.Add(item.Surcharge())
	}
}

func (s *Store) persistLocked(ctx context.Context) error {
	if err := cache.SetJSON(ctx, s.storage, cache.KeyCartItems, s.items); err != nil {
		s.logger.Warn("Failed to write cart cache", zap.Error(err))
		return err
	}
	return nil
}

// Replace overwrites the lines and the cache together
func (s *Store) Replace(ctx context.Context, items []domain.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLocked(append([]domain.CartItem(nil), items...))
	s.hydrated = true
	s.attempted = true
	return s.persistLocked(ctx)
}

// Reset empties the lines after a failed fetch. The cache is left alone.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.setLocked(nil)
	s.attempted = true
}

// Remove drops a line from memory and cache. The returned rollback puts the
// line back at its old position.
func (s *Store) Remove(ctx context.Context, itemID string) (rollback func(context.Context), ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexLocked(itemID)
	if idx < 0 {
		return func(context.Context) {}, false
	}
	removed := s.items[idx]

	next := make([]domain.CartItem, 0, len(s.items)-1)
	next = append(next, s.items[:idx]...)
	next = append(next, s.items[idx+1:]...)
	s.setLocked(next)
	s.persistLocked(ctx)

	return func(ctx context.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.indexLocked(removed.ID) >= 0 {
			return
		}
		at := idx
		if at > len(s.items) {
			at = len(s.items)
		}
		restored := make([]domain.CartItem, 0, len(s.items)+1)
		restored = append(restored, s.items[:at]...)
		restored = append(restored, removed)
		restored = append(restored, s.items[at:]...)
		s.setLocked(restored)
		s.persistLocked(ctx)
	}, true
}

func (s *Store) indexLocked(itemID string) int {
	for i, item := range s.items {
		if item.ID == itemID {
			return i
		}
	}
	return -1
}

// Items returns a copy of the lines
func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.CartItem{}, s.items...)
}

// Item looks a line up by its id
func (s *Store) Item(itemID string) (domain.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexLocked(itemID); idx >= 0 {
		return s.items[idx], true
	}
	return domain.CartItem{}, false
}

// ItemByProduct returns the first line holding productID
func (s *Store) ItemByProduct(productID string) (domain.CartItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ProductID == productID {
			return item, true
		}
	}
	return domain.CartItem{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// TotalItems is the sum of quantities
func (s *Store) TotalItems() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalItems
}

// TotalPrice is the sum of quantity × base price. Option surcharges are not
// included; see Surcharges.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalPrice
}

// Surcharges is the sum of quantity × option surcharges
func (s *Store) Surcharges() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.surcharges
}

// Hydrated reports whether a cart snapshot exists in device storage
func (s *Store) Hydrated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hydrated
}

// Empty is true once the cart is known to have no lines
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0 && (s.hydrated || s.attempted)
}

// Loading is true before anything, cached or fetched, is known
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0 && !s.hydrated && !s.attempted
}
