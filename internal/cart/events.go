package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EventType names a cart change signal
type EventType string

const EventCartUpdated EventType = "cartUpdated"

// Event is broadcast after every successful cart mutation
type Event struct {
	ID     uuid.UUID `json:"id"`
	Type   EventType `json:"type"`
	UserID string    `json:"userId"`
	Action string    `json:"action"`
	At     time.Time `json:"at"`
}

// Observer reacts to cart events, typically by re-reading its own source of
// truth.
type Observer interface {
	OnCartEvent(ctx context.Context, e Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ctx context.Context, e Event)

func (f ObserverFunc) OnCartEvent(ctx context.Context, e Event) { f(ctx, e) }

type subscription struct {
	id       int
	observer Observer
}

// Bus delivers events synchronously to its observers in subscription order
type Bus struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID int
	logger *zap.Logger
}

func NewBus(logger *zap.Logger) *Bus {
	return &Bus{logger: logger}
}

// Subscribe registers o and returns a function that removes it
func (b *Bus) Subscribe(o Observer) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, observer: o})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish hands e to every observer
func (b *Bus) Publish(ctx context.Context, e Event) {
	b.mu.RLock()
	subs := append([]subscription(nil), b.subs...)
	b.mu.RUnlock()

	b.logger.Debug("Cart event",
		zap.String("id", e.ID.String()),
		zap.String("type", string(e.Type)),
		zap.String("action", e.Action),
		zap.Int("observers", len(subs)),
	)
	for _, s := range subs {
		s.observer.OnCartEvent(ctx, e)
	}
}
