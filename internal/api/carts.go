package api

import (
	"context"
	"log"
	"sync"

	"github.com/nadscollection/storefront/internal/cart"
	"github.com/nadscollection/storefront/internal/events"
	"github.com/nadscollection/storefront/internal/storage"
)

// SlotOpener builds the durable slot backing one session's cart.
type SlotOpener func(sessionID string) (storage.Slot, error)

// Carts hands out one cart store per session, hydrating it from its durable
// slot on first use. A slot that cannot be opened degrades to an in-memory
// one, so a session stays usable with persistence disabled.
type Carts struct {
	mu     sync.Mutex
	stores map[string]*cart.Store
	open   SlotOpener
	pub    *events.Publisher
}

// NewCarts creates the registry. pub may be nil to disable event publishing.
func NewCarts(open SlotOpener, pub *events.Publisher) *Carts {
	return &Carts{
		stores: make(map[string]*cart.Store),
		open:   open,
		pub:    pub,
	}
}

// For returns the store for a session, creating it on first use.
func (c *Carts) For(ctx context.Context, sessionID string) *cart.Store {
	c.mu.Lock()
	defer c.mu.Unlock()

	if store, ok := c.stores[sessionID]; ok {
		return store
	}

	slot, err := c.open(sessionID)
	if err != nil {
		log.Printf("[Carts] Falling back to in-memory slot for session %s: %v", sessionID, err)
		slot = storage.NewMemorySlot()
	}

	var notifier cart.Notifier
	if c.pub != nil {
		notifier = c.pub.ForSession(sessionID)
	}

	store := cart.NewStore(ctx, storage.NewAdapter(slot), notifier)
	c.stores[sessionID] = store
	return store
}
