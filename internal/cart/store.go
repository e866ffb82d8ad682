package cart

import (
	"context"
	"log"
	"sync"
)

// Persister mirrors the cart to a durable slot. The store treats it as
// best-effort: a failed write is logged and the in-memory cart stays
// authoritative for the session.
type Persister interface {
	Load(ctx context.Context) []Line
	Save(ctx context.Context, lines []Line) error
	Clear(ctx context.Context) error
}

// Notifier receives change notifications after a mutation commits.
// Implementations are expected to be best-effort and non-blocking.
type Notifier interface {
	ItemAdded(ctx context.Context, l Line)
	ItemRemoved(ctx context.Context, l Line)
	Cleared(ctx context.Context)
}

// Store holds the live cart for one session. It is the only writer of the
// in-memory list and mirrors every mutation through the Persister before
// returning, so no caller observes committed state without the persisted
// write having been issued. All methods are safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	lines     []Line
	visible   bool
	persister Persister
	notifier  Notifier
}

// NewStore hydrates a store from the persister. notifier may be nil.
func NewStore(ctx context.Context, p Persister, n Notifier) *Store {
	lines := p.Load(ctx)
	return &Store{
		lines:     lines,
		visible:   len(lines) > 0,
		persister: p,
		notifier:  n,
	}
}

// Lines returns a copy of the current cart in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count reports the number of lines in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Count(s.lines)
}

// Total reports the current cart total.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.lines)
}

// Visible reports whether the cart notification should be shown.
func (s *Store) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// SetVisible overrides the notification flag. Dismissal only lasts until the
// next mutation that grows the cart.
func (s *Store) SetVisible(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = v
}

// Add appends a line unless its key is already present. Returns false on a
// duplicate; clients typically treat that as a toggle and remove instead.
func (s *Store) Add(ctx context.Context, l Line) bool {
	s.mu.Lock()
	next, ok := Add(s.lines, l)
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.lines = next
	s.visible = true
	s.persist(ctx)
	added := next[len(next)-1]
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.ItemAdded(ctx, added)
	}
	return true
}

// RemoveByKey drops the line with the given key, if present.
func (s *Store) RemoveByKey(ctx context.Context, key string) {
	s.mu.Lock()
	var removed *Line
	for i := range s.lines {
		if s.lines[i].Key() == key {
			l := s.lines[i]
			removed = &l
			break
		}
	}
	s.lines = RemoveByKey(s.lines, key)
	s.persist(ctx)
	s.mu.Unlock()

	if removed != nil && s.notifier != nil {
		s.notifier.ItemRemoved(ctx, *removed)
	}
}

// RemoveLine drops the line with the same identity as l.
func (s *Store) RemoveLine(ctx context.Context, l Line) {
	s.RemoveByKey(ctx, l.Key())
}

// RemoveAllVariants drops every size variant of a product.
func (s *Store) RemoveAllVariants(ctx context.Context, productID int) {
	s.mu.Lock()
	removed := Variants(s.lines, productID)
	s.lines = RemoveAllVariants(s.lines, productID)
	s.persist(ctx)
	s.mu.Unlock()

	if s.notifier != nil {
		for _, l := range removed {
			s.notifier.ItemRemoved(ctx, l)
		}
	}
}

// Clear empties the cart and removes the durable slot.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.lines = nil
	s.visible = false
	if err := s.persister.Clear(ctx); err != nil {
		log.Printf("[Cart] Failed to clear slot: %v", err)
	}
	s.mu.Unlock()

	if s.notifier != nil {
		s.notifier.Cleared(ctx)
	}
}

// Find looks up the line for a product in a given size.
func (s *Store) Find(productID int, selectedSize string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Find(s.lines, productID, selectedSize)
}

// Variants returns every line for a product across all sizes.
func (s *Store) Variants(productID int) []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Variants(s.lines, productID)
}

// persist mirrors the current list to the durable slot. Called with the
// lock held; failures degrade to in-session-only state.
func (s *Store) persist(ctx context.Context) {
	if err := s.persister.Save(ctx, s.lines); err != nil {
		log.Printf("[Cart] Failed to persist cart: %v", err)
	}
}
