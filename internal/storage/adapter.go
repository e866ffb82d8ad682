package storage

import (
	"context"
	"encoding/json"
	"log"

	"github.com/nadscollection/storefront/internal/cart"
)

// Adapter reads and writes the cart list through a Slot. Loading never
// fails: an absent, unreadable, or corrupt slot yields an empty cart, since
// a session must stay usable when storage is degraded. Save and Clear
// return their errors and leave swallowing to the caller, so the failure
// path stays assertable.
type Adapter struct {
	slot Slot
}

func NewAdapter(slot Slot) *Adapter {
	return &Adapter{slot: slot}
}

// Load hydrates the cart from the slot. Every line is normalized: numeric
// fields are coerced during decode and missing cart IDs are backfilled for
// payloads written before the field existed. A payload that is not a JSON
// array yields an empty cart.
func (a *Adapter) Load(ctx context.Context) []cart.Line {
	data, ok, err := a.slot.Read(ctx)
	if err != nil {
		log.Printf("[Storage] Failed to read cart slot: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var lines []cart.Line
	if err := json.Unmarshal(data, &lines); err != nil {
		log.Printf("[Storage] Discarding unparsable cart payload: %v", err)
		return nil
	}

	for i := range lines {
		lines[i] = cart.Normalize(lines[i])
	}
	return lines
}

// Save overwrites the slot with a full snapshot of the cart.
func (a *Adapter) Save(ctx context.Context, lines []cart.Line) error {
	if lines == nil {
		lines = []cart.Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return a.slot.Write(ctx, data)
}

// Clear removes the slot.
func (a *Adapter) Clear(ctx context.Context) error {
	return a.slot.Delete(ctx)
}
