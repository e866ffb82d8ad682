package storage

import "context"

// DefaultKey is the slot name backing the cart.
const DefaultKey = "cart"

// Slot is a single named durable key-value entry. Writes are full-snapshot
// overwrites; there are no deltas. Concurrent writers to the same slot are
// not coordinated, last writer wins.
type Slot interface {
	// Read returns the stored payload. ok is false when the slot is absent.
	Read(ctx context.Context) (data []byte, ok bool, err error)

	// Write replaces the payload.
	Write(ctx context.Context, data []byte) error

	// Delete removes the slot. Deleting an absent slot is not an error.
	Delete(ctx context.Context) error
}
