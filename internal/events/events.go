package events

import "time"

const (
	EventItemAdded      = "ItemAddedToCart"
	EventItemRemoved    = "ItemRemovedFromCart"
	EventCartCleared    = "CartCleared"
	EventOrderSubmitted = "OrderSubmitted"
)

// CartEvent is the analytics record emitted for every cart mutation.
type CartEvent struct {
	ID         string    `json:"id"`
	EventType  string    `json:"event_type"`
	SessionID  string    `json:"session_id"`
	LineKey    string    `json:"line_key,omitempty"`
	ProductID  int       `json:"product_id,omitempty"`
	Size       string    `json:"size,omitempty"`
	Price      float64   `json:"price,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
