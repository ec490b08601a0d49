package domain

import "time"

const (
	EventCartUpdated  = "cart.updated"
	EventCartReplaced = "cart.replaced"
)

// CartEvent is published after a successful cart mutation.
type CartEvent struct {
	EventID    string     `json:"event_id"`
	Type       string     `json:"type"`
	CustomerID string     `json:"customer_id,omitempty"`
	Items      []CartItem `json:"items"`
	Timestamp  time.Time  `json:"timestamp"`
}
