package models

import "time"

// Event types
const (
	EventTypeCheckoutStarted = "CHECKOUT_STARTED"
	EventTypeOrderSubmitted  = "ORDER_SUBMITTED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// CheckoutStartedEvent published when a cart enters the checkout flow
type CheckoutStartedEvent struct {
	BaseEvent
	SessionID string `json:"session_id"`
	ItemCount int    `json:"item_count"`
	Subtotal  int64  `json:"subtotal"`
}

// OrderSubmittedEvent published when checkout reaches the submitted state.
// Best-effort: a publish failure never fails the checkout.
type OrderSubmittedEvent struct {
	BaseEvent
	OrderRef      string      `json:"order_ref"`
	SessionID     string      `json:"session_id"`
	CustomerEmail string      `json:"customer_email"`
	Total         int64       `json:"total"`
	Items         []OrderLine `json:"items"`
}
