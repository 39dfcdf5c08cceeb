package domain

import "time"

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderPlacedMessage is queued when an order is created so follow-up work
// (confirmation, audit trail) happens off the request path.
type OrderPlacedMessage struct {
	OrderID string `json:"order_id"`
}

// OrderStatusEvent is queued when a status change is requested; the worker
// applies it to the store and writes the audit record.
type OrderStatusEvent struct {
	EventType string    `json:"event_type"`
	OrderID   string    `json:"order_id"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
	UserID    string    `json:"user_id"`
}
