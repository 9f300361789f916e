package domain

import "time"

// OrderEvent is one row of the order event log, copied from the order
// store by the relay once an order is finalized.
type OrderEvent struct {
	ID        string      `json:"eventId"`
	OrderID   string      `json:"orderId"`
	Status    OrderStatus `json:"status"`
	EventDate time.Time   `json:"eventDate"`
	CreatedAt time.Time   `json:"createdAt"`
}
