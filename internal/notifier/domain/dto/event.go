package dto

import "time"

// OrderEvent mirrors the message the order-service publishes.
type OrderEvent struct {
	Event        string    `json:"event"`
	OrderID      string    `json:"order_id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Status       string    `json:"status"`
	ShipperID    *string   `json:"shipper_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
