package dto

import (
	"time"

	"food-delivery/internal/order/domain/models"
)

type CreateOrderRequest struct {
	UserID       string             `json:"user_id"`
	RestaurantID string             `json:"restaurant_id"`
	Items        []models.OrderLine `json:"items"`
}

type StatusUpdateRequest struct {
	Status string `json:"status"`
}

type ShipperAssignRequest struct {
	ShipperID string `json:"shipper_id"`
}

// EnrichedOrder is an order with the display fields resolved from the peer services.
type EnrichedOrder struct {
	ID             string              `json:"id"`
	UserID         string              `json:"user_id"`
	UserName       string              `json:"user_name"`
	RestaurantID   string              `json:"restaurant_id"`
	RestaurantName string              `json:"restaurant_name"`
	Items          []EnrichedOrderLine `json:"items"`
	Status         string              `json:"status"`
	ShipperID      *string             `json:"shipper_id"`
	ShipperName    *string             `json:"shipper_name"`
	CreatedAt      time.Time           `json:"created_at"`
}

type EnrichedOrderLine struct {
	MenuItemID string  `json:"menu_item_id"`
	ItemName   string  `json:"item_name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

const (
	EventCreated         = "order.created"
	EventStatusUpdated   = "order.status_updated"
	EventShipperAssigned = "order.shipper_assigned"
)

// OrderEvent is published after every successful order mutation. Event doubles as the routing key.
type OrderEvent struct {
	Event        string    `json:"event"`
	OrderID      string    `json:"order_id"`
	UserID       string    `json:"user_id"`
	RestaurantID string    `json:"restaurant_id"`
	Status       string    `json:"status"`
	ShipperID    *string   `json:"shipper_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func NewOrderEvent(event string, order models.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Event:        event,
		OrderID:      order.ID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
		ShipperID:    order.ShipperID,
		OccurredAt:   at,
	}
}
