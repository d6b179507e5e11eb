package models

import "time"

const (
	StatusCart      = "cart"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
)

// Statuses lists the lifecycle in order.
var Statuses = []string{
	StatusCart,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusShipped,
	StatusDelivered,
}

type Order struct {
	ID           string      `bson:"_id,omitempty" json:"id"`
	UserID       string      `bson:"user_id" json:"user_id"`
	RestaurantID string      `bson:"restaurant_id" json:"restaurant_id"`
	Items        []OrderLine `bson:"items" json:"items"`
	Status       string      `bson:"status" json:"status"`
	ShipperID    *string     `bson:"shipper_id" json:"shipper_id"`
	CreatedAt    time.Time   `bson:"created_at" json:"created_at"`
}

type OrderLine struct {
	MenuItemID string `bson:"menu_item_id" json:"menu_item_id"`
	Quantity   int    `bson:"quantity" json:"quantity"`
}
