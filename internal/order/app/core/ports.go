package core

import (
	"context"

	"food-delivery/internal/order/domain/dto"
	"food-delivery/internal/order/domain/models"
)

type IOrderRepo interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	SetStatus(ctx context.Context, id, status string) (models.Order, error)
	AssignShipper(ctx context.Context, id, shipperID string) (models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error)
}

// Lookup is the outcome of a best-effort peer read. Value always holds something
// displayable; Resolved is false when it is a placeholder.
type Lookup[T any] struct {
	Value    T
	Resolved bool
}

type MenuItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ILookupClient never fails: every unresolved lookup carries a placeholder value.
type ILookupClient interface {
	UserName(ctx context.Context, userID string) Lookup[string]
	RestaurantName(ctx context.Context, restaurantID string) Lookup[string]
	ShipperName(ctx context.Context, shipperID string) Lookup[string]
	MenuItem(ctx context.Context, restaurantID, menuItemID string) Lookup[MenuItem]
	SetShipperBusy(ctx context.Context, shipperID string) error
}

// IReferenceChecker reports whether an entity exists. An error means the peer could not be reached.
type IReferenceChecker interface {
	UserExists(ctx context.Context, userID string) (bool, error)
	RestaurantExists(ctx context.Context, restaurantID string) (bool, error)
}

type IPublisher interface {
	Publish(ctx context.Context, event dto.OrderEvent) error
	Close() error
}
