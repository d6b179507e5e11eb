package core

import (
	"context"
	"errors"

	"food-delivery/internal/restaurant/domain/models"
	xerrors "food-delivery/internal/xpkg/errors"
)

const (
	RestaurantsCollection = "restaurants"
	MenuItemsCollection   = "menu_items"
)

var (
	ErrRestaurantNotFound = errors.New("Restaurant not found")
	ErrMenuItemNotFound   = errors.New("Menu item not found")
	ErrInvalidRestaurant  = errors.New("invalid restaurant")
	ErrInvalidMenuItem    = errors.New("invalid menu item")

	ErrFieldIsEmpty = xerrors.ErrFieldIsEmpty
)

type IRestaurantRepo interface {
	Create(ctx context.Context, r models.Restaurant) (models.Restaurant, error)
	Get(ctx context.Context, id string) (models.Restaurant, error)
	List(ctx context.Context) ([]models.Restaurant, error)
	// Delete removes the restaurant together with its menu items.
	Delete(ctx context.Context, id string) error

	AddMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (models.MenuItem, error)
	// ListMenuItems returns every item when restaurantID is empty.
	ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
}
