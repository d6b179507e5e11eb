package db

import (
	"context"
	"fmt"

	"food-delivery/internal/restaurant/app/core"
	"food-delivery/internal/restaurant/domain/models"
	"food-delivery/internal/xpkg/docstore"
)

type RestaurantRepo struct {
	restaurants docstore.Collection
	menuItems   docstore.Collection
}

func NewRestaurantRepo(store docstore.Store) *RestaurantRepo {
	return &RestaurantRepo{
		restaurants: store.Collection(core.RestaurantsCollection),
		menuItems:   store.Collection(core.MenuItemsCollection),
	}
}

func (rr *RestaurantRepo) Create(ctx context.Context, r models.Restaurant) (models.Restaurant, error) {
	id, err := rr.restaurants.InsertOne(ctx, r)
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("failed to insert restaurant: %w", err)
	}
	r.ID = id
	return r, nil
}

func (rr *RestaurantRepo) Get(ctx context.Context, id string) (models.Restaurant, error) {
	var r models.Restaurant
	if err := rr.restaurants.FindOne(ctx, id, &r); err != nil {
		return models.Restaurant{}, fmt.Errorf("%w: %v", core.ErrRestaurantNotFound, err)
	}
	return r, nil
}

func (rr *RestaurantRepo) List(ctx context.Context) ([]models.Restaurant, error) {
	list := make([]models.Restaurant, 0)
	if err := rr.restaurants.FindMany(ctx, nil, &list); err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	return list, nil
}

func (rr *RestaurantRepo) Delete(ctx context.Context, id string) error {
	if err := rr.restaurants.DeleteOne(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", core.ErrRestaurantNotFound, err)
	}
	if _, err := rr.menuItems.DeleteMany(ctx, docstore.Filter{"restaurant_id": id}); err != nil {
		return fmt.Errorf("failed to delete menu items of %s: %w", id, err)
	}
	return nil
}

func (rr *RestaurantRepo) AddMenuItem(ctx context.Context, item models.MenuItem) (models.MenuItem, error) {
	id, err := rr.menuItems.InsertOne(ctx, item)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("failed to insert menu item: %w", err)
	}
	item.ID = id
	return item, nil
}

func (rr *RestaurantRepo) GetMenuItem(ctx context.Context, id string) (models.MenuItem, error) {
	var item models.MenuItem
	if err := rr.menuItems.FindOne(ctx, id, &item); err != nil {
		return models.MenuItem{}, fmt.Errorf("%w: %v", core.ErrMenuItemNotFound, err)
	}
	return item, nil
}

func (rr *RestaurantRepo) ListMenuItems(ctx context.Context, restaurantID string) ([]models.MenuItem, error) {
	var filter docstore.Filter
	if restaurantID != "" {
		filter = docstore.Filter{"restaurant_id": restaurantID}
	}

	items := make([]models.MenuItem, 0)
	if err := rr.menuItems.FindMany(ctx, filter, &items); err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

func (rr *RestaurantRepo) UpdateMenuItem(ctx context.Context, item models.MenuItem) error {
	fields := docstore.Fields{
		"name":        item.Name,
		"description": item.Description,
		"price":       item.Price,
		"available":   item.Available,
	}
	if err := rr.menuItems.UpdateFields(ctx, item.ID, fields); err != nil {
		return fmt.Errorf("%w: %v", core.ErrMenuItemNotFound, err)
	}
	return nil
}

func (rr *RestaurantRepo) DeleteMenuItem(ctx context.Context, id string) error {
	if err := rr.menuItems.DeleteOne(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", core.ErrMenuItemNotFound, err)
	}
	return nil
}
