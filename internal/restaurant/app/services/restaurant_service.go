package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"food-delivery/internal/restaurant/app/core"
	"food-delivery/internal/restaurant/domain/dto"
	"food-delivery/internal/restaurant/domain/models"
	"food-delivery/internal/xpkg/logger"
)

type RestaurantService struct {
	repo  core.IRestaurantRepo
	mylog logger.Logger
}

func NewRestaurantService(repo core.IRestaurantRepo, mylog logger.Logger) *RestaurantService {
	return &RestaurantService{repo: repo, mylog: mylog}
}

func (rs *RestaurantService) Create(ctx context.Context, req dto.CreateRestaurantRequest) (dto.RestaurantResponse, error) {
	if req.Name == "" {
		return dto.RestaurantResponse{}, fmt.Errorf("%w: name: %w", core.ErrInvalidRestaurant, core.ErrFieldIsEmpty)
	}

	r, err := rs.repo.Create(ctx, models.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
	})
	if err != nil {
		rs.mylog.Action("restaurant_create").Error("Failed to save restaurant", err)
		return dto.RestaurantResponse{}, err
	}
	rs.mylog.Action("restaurant_create").Info("Restaurant created", "restaurant_id", r.ID)
	return dto.NewRestaurantResponse(r, nil), nil
}

func (rs *RestaurantService) Get(ctx context.Context, id string) (dto.RestaurantResponse, error) {
	r, err := rs.repo.Get(ctx, id)
	if err != nil {
		return dto.RestaurantResponse{}, err
	}
	items, err := rs.repo.ListMenuItems(ctx, r.ID)
	if err != nil {
		return dto.RestaurantResponse{}, err
	}
	return dto.NewRestaurantResponse(r, items), nil
}

// List loads restaurants and all menu items concurrently and groups items by restaurant.
func (rs *RestaurantService) List(ctx context.Context) ([]dto.RestaurantResponse, error) {
	var (
		restaurants []models.Restaurant
		items       []models.MenuItem
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		restaurants, err = rs.repo.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = rs.repo.ListMenuItems(gctx, "")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byRestaurant := make(map[string][]models.MenuItem, len(restaurants))
	for _, item := range items {
		byRestaurant[item.RestaurantID] = append(byRestaurant[item.RestaurantID], item)
	}

	out := make([]dto.RestaurantResponse, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, dto.NewRestaurantResponse(r, byRestaurant[r.ID]))
	}
	return out, nil
}

func (rs *RestaurantService) Delete(ctx context.Context, id string) error {
	if err := rs.repo.Delete(ctx, id); err != nil {
		return err
	}
	rs.mylog.Action("restaurant_delete").Info("Restaurant deleted", "restaurant_id", id)
	return nil
}

func (rs *RestaurantService) AddMenuItem(ctx context.Context, restaurantID string, req dto.MenuItemRequest) (dto.MenuItemResponse, error) {
	if err := validateMenuItem(req); err != nil {
		return dto.MenuItemResponse{}, err
	}
	if _, err := rs.repo.Get(ctx, restaurantID); err != nil {
		return dto.MenuItemResponse{}, err
	}

	item, err := rs.repo.AddMenuItem(ctx, newMenuItem(restaurantID, "", req))
	if err != nil {
		rs.mylog.Action("menu_item_add").Error("Failed to save menu item", err, "restaurant_id", restaurantID)
		return dto.MenuItemResponse{}, err
	}
	return dto.NewMenuItemResponse(item), nil
}

// ListMenuItems returns an empty list for an unknown restaurant.
func (rs *RestaurantService) ListMenuItems(ctx context.Context, restaurantID string) ([]dto.MenuItemResponse, error) {
	if restaurantID == "" {
		return []dto.MenuItemResponse{}, nil
	}
	items, err := rs.repo.ListMenuItems(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return dto.NewMenuItemResponses(items), nil
}

// UpdateMenuItem replaces the item's fields. Items of another restaurant are not found.
func (rs *RestaurantService) UpdateMenuItem(ctx context.Context, restaurantID, itemID string, req dto.MenuItemRequest) (dto.MenuItemResponse, error) {
	if err := validateMenuItem(req); err != nil {
		return dto.MenuItemResponse{}, err
	}
	if err := rs.ownedItem(ctx, restaurantID, itemID); err != nil {
		return dto.MenuItemResponse{}, err
	}

	item := newMenuItem(restaurantID, itemID, req)
	if err := rs.repo.UpdateMenuItem(ctx, item); err != nil {
		return dto.MenuItemResponse{}, err
	}
	return dto.NewMenuItemResponse(item), nil
}

func (rs *RestaurantService) DeleteMenuItem(ctx context.Context, restaurantID, itemID string) error {
	if err := rs.ownedItem(ctx, restaurantID, itemID); err != nil {
		return err
	}
	return rs.repo.DeleteMenuItem(ctx, itemID)
}

func (rs *RestaurantService) ownedItem(ctx context.Context, restaurantID, itemID string) error {
	item, err := rs.repo.GetMenuItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item.RestaurantID != restaurantID {
		return fmt.Errorf("%w: belongs to another restaurant", core.ErrMenuItemNotFound)
	}
	return nil
}

func newMenuItem(restaurantID, id string, req dto.MenuItemRequest) models.MenuItem {
	return models.MenuItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		Available:    req.IsAvailable(),
	}
}

func validateMenuItem(req dto.MenuItemRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name: %w", core.ErrInvalidMenuItem, core.ErrFieldIsEmpty)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", core.ErrInvalidMenuItem)
	}
	return nil
}

func IsClientError(err error) bool {
	return errors.Is(err, core.ErrInvalidRestaurant) || errors.Is(err, core.ErrInvalidMenuItem)
}
