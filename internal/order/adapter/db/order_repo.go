package db

import (
	"context"
	"fmt"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/domain/models"
	"food-delivery/internal/xpkg/docstore"
)

type OrderRepo struct {
	orders docstore.Collection
}

func NewOrderRepo(store docstore.Store) *OrderRepo {
	return &OrderRepo{orders: store.Collection(core.OrdersCollection)}
}

func (or *OrderRepo) Create(ctx context.Context, order models.Order) (models.Order, error) {
	id, err := or.orders.InsertOne(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}
	order.ID = id
	return order, nil
}

// Get reports every failure as ErrOrderNotFound: malformed ids, missing
// documents and store errors are not told apart.
func (or *OrderRepo) Get(ctx context.Context, id string) (models.Order, error) {
	var order models.Order
	if err := or.orders.FindOne(ctx, id, &order); err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", core.ErrOrderNotFound, err)
	}
	return order, nil
}

func (or *OrderRepo) SetStatus(ctx context.Context, id, status string) (models.Order, error) {
	if err := or.orders.UpdateFields(ctx, id, docstore.Fields{"status": status}); err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", core.ErrOrderNotFound, err)
	}
	return or.Get(ctx, id)
}

// AssignShipper writes shipper_id and status=shipped in one update.
func (or *OrderRepo) AssignShipper(ctx context.Context, id, shipperID string) (models.Order, error) {
	fields := docstore.Fields{
		"shipper_id": shipperID,
		"status":     models.StatusShipped,
	}
	if err := or.orders.UpdateFields(ctx, id, fields); err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", core.ErrOrderNotFound, err)
	}
	return or.Get(ctx, id)
}

func (or *OrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return or.list(ctx, docstore.Filter{"user_id": userID})
}

func (or *OrderRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	return or.list(ctx, docstore.Filter{"restaurant_id": restaurantID})
}

func (or *OrderRepo) list(ctx context.Context, filter docstore.Filter) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	if err := or.orders.FindMany(ctx, filter, &orders); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = make([]models.Order, 0)
	}
	return orders, nil
}
