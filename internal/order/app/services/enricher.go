package services

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/domain/dto"
	"food-delivery/internal/order/domain/models"
	"food-delivery/internal/xpkg/tracing"
)

// maxParallelOrders bounds how many orders of a list are enriched at once.
const maxParallelOrders = 8

// Enricher resolves an order's display fields from the peer services.
type Enricher struct {
	lookups core.ILookupClient
}

func NewEnricher(lookups core.ILookupClient) *Enricher {
	return &Enricher{lookups: lookups}
}

// Enrich never fails: each lookup that cannot be resolved leaves its placeholder in its own field.
// Lookups run concurrently; item order is kept.
func (e *Enricher) Enrich(ctx context.Context, order models.Order) dto.EnrichedOrder {
	ctx, span := tracing.Start(ctx, "order.enrich",
		attribute.String("order.id", order.ID),
		attribute.Int("order.items", len(order.Items)),
	)
	defer span.End()

	out := dto.EnrichedOrder{
		ID:           order.ID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Status:       order.Status,
		ShipperID:    order.ShipperID,
		CreatedAt:    order.CreatedAt,
		Items:        make([]dto.EnrichedOrderLine, len(order.Items)),
	}

	var g errgroup.Group
	g.Go(func() error {
		out.UserName = e.lookups.UserName(ctx, order.UserID).Value
		return nil
	})
	g.Go(func() error {
		out.RestaurantName = e.lookups.RestaurantName(ctx, order.RestaurantID).Value
		return nil
	})
	if order.ShipperID != nil {
		g.Go(func() error {
			name := e.lookups.ShipperName(ctx, *order.ShipperID).Value
			out.ShipperName = &name
			return nil
		})
	}
	for i, line := range order.Items {
		g.Go(func() error {
			item := e.lookups.MenuItem(ctx, order.RestaurantID, line.MenuItemID).Value
			out.Items[i] = dto.EnrichedOrderLine{
				MenuItemID: line.MenuItemID,
				ItemName:   item.Name,
				Price:      item.Price,
				Quantity:   line.Quantity,
			}
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// EnrichAll enriches each order, preserving order and returning an empty (non-nil) slice for no orders.
func (e *Enricher) EnrichAll(ctx context.Context, orders []models.Order) []dto.EnrichedOrder {
	out := make([]dto.EnrichedOrder, len(orders))

	var g errgroup.Group
	g.SetLimit(maxParallelOrders)
	for i, order := range orders {
		g.Go(func() error {
			out[i] = e.Enrich(ctx, order)
			return nil
		})
	}
	_ = g.Wait()

	return out
}
