package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/domain/dto"
	"food-delivery/internal/order/domain/models"
)

func strPtr(s string) *string { return &s }

func TestEnricher_Resolved(t *testing.T) {
	peers := newFakePeers()
	e := NewEnricher(peers)

	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	got := e.Enrich(context.Background(), models.Order{
		ID:           "o1",
		UserID:       "u1",
		RestaurantID: "r1",
		Items: []models.OrderLine{
			{MenuItemID: "m2", Quantity: 1},
			{MenuItemID: "m1", Quantity: 2},
		},
		Status:    models.StatusShipped,
		ShipperID: strPtr("s1"),
		CreatedAt: created,
	})

	assert.Equal(t, dto.EnrichedOrder{
		ID:             "o1",
		UserID:         "u1",
		UserName:       "alice",
		RestaurantID:   "r1",
		RestaurantName: "Pho Place",
		Items: []dto.EnrichedOrderLine{
			{MenuItemID: "m2", ItemName: "Tea", Price: 2, Quantity: 1},
			{MenuItemID: "m1", ItemName: "Pho", Price: 8.5, Quantity: 2},
		},
		Status:      models.StatusShipped,
		ShipperID:   strPtr("s1"),
		ShipperName: strPtr("Sam"),
		CreatedAt:   created,
	}, got)
}

func TestEnricher_DegradesFieldByField(t *testing.T) {
	peers := newFakePeers()
	e := NewEnricher(peers)

	got := e.Enrich(context.Background(), models.Order{
		ID:           "o2",
		UserID:       "ghost",
		RestaurantID: "r1",
		Items: []models.OrderLine{
			{MenuItemID: "m1", Quantity: 1},
			{MenuItemID: "gone", Quantity: 3},
		},
		Status:    models.StatusShipped,
		ShipperID: strPtr("s-gone"),
	})

	assert.Equal(t, core.Unknown, got.UserName)
	assert.Equal(t, "Pho Place", got.RestaurantName)
	require.NotNil(t, got.ShipperName)
	assert.Equal(t, core.Unknown, *got.ShipperName)
	require.Len(t, got.Items, 2)
	assert.Equal(t, dto.EnrichedOrderLine{MenuItemID: "m1", ItemName: "Pho", Price: 8.5, Quantity: 1}, got.Items[0])
	assert.Equal(t, dto.EnrichedOrderLine{MenuItemID: "gone", ItemName: core.Unknown, Price: 0, Quantity: 3}, got.Items[1])
}

func TestEnricher_NoShipper(t *testing.T) {
	got := NewEnricher(newFakePeers()).Enrich(context.Background(), models.Order{
		UserID: "u1", RestaurantID: "r1", Status: models.StatusCart,
	})
	assert.Nil(t, got.ShipperID)
	assert.Nil(t, got.ShipperName)
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
}

func TestEnricher_FetchesMenuPerItem(t *testing.T) {
	peers := newFakePeers()
	NewEnricher(peers).Enrich(context.Background(), models.Order{
		UserID:       "u1",
		RestaurantID: "r1",
		Items: []models.OrderLine{
			{MenuItemID: "m1", Quantity: 1},
			{MenuItemID: "m1", Quantity: 1},
			{MenuItemID: "m2", Quantity: 1},
		},
	})
	assert.Equal(t, 3, peers.menuCalls)
}

func TestEnricher_EnrichAll(t *testing.T) {
	e := NewEnricher(newFakePeers())

	empty := e.EnrichAll(context.Background(), nil)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	orders := make([]models.Order, 20)
	for i := range orders {
		orders[i] = models.Order{ID: string(rune('a' + i)), UserID: "u1", RestaurantID: "r1"}
	}
	got := e.EnrichAll(context.Background(), orders)
	require.Len(t, got, 20)
	for i := range orders {
		assert.Equal(t, orders[i].ID, got[i].ID)
		assert.Equal(t, "alice", got[i].UserName)
	}
}
