package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/restaurant/adapter/db"
	"food-delivery/internal/restaurant/app/core"
	"food-delivery/internal/restaurant/domain/dto"
	"food-delivery/internal/xpkg/docstore"
	"food-delivery/internal/xpkg/logger"
)

func newService() *RestaurantService {
	return NewRestaurantService(db.NewRestaurantRepo(docstore.NewMemory()), logger.Discard())
}

func ptr[T any](v T) *T { return &v }

func TestRestaurantService_MenuItems(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	pho, err := svc.Create(ctx, dto.CreateRestaurantRequest{Name: "Pho Place", Address: "1 Main St"})
	require.NoError(t, err)
	assert.NotNil(t, pho.MenuItems)
	assert.Empty(t, pho.MenuItems)

	item, err := svc.AddMenuItem(ctx, pho.ID, dto.MenuItemRequest{Name: "Pho", Price: 8.5})
	require.NoError(t, err)
	assert.True(t, item.Available)

	off, err := svc.AddMenuItem(ctx, pho.ID, dto.MenuItemRequest{Name: "Banh Mi", Price: 4, Available: ptr(false)})
	require.NoError(t, err)
	assert.False(t, off.Available)

	got, err := svc.Get(ctx, pho.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.MenuItemResponse{item, off}, got.MenuItems)

	_, err = svc.AddMenuItem(ctx, "missing", dto.MenuItemRequest{Name: "Pho"})
	assert.ErrorIs(t, err, core.ErrRestaurantNotFound)

	_, err = svc.AddMenuItem(ctx, pho.ID, dto.MenuItemRequest{Name: "Pho", Price: -1})
	assert.ErrorIs(t, err, core.ErrInvalidMenuItem)
	assert.True(t, IsClientError(err))

	updated, err := svc.UpdateMenuItem(ctx, pho.ID, item.ID, dto.MenuItemRequest{Name: "Pho Bo", Price: 9})
	require.NoError(t, err)
	assert.Equal(t, dto.MenuItemResponse{ID: item.ID, Name: "Pho Bo", Price: 9, Available: true}, updated)

	items, err := svc.ListMenuItems(ctx, "missing")
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRestaurantService_ItemsBelongToTheirRestaurant(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateRestaurantRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, dto.CreateRestaurantRequest{Name: "B"})
	require.NoError(t, err)
	item, err := svc.AddMenuItem(ctx, a.ID, dto.MenuItemRequest{Name: "Soup", Price: 3})
	require.NoError(t, err)

	_, err = svc.UpdateMenuItem(ctx, b.ID, item.ID, dto.MenuItemRequest{Name: "Soup"})
	assert.ErrorIs(t, err, core.ErrMenuItemNotFound)
	assert.ErrorIs(t, svc.DeleteMenuItem(ctx, b.ID, item.ID), core.ErrMenuItemNotFound)

	require.NoError(t, svc.DeleteMenuItem(ctx, a.ID, item.ID))
	assert.ErrorIs(t, svc.DeleteMenuItem(ctx, a.ID, item.ID), core.ErrMenuItemNotFound)
}

func TestRestaurantService_ListAndDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, dto.CreateRestaurantRequest{Name: "A"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, dto.CreateRestaurantRequest{Name: "B"})
	require.NoError(t, err)
	_, err = svc.AddMenuItem(ctx, a.ID, dto.MenuItemRequest{Name: "a1"})
	require.NoError(t, err)
	_, err = svc.AddMenuItem(ctx, b.ID, dto.MenuItemRequest{Name: "b1"})
	require.NoError(t, err)
	_, err = svc.AddMenuItem(ctx, a.ID, dto.MenuItemRequest{Name: "a2"})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "A", list[0].Name)
	require.Len(t, list[0].MenuItems, 2)
	assert.Equal(t, "a1", list[0].MenuItems[0].Name)
	assert.Equal(t, "a2", list[0].MenuItems[1].Name)
	require.Len(t, list[1].MenuItems, 1)

	require.NoError(t, svc.Delete(ctx, a.ID))
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), core.ErrRestaurantNotFound)

	items, err := svc.ListMenuItems(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}
