package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/domain/models"
	"food-delivery/internal/xpkg/docstore"
)

func newOrder(userID, restaurantID string) models.Order {
	return models.Order{
		UserID:       userID,
		RestaurantID: restaurantID,
		Items:        []models.OrderLine{{MenuItemID: "m1", Quantity: 2}},
		Status:       models.StatusCart,
		CreatedAt:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestOrderRepo_CreateAndGet(t *testing.T) {
	repo := NewOrderRepo(docstore.NewMemory())
	ctx := context.Background()

	created, err := repo.Create(ctx, newOrder("u1", "r1"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, models.StatusCart, got.Status)
	assert.Nil(t, got.ShipperID)
	assert.Equal(t, created.Items, got.Items)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestOrderRepo_NotFound(t *testing.T) {
	repo := NewOrderRepo(docstore.NewMemory())
	ctx := context.Background()

	_, err := repo.Get(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrOrderNotFound)
	_, err = repo.SetStatus(ctx, "nope", models.StatusReady)
	assert.ErrorIs(t, err, core.ErrOrderNotFound)
	_, err = repo.AssignShipper(ctx, "nope", "s1")
	assert.ErrorIs(t, err, core.ErrOrderNotFound)
}

func TestOrderRepo_StatusAndShipper(t *testing.T) {
	repo := NewOrderRepo(docstore.NewMemory())
	ctx := context.Background()

	created, err := repo.Create(ctx, newOrder("u1", "r1"))
	require.NoError(t, err)

	updated, err := repo.SetStatus(ctx, created.ID, "anything-goes")
	require.NoError(t, err)
	assert.Equal(t, "anything-goes", updated.Status)

	assigned, err := repo.AssignShipper(ctx, created.ID, "s1")
	require.NoError(t, err)
	require.NotNil(t, assigned.ShipperID)
	assert.Equal(t, "s1", *assigned.ShipperID)
	assert.Equal(t, models.StatusShipped, assigned.Status)
	assert.Equal(t, created.Items, assigned.Items)
}

func TestOrderRepo_Lists(t *testing.T) {
	repo := NewOrderRepo(docstore.NewMemory())
	ctx := context.Background()

	a, err := repo.Create(ctx, newOrder("u1", "r1"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newOrder("u2", "r1"))
	require.NoError(t, err)
	c, err := repo.Create(ctx, newOrder("u1", "r2"))
	require.NoError(t, err)

	byUser, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	assert.Equal(t, a.ID, byUser[0].ID)
	assert.Equal(t, c.ID, byUser[1].ID)

	byRestaurant, err := repo.ListByRestaurant(ctx, "r1")
	require.NoError(t, err)
	assert.Len(t, byRestaurant, 2)

	none, err := repo.ListByUser(ctx, "u9")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

type failingStore struct{ docstore.Store }

func (failingStore) Collection(string) docstore.Collection { return failingCollection{} }

type failingCollection struct{ docstore.Collection }

var errStore = errors.New("store down")

func (failingCollection) FindOne(context.Context, string, any) error { return errStore }

func (failingCollection) FindMany(context.Context, docstore.Filter, any) error { return errStore }

func TestOrderRepo_StoreErrors(t *testing.T) {
	repo := NewOrderRepo(failingStore{})
	ctx := context.Background()

	_, err := repo.Get(ctx, "any")
	assert.ErrorIs(t, err, core.ErrOrderNotFound)

	_, err = repo.ListByUser(ctx, "u1")
	assert.ErrorIs(t, err, errStore)
	assert.NotErrorIs(t, err, core.ErrOrderNotFound)
}
