package db

import (
	"context"
	"fmt"

	"food-delivery/internal/shipper/app/core"
	"food-delivery/internal/shipper/domain/models"
	"food-delivery/internal/xpkg/docstore"
)

type ShipperRepo struct {
	shippers docstore.Collection
}

func NewShipperRepo(store docstore.Store) *ShipperRepo {
	return &ShipperRepo{shippers: store.Collection(core.ShippersCollection)}
}

func (sr *ShipperRepo) Create(ctx context.Context, s models.Shipper) (models.Shipper, error) {
	id, err := sr.shippers.InsertOne(ctx, s)
	if err != nil {
		return models.Shipper{}, fmt.Errorf("failed to insert shipper: %w", err)
	}
	s.ID = id
	return s, nil
}

func (sr *ShipperRepo) Get(ctx context.Context, id string) (models.Shipper, error) {
	var s models.Shipper
	if err := sr.shippers.FindOne(ctx, id, &s); err != nil {
		return models.Shipper{}, fmt.Errorf("%w: %v", core.ErrShipperNotFound, err)
	}
	return s, nil
}

func (sr *ShipperRepo) ListByStatus(ctx context.Context, status models.Status) ([]models.Shipper, error) {
	list := make([]models.Shipper, 0)
	if err := sr.shippers.FindMany(ctx, docstore.Filter{"status": string(status)}, &list); err != nil {
		return nil, fmt.Errorf("failed to list shippers: %w", err)
	}
	return list, nil
}

func (sr *ShipperRepo) SetStatus(ctx context.Context, id string, status models.Status) error {
	if err := sr.shippers.UpdateFields(ctx, id, docstore.Fields{"status": string(status)}); err != nil {
		return fmt.Errorf("%w: %v", core.ErrShipperNotFound, err)
	}
	return nil
}
