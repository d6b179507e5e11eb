package core

import (
	"context"
	"errors"

	"food-delivery/internal/shipper/domain/models"
	xerrors "food-delivery/internal/xpkg/errors"
)

const ShippersCollection = "shippers"

var (
	ErrShipperNotFound = errors.New("Shipper not found")
	ErrInvalidShipper  = errors.New("invalid shipper")
	ErrInvalidStatus   = errors.New("invalid status")

	ErrFieldIsEmpty = xerrors.ErrFieldIsEmpty
)

type IShipperRepo interface {
	Create(ctx context.Context, s models.Shipper) (models.Shipper, error)
	Get(ctx context.Context, id string) (models.Shipper, error)
	ListByStatus(ctx context.Context, status models.Status) ([]models.Shipper, error)
	SetStatus(ctx context.Context, id string, status models.Status) error
}
