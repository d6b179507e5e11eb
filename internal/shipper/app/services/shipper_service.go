package services

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/internal/shipper/app/core"
	"food-delivery/internal/shipper/domain/dto"
	"food-delivery/internal/shipper/domain/models"
	"food-delivery/internal/xpkg/logger"
)

type ShipperService struct {
	repo  core.IShipperRepo
	mylog logger.Logger
}

func NewShipperService(repo core.IShipperRepo, mylog logger.Logger) *ShipperService {
	return &ShipperService{repo: repo, mylog: mylog}
}

// Create registers a shipper, available unless the request says otherwise.
func (ss *ShipperService) Create(ctx context.Context, req dto.CreateShipperRequest) (models.Shipper, error) {
	if req.Name == "" {
		return models.Shipper{}, fmt.Errorf("%w: name: %w", core.ErrInvalidShipper, core.ErrFieldIsEmpty)
	}
	status := req.Status
	if status == "" {
		status = models.StatusAvailable
	}
	if !status.Valid() {
		return models.Shipper{}, fmt.Errorf("%w: %q", core.ErrInvalidStatus, status)
	}

	s, err := ss.repo.Create(ctx, models.Shipper{
		Name:    req.Name,
		Phone:   req.Phone,
		Vehicle: req.Vehicle,
		Status:  status,
	})
	if err != nil {
		ss.mylog.Action("shipper_create").Error("Failed to save shipper", err)
		return models.Shipper{}, err
	}
	ss.mylog.Action("shipper_create").Info("Shipper created", "shipper_id", s.ID)
	return s, nil
}

func (ss *ShipperService) Get(ctx context.Context, id string) (models.Shipper, error) {
	return ss.repo.Get(ctx, id)
}

func (ss *ShipperService) ListAvailable(ctx context.Context) ([]models.Shipper, error) {
	return ss.repo.ListByStatus(ctx, models.StatusAvailable)
}

// UpdateStatus sets the status and returns the stored shipper.
func (ss *ShipperService) UpdateStatus(ctx context.Context, id string, status models.Status) (models.Shipper, error) {
	if !status.Valid() {
		return models.Shipper{}, fmt.Errorf("%w: %q", core.ErrInvalidStatus, status)
	}
	if err := ss.repo.SetStatus(ctx, id, status); err != nil {
		return models.Shipper{}, err
	}
	ss.mylog.Action("shipper_status_updated").Info("Shipper status updated", "shipper_id", id, "status", string(status))
	return ss.repo.Get(ctx, id)
}

func IsClientError(err error) bool {
	return errors.Is(err, core.ErrInvalidShipper) || errors.Is(err, core.ErrInvalidStatus)
}
