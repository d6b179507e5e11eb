package services

import (
	"context"
	"fmt"
	"time"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/domain/dto"
	"food-delivery/internal/order/domain/models"
	"food-delivery/internal/xpkg/logger"
)

type OrderService struct {
	orderRepo     core.IOrderRepo
	lookups       core.ILookupClient
	enricher      *Enricher
	validator     *ReferenceValidator
	messageBroker core.IPublisher
	params        core.OrderParams
	mylog         logger.Logger
	now           func() time.Time
}

func NewOrderService(
	orderRepo core.IOrderRepo,
	lookups core.ILookupClient,
	refs core.IReferenceChecker,
	messageBroker core.IPublisher,
	params core.OrderParams,
	mylogger logger.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		lookups:       lookups,
		enricher:      NewEnricher(lookups),
		validator:     NewReferenceValidator(refs),
		messageBroker: messageBroker,
		params:        params,
		mylog:         mylogger,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// ValidateOrder checks the request body itself; references are checked by Create.
func (os *OrderService) ValidateOrder(req dto.CreateOrderRequest) error {
	if req.UserID == "" {
		return fmt.Errorf("%w: user_id: %w", core.ErrInvalidOrder, core.ErrFieldIsEmpty)
	}
	if req.RestaurantID == "" {
		return fmt.Errorf("%w: restaurant_id: %w", core.ErrInvalidOrder, core.ErrFieldIsEmpty)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: items: %w", core.ErrInvalidOrder, core.ErrFieldIsEmpty)
	}
	for i, item := range req.Items {
		if item.MenuItemID == "" {
			return fmt.Errorf("%w: item %d: menu_item_id: %w", core.ErrInvalidOrder, i+1, core.ErrFieldIsEmpty)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d: quantity must be positive: %d", core.ErrInvalidOrder, i+1, item.Quantity)
		}
	}
	return nil
}

// Create validates the references, stores the order in the cart status and returns it enriched.
// Nothing is stored when validation fails.
func (os *OrderService) Create(ctx context.Context, req dto.CreateOrderRequest) (dto.EnrichedOrder, error) {
	mylog := os.mylog.Action("order_create")

	if err := os.ValidateOrder(req); err != nil {
		return dto.EnrichedOrder{}, err
	}
	if err := os.validator.Validate(ctx, req.UserID, req.RestaurantID); err != nil {
		mylog.Warn("Order references rejected", "user_id", req.UserID, "restaurant_id", req.RestaurantID, "reason", err.Error())
		return dto.EnrichedOrder{}, err
	}

	order, err := os.orderRepo.Create(ctx, models.Order{
		UserID:       req.UserID,
		RestaurantID: req.RestaurantID,
		Items:        req.Items,
		Status:       models.StatusCart,
		CreatedAt:    os.now(),
	})
	if err != nil {
		mylog.Error("Failed to save order record in db", err)
		return dto.EnrichedOrder{}, fmt.Errorf("cannot save order in db: %w", err)
	}
	mylog.Info("Order created", "order_id", order.ID, "items", len(order.Items))

	os.publish(ctx, dto.EventCreated, order)
	return os.enricher.Enrich(ctx, order), nil
}

func (os *OrderService) Get(ctx context.Context, id string) (dto.EnrichedOrder, error) {
	order, err := os.orderRepo.Get(ctx, id)
	if err != nil {
		return dto.EnrichedOrder{}, err
	}
	return os.enricher.Enrich(ctx, order), nil
}

// UpdateStatus overwrites the status. In strict mode the status must be a known one
// and may not move backwards.
func (os *OrderService) UpdateStatus(ctx context.Context, id, status string) (dto.EnrichedOrder, error) {
	mylog := os.mylog.Action("order_status_update")

	if status == "" {
		return dto.EnrichedOrder{}, fmt.Errorf("%w: status: %w", core.ErrInvalidStatus, core.ErrFieldIsEmpty)
	}
	if os.params.StrictStatus {
		current, err := os.orderRepo.Get(ctx, id)
		if err != nil {
			return dto.EnrichedOrder{}, err
		}
		if err := checkTransition(current.Status, status); err != nil {
			return dto.EnrichedOrder{}, err
		}
	}

	order, err := os.orderRepo.SetStatus(ctx, id, status)
	if err != nil {
		return dto.EnrichedOrder{}, err
	}
	mylog.Info("Order status updated", "order_id", order.ID, "status", order.Status)

	os.publish(ctx, dto.EventStatusUpdated, order)
	return os.enricher.Enrich(ctx, order), nil
}

// AssignShipper sets the shipper and status=shipped together, then asks the shipper service
// to mark the shipper busy. That call's failure is logged and does not affect the result.
// In strict mode a delivered order cannot be moved back to shipped.
func (os *OrderService) AssignShipper(ctx context.Context, id, shipperID string) (dto.EnrichedOrder, error) {
	mylog := os.mylog.Action("order_shipper_assign")

	if shipperID == "" {
		return dto.EnrichedOrder{}, fmt.Errorf("%w: shipper_id: %w", core.ErrInvalidOrder, core.ErrFieldIsEmpty)
	}
	if os.params.StrictStatus {
		current, err := os.orderRepo.Get(ctx, id)
		if err != nil {
			return dto.EnrichedOrder{}, err
		}
		if err := checkTransition(current.Status, models.StatusShipped); err != nil {
			return dto.EnrichedOrder{}, err
		}
	}

	order, err := os.orderRepo.AssignShipper(ctx, id, shipperID)
	if err != nil {
		return dto.EnrichedOrder{}, err
	}
	mylog.Info("Shipper assigned", "order_id", order.ID, "shipper_id", shipperID)

	if err := os.lookups.SetShipperBusy(ctx, shipperID); err != nil {
		mylog.Warn("Failed to mark shipper busy", "shipper_id", shipperID, "error", err.Error())
	}

	os.publish(ctx, dto.EventShipperAssigned, order)
	return os.enricher.Enrich(ctx, order), nil
}

func (os *OrderService) ListByUser(ctx context.Context, userID string) ([]dto.EnrichedOrder, error) {
	orders, err := os.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		os.mylog.Action("order_list").Error("Failed to list user orders", err, "user_id", userID)
		return nil, err
	}
	return os.enricher.EnrichAll(ctx, orders), nil
}

func (os *OrderService) ListByRestaurant(ctx context.Context, restaurantID string) ([]dto.EnrichedOrder, error) {
	orders, err := os.orderRepo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		os.mylog.Action("order_list").Error("Failed to list restaurant orders", err, "restaurant_id", restaurantID)
		return nil, err
	}
	return os.enricher.EnrichAll(ctx, orders), nil
}

// publish is best-effort: a broker failure is logged and never reaches the caller.
func (os *OrderService) publish(ctx context.Context, event string, order models.Order) {
	if err := os.messageBroker.Publish(context.WithoutCancel(ctx), dto.NewOrderEvent(event, order, os.now())); err != nil {
		os.mylog.Action("event_publish_failed").Warn("Failed to publish order event",
			"event", event, "order_id", order.ID, "error", err.Error())
	}
}
