package handle

import (
	"errors"
	"net/http"

	"food-delivery/internal/order/app/core"
	"food-delivery/internal/order/app/services"
	"food-delivery/internal/order/domain/dto"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
)

type OrderHandler struct {
	orderService *services.OrderService
	mylog        logger.Logger
}

func NewOrderHandler(orderService *services.OrderService, mylog logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		mylog:        mylog,
	}
}

func (oh *OrderHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateOrderRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			oh.mylog.Action("parse_failed").Warn("Failed to parse order", "error", err.Error(), "request_id", httpx.RequestID(r.Context()))
			httpx.Error(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		order, err := oh.orderService.Create(r.Context(), req)
		if err != nil {
			oh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, order)
	}
}

func (oh *OrderHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := oh.orderService.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			oh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, order)
	}
}

func (oh *OrderHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.StatusUpdateRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		order, err := oh.orderService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
		if err != nil {
			oh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, order)
	}
}

func (oh *OrderHandler) AssignShipper() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.ShipperAssignRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, errors.New("failed to parse JSON"))
			return
		}

		order, err := oh.orderService.AssignShipper(r.Context(), r.PathValue("id"), req.ShipperID)
		if err != nil {
			oh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, order)
	}
}

func (oh *OrderHandler) ListByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := oh.orderService.ListByUser(r.Context(), r.PathValue("user_id"))
		if err != nil {
			oh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, orders)
	}
}

func (oh *OrderHandler) ListByRestaurant() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := oh.orderService.ListByRestaurant(r.Context(), r.PathValue("restaurant_id"))
		if err != nil {
			oh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, orders)
	}
}

func (oh *OrderHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrOrderNotFound):
		httpx.Error(w, http.StatusNotFound, core.ErrOrderNotFound)
	case errors.Is(err, core.ErrReferenceNotFound),
		errors.Is(err, core.ErrInvalidOrder),
		errors.Is(err, core.ErrInvalidStatus):
		httpx.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, core.ErrUpstreamUnreachable):
		httpx.Error(w, http.StatusBadGateway, err)
	default:
		oh.mylog.Action("request_failed").Error("Unexpected error", err, "request_id", httpx.RequestID(r.Context()))
		httpx.Error(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
