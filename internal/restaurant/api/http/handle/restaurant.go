package handle

import (
	"errors"
	"net/http"

	"food-delivery/internal/restaurant/app/core"
	"food-delivery/internal/restaurant/app/services"
	"food-delivery/internal/restaurant/domain/dto"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
)

var errParse = errors.New("failed to parse JSON")

type RestaurantHandler struct {
	restaurantService *services.RestaurantService
	mylog             logger.Logger
}

func NewRestaurantHandler(restaurantService *services.RestaurantService, mylog logger.Logger) *RestaurantHandler {
	return &RestaurantHandler{
		restaurantService: restaurantService,
		mylog:             mylog,
	}
}

func (rh *RestaurantHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateRestaurantRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			rh.mylog.Action("parse_failed").Warn("Failed to parse restaurant", "error", err.Error(), "request_id", httpx.RequestID(r.Context()))
			httpx.Error(w, http.StatusBadRequest, errParse)
			return
		}

		restaurant, err := rh.restaurantService.Create(r.Context(), req)
		if err != nil {
			rh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, restaurant)
	}
}

func (rh *RestaurantHandler) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurants, err := rh.restaurantService.List(r.Context())
		if err != nil {
			rh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, restaurants)
	}
}

func (rh *RestaurantHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurant, err := rh.restaurantService.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			rh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, restaurant)
	}
}

func (rh *RestaurantHandler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rh.restaurantService.Delete(r.Context(), r.PathValue("id")); err != nil {
			rh.writeError(w, r, err)
			return
		}
		httpx.Message(w, "Restaurant deleted")
	}
}

func (rh *RestaurantHandler) AddMenuItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.MenuItemRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, errParse)
			return
		}

		item, err := rh.restaurantService.AddMenuItem(r.Context(), r.PathValue("id"), req)
		if err != nil {
			rh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, item)
	}
}

func (rh *RestaurantHandler) ListMenuItems() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := rh.restaurantService.ListMenuItems(r.Context(), r.PathValue("id"))
		if err != nil {
			rh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, items)
	}
}

func (rh *RestaurantHandler) UpdateMenuItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.MenuItemRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, errParse)
			return
		}

		item, err := rh.restaurantService.UpdateMenuItem(r.Context(), r.PathValue("id"), r.PathValue("item_id"), req)
		if err != nil {
			rh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, item)
	}
}

func (rh *RestaurantHandler) DeleteMenuItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := rh.restaurantService.DeleteMenuItem(r.Context(), r.PathValue("id"), r.PathValue("item_id")); err != nil {
			rh.writeError(w, r, err)
			return
		}
		httpx.Message(w, "Menu item deleted")
	}
}

func (rh *RestaurantHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrRestaurantNotFound):
		httpx.Error(w, http.StatusNotFound, core.ErrRestaurantNotFound)
	case errors.Is(err, core.ErrMenuItemNotFound):
		httpx.Error(w, http.StatusNotFound, core.ErrMenuItemNotFound)
	case services.IsClientError(err):
		httpx.Error(w, http.StatusBadRequest, err)
	default:
		rh.mylog.Action("request_failed").Error("Unexpected error", err, "request_id", httpx.RequestID(r.Context()))
		httpx.Error(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
