package handle

import (
	"errors"
	"net/http"

	"food-delivery/internal/shipper/app/core"
	"food-delivery/internal/shipper/app/services"
	"food-delivery/internal/shipper/domain/dto"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
)

var errParse = errors.New("failed to parse JSON")

type ShipperHandler struct {
	shipperService *services.ShipperService
	mylog          logger.Logger
}

func NewShipperHandler(shipperService *services.ShipperService, mylog logger.Logger) *ShipperHandler {
	return &ShipperHandler{
		shipperService: shipperService,
		mylog:          mylog,
	}
}

func (sh *ShipperHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateShipperRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			sh.mylog.Action("parse_failed").Warn("Failed to parse shipper", "error", err.Error(), "request_id", httpx.RequestID(r.Context()))
			httpx.Error(w, http.StatusBadRequest, errParse)
			return
		}

		shipper, err := sh.shipperService.Create(r.Context(), req)
		if err != nil {
			sh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, shipper)
	}
}

func (sh *ShipperHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shipper, err := sh.shipperService.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			sh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, shipper)
	}
}

func (sh *ShipperHandler) ListAvailable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shippers, err := sh.shipperService.ListAvailable(r.Context())
		if err != nil {
			sh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, shippers)
	}
}

func (sh *ShipperHandler) UpdateStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.StatusUpdateRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, errParse)
			return
		}

		shipper, err := sh.shipperService.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
		if err != nil {
			sh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, shipper)
	}
}

func (sh *ShipperHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrShipperNotFound):
		httpx.Error(w, http.StatusNotFound, core.ErrShipperNotFound)
	case services.IsClientError(err):
		httpx.Error(w, http.StatusBadRequest, err)
	default:
		sh.mylog.Action("request_failed").Error("Unexpected error", err, "request_id", httpx.RequestID(r.Context()))
		httpx.Error(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
