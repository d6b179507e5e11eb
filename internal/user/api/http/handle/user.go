package handle

import (
	"errors"
	"net/http"

	"food-delivery/internal/user/app/core"
	"food-delivery/internal/user/app/services"
	"food-delivery/internal/user/domain/dto"
	"food-delivery/internal/xpkg/httpx"
	"food-delivery/internal/xpkg/logger"
)

var errParse = errors.New("failed to parse JSON")

type UserHandler struct {
	userService *services.UserService
	mylog       logger.Logger
}

func NewUserHandler(userService *services.UserService, mylog logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		mylog:       mylog,
	}
}

func (uh *UserHandler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.CreateUserRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			uh.mylog.Action("parse_failed").Warn("Failed to parse user", "error", err.Error(), "request_id", httpx.RequestID(r.Context()))
			httpx.Error(w, http.StatusBadRequest, errParse)
			return
		}

		user, err := uh.userService.Create(r.Context(), req)
		if err != nil {
			uh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, user)
	}
}

func (uh *UserHandler) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := uh.userService.Get(r.Context(), r.PathValue("id"))
		if err != nil {
			uh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, user)
	}
}

func (uh *UserHandler) AddAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.AddressRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, errParse)
			return
		}

		addr, err := uh.userService.AddAddress(r.Context(), r.PathValue("id"), req)
		if err != nil {
			uh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, addr)
	}
}

func (uh *UserHandler) ListAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		addrs, err := uh.userService.ListAddresses(r.Context(), r.PathValue("id"))
		if err != nil {
			uh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, addrs)
	}
}

func (uh *UserHandler) UpdateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dto.AddressRequest
		if err := httpx.Decode(r.Body, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, errParse)
			return
		}

		addr, err := uh.userService.UpdateAddress(r.Context(), r.PathValue("id"), r.PathValue("address_id"), req)
		if err != nil {
			uh.writeError(w, r, err)
			return
		}
		httpx.JSON(w, http.StatusOK, addr)
	}
}

func (uh *UserHandler) DeleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uh.userService.DeleteAddress(r.Context(), r.PathValue("id"), r.PathValue("address_id")); err != nil {
			uh.writeError(w, r, err)
			return
		}
		httpx.Message(w, "Address deleted")
	}
}

func (uh *UserHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrUserNotFound):
		httpx.Error(w, http.StatusNotFound, core.ErrUserNotFound)
	case errors.Is(err, core.ErrAddressNotFound):
		httpx.Error(w, http.StatusNotFound, core.ErrAddressNotFound)
	case services.IsClientError(err):
		httpx.Error(w, http.StatusBadRequest, err)
	default:
		uh.mylog.Action("request_failed").Error("Unexpected error", err, "request_id", httpx.RequestID(r.Context()))
		httpx.Error(w, http.StatusInternalServerError, errors.New("internal server error"))
	}
}
