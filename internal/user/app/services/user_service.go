package services

import (
	"context"
	"errors"
	"fmt"

	"food-delivery/internal/user/app/core"
	"food-delivery/internal/user/domain/dto"
	"food-delivery/internal/user/domain/models"
	"food-delivery/internal/xpkg/logger"
)

type UserService struct {
	userRepo core.IUserRepo
	mylog    logger.Logger
}

func NewUserService(userRepo core.IUserRepo, mylog logger.Logger) *UserService {
	return &UserService{userRepo: userRepo, mylog: mylog}
}

func (us *UserService) Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error) {
	if req.Username == "" {
		return dto.UserResponse{}, fmt.Errorf("%w: username: %w", core.ErrInvalidUser, core.ErrFieldIsEmpty)
	}
	if req.Email == "" {
		return dto.UserResponse{}, fmt.Errorf("%w: email: %w", core.ErrInvalidUser, core.ErrFieldIsEmpty)
	}

	user, err := us.userRepo.Create(ctx, models.User{Username: req.Username, Email: req.Email})
	if err != nil {
		us.mylog.Action("user_create").Error("Failed to save user", err)
		return dto.UserResponse{}, err
	}
	us.mylog.Action("user_create").Info("User created", "user_id", user.ID)
	return dto.NewUserResponse(user, nil), nil
}

func (us *UserService) Get(ctx context.Context, id string) (dto.UserResponse, error) {
	user, err := us.userRepo.Get(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}
	addrs, err := us.userRepo.ListAddresses(ctx, user.ID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user, addrs), nil
}

func (us *UserService) AddAddress(ctx context.Context, userID string, req dto.AddressRequest) (dto.AddressResponse, error) {
	if err := validateAddress(req); err != nil {
		return dto.AddressResponse{}, err
	}
	if _, err := us.userRepo.Get(ctx, userID); err != nil {
		return dto.AddressResponse{}, err
	}

	addr, err := us.userRepo.AddAddress(ctx, newAddress(userID, "", req))
	if err != nil {
		us.mylog.Action("address_add").Error("Failed to save address", err, "user_id", userID)
		return dto.AddressResponse{}, err
	}
	return dto.NewAddressResponse(addr), nil
}

// ListAddresses returns an empty list for an unknown user.
func (us *UserService) ListAddresses(ctx context.Context, userID string) ([]dto.AddressResponse, error) {
	addrs, err := us.userRepo.ListAddresses(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewAddressResponses(addrs), nil
}

func (us *UserService) UpdateAddress(ctx context.Context, userID, addressID string, req dto.AddressRequest) (dto.AddressResponse, error) {
	if err := validateAddress(req); err != nil {
		return dto.AddressResponse{}, err
	}
	if err := us.ownedAddress(ctx, userID, addressID); err != nil {
		return dto.AddressResponse{}, err
	}

	addr := newAddress(userID, addressID, req)
	if err := us.userRepo.UpdateAddress(ctx, addr); err != nil {
		return dto.AddressResponse{}, err
	}
	return dto.NewAddressResponse(addr), nil
}

func (us *UserService) DeleteAddress(ctx context.Context, userID, addressID string) error {
	if err := us.ownedAddress(ctx, userID, addressID); err != nil {
		return err
	}
	return us.userRepo.DeleteAddress(ctx, addressID)
}

// ownedAddress reports ErrAddressNotFound unless the address exists and belongs to userID.
func (us *UserService) ownedAddress(ctx context.Context, userID, addressID string) error {
	addr, err := us.userRepo.GetAddress(ctx, addressID)
	if err != nil {
		return err
	}
	if addr.UserID != userID {
		return fmt.Errorf("%w: belongs to another user", core.ErrAddressNotFound)
	}
	return nil
}

func newAddress(userID, id string, req dto.AddressRequest) models.Address {
	return models.Address{
		ID:      id,
		UserID:  userID,
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		ZipCode: req.ZipCode,
		Country: req.Country,
	}
}

func validateAddress(req dto.AddressRequest) error {
	for name, v := range map[string]string{
		"street":   req.Street,
		"city":     req.City,
		"state":    req.State,
		"zip_code": req.ZipCode,
		"country":  req.Country,
	} {
		if v == "" {
			return fmt.Errorf("%w: %s: %w", core.ErrInvalidAddress, name, core.ErrFieldIsEmpty)
		}
	}
	return nil
}

// IsClientError reports errors caused by the request body.
func IsClientError(err error) bool {
	return errors.Is(err, core.ErrInvalidUser) || errors.Is(err, core.ErrInvalidAddress)
}
