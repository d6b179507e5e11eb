package core

import (
	"context"
	"errors"

	"food-delivery/internal/user/domain/models"
	xerrors "food-delivery/internal/xpkg/errors"
)

const (
	UsersCollection     = "users"
	AddressesCollection = "addresses"
)

var (
	ErrUserNotFound    = errors.New("User not found")
	ErrAddressNotFound = errors.New("Address not found")
	ErrInvalidUser     = errors.New("invalid user")
	ErrInvalidAddress  = errors.New("invalid address")

	ErrFieldIsEmpty = xerrors.ErrFieldIsEmpty
)

type IUserRepo interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	Get(ctx context.Context, id string) (models.User, error)
	AddAddress(ctx context.Context, addr models.Address) (models.Address, error)
	GetAddress(ctx context.Context, id string) (models.Address, error)
	ListAddresses(ctx context.Context, userID string) ([]models.Address, error)
	UpdateAddress(ctx context.Context, addr models.Address) error
	DeleteAddress(ctx context.Context, id string) error
}
