package db

import (
	"context"
	"fmt"

	"food-delivery/internal/user/app/core"
	"food-delivery/internal/user/domain/models"
	"food-delivery/internal/xpkg/docstore"
)

type UserRepo struct {
	users     docstore.Collection
	addresses docstore.Collection
}

func NewUserRepo(store docstore.Store) *UserRepo {
	return &UserRepo{
		users:     store.Collection(core.UsersCollection),
		addresses: store.Collection(core.AddressesCollection),
	}
}

func (ur *UserRepo) Create(ctx context.Context, user models.User) (models.User, error) {
	id, err := ur.users.InsertOne(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = id
	return user, nil
}

func (ur *UserRepo) Get(ctx context.Context, id string) (models.User, error) {
	var user models.User
	if err := ur.users.FindOne(ctx, id, &user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", core.ErrUserNotFound, err)
	}
	return user, nil
}

func (ur *UserRepo) AddAddress(ctx context.Context, addr models.Address) (models.Address, error) {
	id, err := ur.addresses.InsertOne(ctx, addr)
	if err != nil {
		return models.Address{}, fmt.Errorf("failed to insert address: %w", err)
	}
	addr.ID = id
	return addr, nil
}

func (ur *UserRepo) GetAddress(ctx context.Context, id string) (models.Address, error) {
	var addr models.Address
	if err := ur.addresses.FindOne(ctx, id, &addr); err != nil {
		return models.Address{}, fmt.Errorf("%w: %v", core.ErrAddressNotFound, err)
	}
	return addr, nil
}

func (ur *UserRepo) ListAddresses(ctx context.Context, userID string) ([]models.Address, error) {
	addrs := make([]models.Address, 0)
	if err := ur.addresses.FindMany(ctx, docstore.Filter{"user_id": userID}, &addrs); err != nil {
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	return addrs, nil
}

func (ur *UserRepo) UpdateAddress(ctx context.Context, addr models.Address) error {
	fields := docstore.Fields{
		"street":   addr.Street,
		"city":     addr.City,
		"state":    addr.State,
		"zip_code": addr.ZipCode,
		"country":  addr.Country,
	}
	if err := ur.addresses.UpdateFields(ctx, addr.ID, fields); err != nil {
		return fmt.Errorf("%w: %v", core.ErrAddressNotFound, err)
	}
	return nil
}

func (ur *UserRepo) DeleteAddress(ctx context.Context, id string) error {
	if err := ur.addresses.DeleteOne(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", core.ErrAddressNotFound, err)
	}
	return nil
}
