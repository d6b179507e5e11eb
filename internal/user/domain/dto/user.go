package dto

import "food-delivery/internal/user/domain/models"

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

type UserResponse struct {
	ID        string            `json:"id"`
	Username  string            `json:"username"`
	Email     string            `json:"email"`
	Addresses []AddressResponse `json:"addresses"`
}

type AddressResponse struct {
	ID      string `json:"id"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

func NewAddressResponse(a models.Address) AddressResponse {
	return AddressResponse{
		ID:      a.ID,
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

func NewAddressResponses(addrs []models.Address) []AddressResponse {
	out := make([]AddressResponse, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, NewAddressResponse(a))
	}
	return out
}

func NewUserResponse(u models.User, addrs []models.Address) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Addresses: NewAddressResponses(addrs),
	}
}
