package dto

import "food-delivery/internal/restaurant/domain/models"

type CreateRestaurantRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
}

// MenuItemRequest is used for both create and update. A missing available means true.
type MenuItemRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   *bool   `json:"available"`
}

func (r MenuItemRequest) IsAvailable() bool {
	return r.Available == nil || *r.Available
}

type RestaurantResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Address     string             `json:"address"`
	Phone       string             `json:"phone"`
	MenuItems   []MenuItemResponse `json:"menu_items"`
}

type MenuItemResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
}

func NewMenuItemResponse(m models.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Available:   m.Available,
	}
}

func NewMenuItemResponses(items []models.MenuItem) []MenuItemResponse {
	out := make([]MenuItemResponse, 0, len(items))
	for _, m := range items {
		out = append(out, NewMenuItemResponse(m))
	}
	return out
}

func NewRestaurantResponse(r models.Restaurant, items []models.MenuItem) RestaurantResponse {
	return RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Address:     r.Address,
		Phone:       r.Phone,
		MenuItems:   NewMenuItemResponses(items),
	}
}
