package dto

import "food-delivery/internal/shipper/domain/models"

type CreateShipperRequest struct {
	Name    string        `json:"name"`
	Phone   string        `json:"phone"`
	Vehicle string        `json:"vehicle"`
	Status  models.Status `json:"status"`
}

type StatusUpdateRequest struct {
	Status models.Status `json:"status"`
}
