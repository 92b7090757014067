package dto

import (
	"github.com/google/uuid"
)

type CreateDonationListRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"omitempty,max=2000"`
	EventDate   *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateDonationListRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	EventDate   *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
}

type CreateDonationItemRequest struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Unit         string   `json:"unit" validate:"required,max=20"`
	RequestedQty *float64 `json:"requested_qty" validate:"omitempty,gt=0"`
}

type UpdateDonationItemRequest struct {
	Name         *string  `json:"name" validate:"omitempty,max=100"`
	Unit         *string  `json:"unit" validate:"omitempty,max=20"`
	RequestedQty *float64 `json:"requested_qty"`
}

// ImportItemsRequest: item dipilih eksplisit oleh admin, tanpa dedup
type ImportItemsRequest struct {
	ItemIDs []uuid.UUID `json:"item_ids" validate:"required,min=1,dive,required"`
}
