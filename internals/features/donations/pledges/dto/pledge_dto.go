package dto

import (
	"github.com/google/uuid"
)

type CreatePledgeRequest struct {
	ItemID uuid.UUID `json:"item_id" validate:"required"`
	Qty    float64   `json:"qty" validate:"required"`
}

// PledgerView: satu baris roster pledger di view item
type PledgerView struct {
	MemberID   uuid.UUID `json:"member_id"`
	MemberName string    `json:"member_name"`
	Qty        float64   `json:"qty"`
}
