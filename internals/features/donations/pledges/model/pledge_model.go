package model

import (
	"time"

	"github.com/google/uuid"
)

// DonationPledge: komitmen seorang jamaah terhadap satu item donasi.
// Append-only: jamaah yang sama boleh pledge berkali-kali ke item yang sama,
// jumlahnya diakumulasi, TIDAK pernah di-merge (total yang terlihat harus
// sama dengan yang pernah disubmit).
type DonationPledge struct {
	DonationPledgeID uuid.UUID `gorm:"column:donation_pledge_id;type:uuid;default:gen_random_uuid();primaryKey" json:"donation_pledge_id"`

	DonationPledgeItemID   uuid.UUID `gorm:"column:donation_pledge_item_id;type:uuid;not null;index" json:"donation_pledge_item_id"`
	DonationPledgeMemberID uuid.UUID `gorm:"column:donation_pledge_member_id;type:uuid;not null;index" json:"donation_pledge_member_id"`

	DonationPledgeQty float64 `gorm:"column:donation_pledge_qty;type:decimal(12,2);not null;check:donation_pledge_qty > 0" json:"donation_pledge_qty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (DonationPledge) TableName() string {
	return "donation_pledges"
}
