package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DonationList: daftar kebutuhan donasi untuk satu kegiatan
// (mis. "Buka puasa bersama 2026"). Hapus list ikut menghapus item-nya.
type DonationList struct {
	DonationListID uuid.UUID `gorm:"column:donation_list_id;type:uuid;default:gen_random_uuid();primaryKey" json:"donation_list_id"`

	DonationListName        string     `gorm:"column:donation_list_name;type:varchar(100);not null" json:"donation_list_name"`
	DonationListDescription string     `gorm:"column:donation_list_description;type:text" json:"donation_list_description"`
	DonationListEventDate   *time.Time `gorm:"column:donation_list_event_date;type:date" json:"donation_list_event_date,omitempty"`

	DonationListItems []DonationItem `gorm:"foreignKey:DonationItemListID;references:DonationListID;constraint:OnDelete:CASCADE" json:"donation_list_items,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (DonationList) TableName() string {
	return "donation_lists"
}

// DonationItem: satu kebutuhan dalam list, dengan kuota opsional.
// Kuota NULL = tidak terbatas.
type DonationItem struct {
	DonationItemID     uuid.UUID `gorm:"column:donation_item_id;type:uuid;default:gen_random_uuid();primaryKey" json:"donation_item_id"`
	DonationItemListID uuid.UUID `gorm:"column:donation_item_list_id;type:uuid;not null;index" json:"donation_item_list_id"`

	DonationItemName string `gorm:"column:donation_item_name;type:varchar(100);not null" json:"donation_item_name"`
	DonationItemUnit string `gorm:"column:donation_item_unit;type:varchar(20);not null" json:"donation_item_unit"` // bebas: "kg", "un", "dus"

	DonationItemRequestedQty *float64 `gorm:"column:donation_item_requested_qty;type:decimal(12,2);check:donation_item_requested_qty > 0" json:"donation_item_requested_qty,omitempty"`

	DonationItemImageURL string `gorm:"column:donation_item_image_url;type:text" json:"donation_item_image_url,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (DonationItem) TableName() string {
	return "donation_items"
}

// BeforeCreate: guard aplikasi, kuota (kalau ada) wajib positif
func (i *DonationItem) BeforeCreate(tx *gorm.DB) error {
	if i.DonationItemID == uuid.Nil {
		i.DonationItemID = uuid.New()
	}
	if i.DonationItemRequestedQty != nil && *i.DonationItemRequestedQty <= 0 {
		return fmt.Errorf("donation_item_requested_qty must be positive")
	}
	return nil
}

func (i *DonationItem) HasQuota() bool {
	return i.DonationItemRequestedQty != nil
}
