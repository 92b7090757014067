// file: internals/features/finance/dues/model/payment_model.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* ================================
   MODEL: dues_payments
================================ */

type DuesPayment struct {
	DuesPaymentID uuid.UUID `gorm:"column:dues_payment_id;type:uuid;default:gen_random_uuid();primaryKey" json:"dues_payment_id"`

	DuesPaymentMemberID uuid.UUID `gorm:"column:dues_payment_member_id;type:uuid;not null;index" json:"dues_payment_member_id"`

	// Periode tagihan
	DuesPaymentMonth int16 `gorm:"column:dues_payment_month;type:smallint;not null;check:dues_payment_month BETWEEN 1 AND 12" json:"dues_payment_month"`
	DuesPaymentYear  int16 `gorm:"column:dues_payment_year;type:smallint;not null" json:"dues_payment_year"`

	DuesPaymentAmount float64 `gorm:"column:dues_payment_amount;type:decimal(12,2);not null;check:dues_payment_amount > 0" json:"dues_payment_amount"`

	DuesPaymentStatus  DuesPaymentStatus  `gorm:"column:dues_payment_status;type:varchar(20);not null;default:'pending_approval'" json:"dues_payment_status"`
	DuesPaymentChannel DuesPaymentChannel `gorm:"column:dues_payment_channel;type:varchar(10);not null;default:'manual'" json:"dues_payment_channel"`

	// Bukti transfer (object di blob store, URL publik/signed)
	DuesPaymentProofURL string `gorm:"column:dues_payment_proof_url;type:text" json:"dues_payment_proof_url,omitempty"`
	DuesPaymentNote     string `gorm:"column:dues_payment_note;type:text" json:"dues_payment_note,omitempty"`

	// Order ID untuk kanal gateway
	DuesPaymentOrderID *string `gorm:"column:dues_payment_order_id;type:varchar(100);unique" json:"dues_payment_order_id,omitempty"`

	// Jejak review
	DuesPaymentReviewedBy *uuid.UUID `gorm:"column:dues_payment_reviewed_by;type:uuid" json:"dues_payment_reviewed_by,omitempty"`
	DuesPaymentReviewedAt *time.Time `gorm:"column:dues_payment_reviewed_at" json:"dues_payment_reviewed_at,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (DuesPayment) TableName() string {
	return "dues_payments"
}

// BeforeCreate: guard aplikasi (mirror check constraint)
func (p *DuesPayment) BeforeCreate(tx *gorm.DB) error {
	if p.DuesPaymentID == uuid.Nil {
		p.DuesPaymentID = uuid.New()
	}
	if p.DuesPaymentMonth < 1 || p.DuesPaymentMonth > 12 {
		return fmt.Errorf("dues_payment_month must be 1..12")
	}
	if p.DuesPaymentAmount <= 0 {
		return fmt.Errorf("dues_payment_amount must be positive")
	}
	return nil
}
