package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeeStatus string

const (
	FeeStatusNormal FeeStatus = "normal"
	FeeStatusExempt FeeStatus = "exempt" // bebas iuran (mis. lansia, dhuafa)
)

type Member struct {
	MemberID uuid.UUID `gorm:"column:member_id;type:uuid;default:gen_random_uuid();primaryKey" json:"member_id"`

	// Link ke akun login (opsional; anggota lama bisa belum punya akun)
	MemberUserID *uuid.UUID `gorm:"column:member_user_id;type:uuid" json:"member_user_id,omitempty"`

	MemberFullName string `gorm:"column:member_full_name;type:varchar(100);not null" json:"member_full_name"`
	MemberPhone    string `gorm:"column:member_phone;type:varchar(30)" json:"member_phone"`

	MemberIsActive  bool      `gorm:"column:member_is_active;not null;default:true" json:"member_is_active"`
	MemberFeeStatus FeeStatus `gorm:"column:member_fee_status;type:varchar(10);not null;default:'normal'" json:"member_fee_status"`

	// Tarif iuran per bulan. NULL = ikut tarif default rumah.
	MemberMonthlyFee *float64 `gorm:"column:member_monthly_fee;type:decimal(12,2)" json:"member_monthly_fee,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Member) TableName() string {
	return "members"
}

// MonthlyFeeOrDefault: tarif efektif anggota (fallback ke tarif rumah)
func (m *Member) MonthlyFeeOrDefault(def float64) float64 {
	if m.MemberMonthlyFee != nil && *m.MemberMonthlyFee > 0 {
		return *m.MemberMonthlyFee
	}
	return def
}

func (m *Member) IsExempt() bool {
	return m.MemberFeeStatus == FeeStatusExempt
}
