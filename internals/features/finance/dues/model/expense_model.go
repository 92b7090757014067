package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense: buku pengeluaran kas. Masuk rekap periode berdasarkan
// tanggal transaksinya (hari pertama s.d. hari terakhir bulan).
type Expense struct {
	ExpenseID uuid.UUID `gorm:"column:expense_id;type:uuid;default:gen_random_uuid();primaryKey" json:"expense_id"`

	ExpenseTitle    string    `gorm:"column:expense_title;type:varchar(100);not null" json:"expense_title"`
	ExpenseCategory string    `gorm:"column:expense_category;type:varchar(50)" json:"expense_category,omitempty"`
	ExpenseAmount   float64   `gorm:"column:expense_amount;type:decimal(12,2);not null;check:expense_amount > 0" json:"expense_amount"`
	ExpenseDate     time.Time `gorm:"column:expense_date;type:date;not null;index" json:"expense_date"`
	ExpenseNote     string    `gorm:"column:expense_note;type:text" json:"expense_note,omitempty"`

	ExpenseCreatedBy *uuid.UUID `gorm:"column:expense_created_by;type:uuid" json:"expense_created_by,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (Expense) TableName() string {
	return "expenses"
}
