package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidQuantity: qty <= 0 atau bukan angka
	ErrInvalidQuantity = errors.New("jumlah pledge harus angka lebih dari 0")

	// ErrNotFound: item/list tidak ada (atau sudah dihapus)
	ErrNotFound = errors.New("data tidak ditemukan")

	// ErrNoMember: session tanpa data keanggotaan tidak bisa pledge
	ErrNoMember = errors.New("akun ini tidak terhubung ke data keanggotaan")
)

// QuotaExceededError: pledge melebihi kuota item. Membawa sisa kuota
// supaya pemanggil bisa mengoreksi jumlahnya.
type QuotaExceededError struct {
	Remaining float64
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("kuota item tidak cukup, sisa %g", e.Remaining)
}

// StoreError: pembungkus kegagalan baca/tulis store. Tidak di-retry
// otomatis; pemanggil memutuskan submit ulang.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
