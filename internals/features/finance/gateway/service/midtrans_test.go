package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	duesModel "jamaahku_backend/internals/features/finance/dues/model"
)

func TestNewOrderID(t *testing.T) {
	id := uuid.New()
	p := &duesModel.DuesPayment{
		DuesPaymentID:    id,
		DuesPaymentMonth: 3,
		DuesPaymentYear:  2026,
	}

	got := NewOrderID(p)
	want := fmt.Sprintf("DUES-202603-%s", id)
	if got != want {
		t.Fatalf("NewOrderID = %q, want %q", got, want)
	}

	// bulan dua digit, order id tidak berubah antar pemanggilan
	if !strings.HasPrefix(got, "DUES-202603-") {
		t.Fatalf("bulan tidak dua digit: %q", got)
	}
	if again := NewOrderID(p); again != got {
		t.Fatalf("NewOrderID tidak stabil: %q vs %q", got, again)
	}
}

func TestGenerateSnapTokenWithoutOrderID(t *testing.T) {
	p := &duesModel.DuesPayment{
		DuesPaymentID:    uuid.New(),
		DuesPaymentMonth: 1,
		DuesPaymentYear:  2026,
	}
	if _, err := GenerateSnapToken(p, "Fulan", "fulan@example.com"); err == nil {
		t.Fatal("expected error untuk payment tanpa order id")
	}
}
