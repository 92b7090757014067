package service

import (
	"testing"

	duesModel "jamaahku_backend/internals/features/finance/dues/model"
)

func TestStatusTransition(t *testing.T) {
	tests := []struct {
		status string
		want   duesModel.DuesPaymentStatus
		ok     bool
	}{
		{"capture", duesModel.DuesStatusPaid, true},
		{"settlement", duesModel.DuesStatusPaid, true},
		{"deny", duesModel.DuesStatusRejected, true},
		{"cancel", duesModel.DuesStatusRejected, true},
		{"expire", duesModel.DuesStatusRejected, true},
		{"failure", duesModel.DuesStatusRejected, true},
		{"pending", "", false},
		{"authorize", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, ok := statusTransition(tt.status)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("statusTransition(%q) = (%q, %v), want (%q, %v)",
					tt.status, got, ok, tt.want, tt.ok)
			}
		})
	}
}

// Payload tanpa order_id/transaction_status ditolak sebelum menyentuh
// DB sama sekali (db sengaja nil).
func TestProcessNotificationIncompletePayload(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{"tanpa order_id", map[string]interface{}{"transaction_status": "settlement"}},
		{"tanpa transaction_status", map[string]interface{}{"order_id": "DUES-202601-x"}},
		{"kosong", map[string]interface{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ProcessNotification(nil, tt.payload); err == nil {
				t.Fatal("expected error untuk payload tidak lengkap")
			}
		})
	}
}
