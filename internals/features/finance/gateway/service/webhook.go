package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	duesModel "jamaahku_backend/internals/features/finance/dues/model"
	"jamaahku_backend/internals/features/finance/gateway/model"
)

var ErrUnknownOrder = errors.New("order id tidak dikenal")

// statusTransition memetakan transaction_status Midtrans ke status
// pembayaran. ok=false artinya notifikasi tidak mengubah apa-apa
// (pending dan status antara).
func statusTransition(status string) (duesModel.DuesPaymentStatus, bool) {
	switch status {
	case "capture", "settlement":
		return duesModel.DuesStatusPaid, true
	case "deny", "cancel", "expire", "failure":
		return duesModel.DuesStatusRejected, true
	default:
		return "", false
	}
}

// ProcessNotification memproses satu notifikasi webhook Midtrans:
// arsipkan payload mentah, lalu transisikan pembayaran sesuai status
// transaksi. Arsip di-insert terpisah SEBELUM transisi supaya tetap ada
// walau order-nya tidak dikenal. Idempotent: notifikasi ulang untuk
// pembayaran yang sudah terminal hanya diarsipkan, status tidak disentuh.
func ProcessNotification(db *gorm.DB, payload map[string]interface{}) error {
	orderID, _ := payload["order_id"].(string)
	status, _ := payload["transaction_status"].(string)
	if orderID == "" || status == "" {
		return fmt.Errorf("payload webhook tidak lengkap")
	}

	raw, err := sonic.Marshal(payload)
	if err != nil {
		return fmt.Errorf("gagal serialize payload: %w", err)
	}

	event := model.PaymentGatewayEvent{
		PaymentGatewayEventOrderID: orderID,
		PaymentGatewayEventStatus:  status,
		PaymentGatewayEventPayload: datatypes.JSON(raw),
	}
	if err := db.Create(&event).Error; err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var payment duesModel.DuesPayment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, "dues_payment_order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnknownOrder
			}
			return err
		}

		if payment.DuesPaymentStatus.IsTerminal() {
			return nil
		}

		next, ok := statusTransition(status)
		if !ok {
			return nil
		}

		now := time.Now()
		payment.DuesPaymentStatus = next
		payment.DuesPaymentReviewedAt = &now
		return tx.Save(&payment).Error
	})
}
