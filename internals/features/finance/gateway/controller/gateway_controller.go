// 📁 controller/gateway_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	duesModel "jamaahku_backend/internals/features/finance/dues/model"
	"jamaahku_backend/internals/features/finance/gateway/service"
	memberModel "jamaahku_backend/internals/features/members/model"
	userModel "jamaahku_backend/internals/features/users/auth/model"
	helper "jamaahku_backend/internals/helpers"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

type GatewayController struct {
	DB *gorm.DB
}

func NewGatewayController(db *gorm.DB) *GatewayController {
	return &GatewayController{DB: db}
}

// 🟢 GATEWAY TOKEN (jamaah): ubah tagihan pending milik sendiri ke kanal
// gateway dan kembalikan snap token untuk dibayar di sisi klien.
// Dipanggil ulang untuk tagihan yang sama = token baru, order ID tetap.
func (ctrl *GatewayController) GatewayToken(c *fiber.Ctx) error {
	sess, err := authMw.SessionFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if sess.MemberID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun belum terhubung ke data jamaah")
	}

	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID pembayaran tidak valid")
	}

	var payment duesModel.DuesPayment
	err = ctrl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&payment, "dues_payment_id = ?", paymentID).Error; err != nil {
			return err
		}
		if payment.DuesPaymentMemberID != sess.MemberID {
			return gorm.ErrRecordNotFound // jangan bocorkan tagihan orang lain
		}
		if payment.DuesPaymentStatus.IsTerminal() {
			return errGatewayTerminal
		}

		payment.DuesPaymentChannel = duesModel.DuesChannelGateway
		if payment.DuesPaymentOrderID == nil {
			orderID := service.NewOrderID(&payment)
			payment.DuesPaymentOrderID = &orderID
		}
		return tx.Save(&payment).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Pembayaran tidak ditemukan")
		case errors.Is(err, errGatewayTerminal):
			return helper.JsonError(c, fiber.StatusConflict, "Pembayaran sudah selesai direview")
		default:
			log.Println("[ERROR] prepare gateway payment:", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyiapkan tagihan")
		}
	}

	var user userModel.User
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&user, "user_id = ?", sess.UserID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data akun")
	}
	var member memberModel.Member
	if err := ctrl.DB.WithContext(c.UserContext()).
		First(&member, "member_id = ?", sess.MemberID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data jamaah")
	}

	token, err := service.GenerateSnapToken(&payment, member.MemberFullName, user.UserEmail)
	if err != nil {
		log.Println("[ERROR] generate snap token:", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal membuat transaksi pembayaran")
	}

	return helper.JsonOK(c, "Snap token siap dipakai", fiber.Map{
		"order_id":   payment.DuesPaymentOrderID,
		"snap_token": token,
	})
}

var errGatewayTerminal = errors.New("pembayaran sudah terminal")

// 🟢 HANDLE NOTIFICATION: webhook Midtrans, tanpa auth (path di-skip
// oleh middleware). Midtrans hanya butuh status 200.
func (ctrl *GatewayController) HandleNotification(c *fiber.Ctx) error {
	var payload map[string]interface{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid webhook"})
	}

	if err := service.ProcessNotification(ctrl.DB.WithContext(c.UserContext()), payload); err != nil {
		if errors.Is(err, service.ErrUnknownOrder) {
			// bukan order kita, jangan bikin Midtrans retry terus
			log.Println("[WARN] webhook order tidak dikenal:", payload["order_id"])
			return c.SendStatus(fiber.StatusOK)
		}
		log.Println("[ERROR] webhook gagal:", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.SendStatus(fiber.StatusOK)
}
