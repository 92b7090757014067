// 📁 controller/payment_controller.go
package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"jamaahku_backend/internals/features/finance/dues/dto"
	"jamaahku_backend/internals/features/finance/dues/model"
	helper "jamaahku_backend/internals/helpers"
	ossHelper "jamaahku_backend/internals/helpers/oss"
	authMw "jamaahku_backend/internals/middlewares/auth"
)

var validate = validator.New()

type DuesPaymentController struct {
	DB  *gorm.DB
	OSS *ossHelper.OSSService // nil kalau blob store tidak dikonfigurasi
}

func NewDuesPaymentController(db *gorm.DB, oss *ossHelper.OSSService) *DuesPaymentController {
	return &DuesPaymentController{DB: db, OSS: oss}
}

// 🟢 SUBMIT PAYMENT (jamaah): multipart dengan bukti transfer, masuk
// antrian pending_approval. Ditolak? Submit baru untuk periode yang sama.
func (ctrl *DuesPaymentController) Submit(c *fiber.Ctx) error {
	sess, err := authMw.SessionFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if sess.MemberID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusForbidden, "Akun belum terhubung ke data jamaah")
	}

	var body dto.SubmitDuesPaymentRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	payment := model.DuesPayment{
		DuesPaymentMemberID: sess.MemberID,
		DuesPaymentMonth:    int16(body.Month),
		DuesPaymentYear:     int16(body.Year),
		DuesPaymentAmount:   body.Amount,
		DuesPaymentStatus:   model.DuesStatusPendingApproval,
		DuesPaymentChannel:  model.DuesChannelManual,
		DuesPaymentNote:     body.Note,
	}

	// 🧾 bukti transfer opsional tapi dianjurkan
	if ctrl.OSS != nil {
		if file, err := ossHelper.GetImageFile(c); err == nil && file != nil {
			url, err := ctrl.OSS.UploadAsWebP(c.UserContext(), file, "dues-proofs")
			if err != nil {
				log.Println("[ERROR] upload payment proof:", err)
				return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengunggah bukti transfer")
			}
			payment.DuesPaymentProofURL = url
		}
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&payment).Error; err != nil {
		log.Println("[ERROR] submit dues payment:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan pembayaran")
	}

	return helper.JsonCreated(c, "Pembayaran masuk antrian review", payment)
}

// 🟢 GET MY PAYMENTS (jamaah): riwayat semua status, terbaru dulu
func (ctrl *DuesPaymentController) GetMine(c *fiber.Ctx) error {
	sess, err := authMw.SessionFromCtx(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	if sess.MemberID == uuid.Nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Akun belum terhubung ke data jamaah")
	}

	var payments []model.DuesPayment
	if err := ctrl.DB.WithContext(c.UserContext()).
		Where("dues_payment_member_id = ?", sess.MemberID).
		Order("dues_payment_year desc, dues_payment_month desc, created_at desc").
		Find(&payments).Error; err != nil {
		log.Println("[ERROR] list my payments:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data")
	}

	return helper.JsonOK(c, "Riwayat pembayaran iuran", payments)
}
